package unions

import (
	"fmt"
	"reflect"
)

// decodeFunc decodes a full document into one concrete variant.
type decodeFunc[T any] func(api JSONAPI, data []byte) (T, error)

// Binding associates one discriminator value with one variant type. Create
// bindings with Bind and pass them to NewRegistry.
type Binding[T any] struct {
	tag    string
	typ    reflect.Type
	decode decodeFunc[T]
	err    error
}

// Bind returns a Binding mapping tag to variant type V. V must implement T;
// the check happens here and is reported by NewRegistry.
func Bind[V, T any](tag string) Binding[T] {
	b := Binding[T]{
		tag: tag,
		typ: reflect.TypeOf((*V)(nil)).Elem(),
	}

	var zero V
	if _, ok := any(zero).(T); !ok {
		b.err = fmt.Errorf("%w: %s does not implement %s", ErrInvalidRegistry, b.typ, reflect.TypeOf((*T)(nil)).Elem())
		return b
	}

	b.decode = func(api JSONAPI, data []byte) (T, error) {
		var v V
		if err := api.Unmarshal(data, &v); err != nil {
			var none T
			return none, err
		}
		return any(v).(T), nil
	}
	return b
}

// VariantInfo describes a registered variant.
type VariantInfo struct {
	Tag      string
	Type     reflect.Type
	Required []string
}

type variant[T any] struct {
	VariantInfo
	decode decodeFunc[T]
}

// Registry maps discriminator values to variant shapes and back. It is
// immutable once built and may be shared between goroutines.
type Registry[T any] struct {
	byTag  map[string]*variant[T]
	byType map[reflect.Type]*variant[T]
	order  []*variant[T]
}

// NewRegistry builds a Registry from bindings. Tags must be non-empty and
// unique and each Go type may be bound only once.
func NewRegistry[T any](bindings ...Binding[T]) (*Registry[T], error) {
	r := &Registry[T]{
		byTag:  make(map[string]*variant[T], len(bindings)),
		byType: make(map[reflect.Type]*variant[T], len(bindings)),
	}

	for _, b := range bindings {
		if b.err != nil {
			return nil, b.err
		}
		if err := r.add(b.tag, b.typ, b.decode); err != nil {
			return nil, err
		}
	}

	if len(r.order) == 0 {
		return nil, fmt.Errorf("%w: no variants", ErrInvalidRegistry)
	}
	return r, nil
}

// FromDiscriminators builds a Registry from sample values whose types
// implement Discriminator. Each value contributes its dynamic type under the
// tag it reports.
func FromDiscriminators[T any](samples ...T) (*Registry[T], error) {
	bindings := make([]Binding[T], 0, len(samples))
	for _, sample := range samples {
		bindings = append(bindings, declared(sample))
	}
	return NewRegistry(bindings...)
}

var discriminatorType = reflect.TypeOf((*Discriminator)(nil)).Elem()

func declared[T any](sample T) Binding[T] {
	d, ok := any(sample).(Discriminator)
	if !ok {
		return Binding[T]{err: fmt.Errorf("%w: %T does not implement Discriminator", ErrInvalidRegistry, sample)}
	}

	// A nil pointer cannot report a tag declared on the value receiver.
	rv := reflect.ValueOf(sample)
	if rv.Kind() == reflect.Ptr && rv.IsNil() && rv.Type().Elem().Implements(discriminatorType) {
		return Binding[T]{err: fmt.Errorf("%w: nil %T sample", ErrInvalidRegistry, sample)}
	}

	typ := reflect.TypeOf(sample)
	return Binding[T]{
		tag: d.DiscriminatorValue(),
		typ: typ,
		decode: func(api JSONAPI, data []byte) (T, error) {
			ptr := reflect.New(typ)
			if err := api.Unmarshal(data, ptr.Interface()); err != nil {
				var none T
				return none, err
			}
			return ptr.Elem().Interface().(T), nil
		},
	}
}

func (r *Registry[T]) add(tag string, typ reflect.Type, decode decodeFunc[T]) error {
	if tag == "" {
		return fmt.Errorf("%w: empty discriminator for %s", ErrInvalidRegistry, typ)
	}
	if _, dup := r.byTag[tag]; dup {
		return fmt.Errorf("%w: discriminator %q registered twice", ErrInvalidRegistry, tag)
	}
	if prev, dup := r.byType[typ]; dup {
		return fmt.Errorf("%w: %s already registered as %q", ErrInvalidRegistry, typ, prev.Tag)
	}

	v := &variant[T]{
		VariantInfo: VariantInfo{Tag: tag, Type: typ, Required: requiredFields(typ)},
		decode:      decode,
	}
	r.byTag[tag] = v
	r.byType[typ] = v
	r.order = append(r.order, v)
	return nil
}

// Len returns the number of registered variants.
func (r *Registry[T]) Len() int {
	return len(r.order)
}

// Tags returns the registered discriminator values in registration order.
func (r *Registry[T]) Tags() []string {
	tags := make([]string, len(r.order))
	for i, v := range r.order {
		tags[i] = v.Tag
	}
	return tags
}

// Variants returns a description of every variant in registration order.
func (r *Registry[T]) Variants() []VariantInfo {
	infos := make([]VariantInfo, len(r.order))
	for i, v := range r.order {
		infos[i] = v.VariantInfo
		infos[i].Required = append([]string(nil), v.Required...)
	}
	return infos
}

// Lookup returns the variant registered under tag.
func (r *Registry[T]) Lookup(tag string) (VariantInfo, bool) {
	v, ok := r.byTag[tag]
	if !ok {
		return VariantInfo{}, false
	}
	return v.VariantInfo, true
}

// TagOf returns the discriminator registered for the dynamic type of v.
func (r *Registry[T]) TagOf(v T) (string, bool) {
	if any(v) == nil {
		return "", false
	}
	found, ok := r.byType[reflect.TypeOf(v)]
	if !ok {
		return "", false
	}
	return found.Tag, true
}
