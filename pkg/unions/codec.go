// Package unions decodes and encodes JSON tagged unions. A Registry maps
// discriminator values to Go variant types and a Codec uses one field of
// the top-level object to pick the variant.
package unions

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	gojson "github.com/goccy/go-json"
)

// validatorInstance is a cached validator to avoid recreation on each decode.
var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()
		// Report JSON member names so errors match the document.
		validatorInstance.RegisterTagNameFunc(jsonFieldName)
	})
	return validatorInstance
}

type options struct {
	api      JSONAPI
	indent   string
	validate *validator.Validate
}

// Option configures a Codec.
type Option func(*options)

// WithBackend selects the JSON parser/printer. The default is StdJSON.
func WithBackend(api JSONAPI) Option {
	return func(o *options) { o.api = api }
}

// WithIndent makes Encode pretty-print using indent for each level.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// WithValidator replaces the shared validator used after decoding.
func WithValidator(v *validator.Validate) Option {
	return func(o *options) { o.validate = v }
}

// WithoutValidation skips `validate` tag checks after decoding.
func WithoutValidation() Option {
	return func(o *options) { o.validate = nil }
}

// Codec decodes documents into variants of T and encodes them back. It holds
// no mutable state and is safe for concurrent use.
type Codec[T any] struct {
	registry *Registry[T]
	field    string
	api      JSONAPI
	indent   string
	validate *validator.Validate
}

// NewCodec returns a Codec reading the discriminator from field.
func NewCodec[T any](registry *Registry[T], field string, opts ...Option) (*Codec[T], error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrInvalidRegistry)
	}
	if field == "" {
		return nil, errors.New("discriminator field name is empty")
	}

	o := options{api: StdJSON, validate: getValidator()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.api == nil {
		o.api = StdJSON
	}

	return &Codec[T]{
		registry: registry,
		field:    field,
		api:      o.api,
		indent:   o.indent,
		validate: o.validate,
	}, nil
}

// Field returns the discriminator field name.
func (c *Codec[T]) Field() string {
	return c.field
}

// Registry returns the registry the codec dispatches on.
func (c *Codec[T]) Registry() *Registry[T] {
	return c.registry
}

// Parse splits data into a Document. Anything but a JSON object fails
// with ErrMalformedDocument.
func (c *Codec[T]) Parse(data []byte) (Document, error) {
	var doc Document
	if err := c.api.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformedDocument)
	}
	return doc, nil
}

// Decode parses data and decodes it into the variant its discriminator names.
func (c *Codec[T]) Decode(data []byte) (T, error) {
	doc, err := c.Parse(data)
	if err != nil {
		var none T
		return none, err
	}
	return c.decode(doc, data)
}

// DecodeDocument decodes an already parsed document.
func (c *Codec[T]) DecodeDocument(doc Document) (T, error) {
	var none T
	if doc == nil {
		return none, fmt.Errorf("%w: top-level value is not an object", ErrMalformedDocument)
	}
	data, err := c.api.Marshal(doc)
	if err != nil {
		return none, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return c.decode(doc, data)
}

func (c *Codec[T]) decode(doc Document, data []byte) (T, error) {
	var none T

	v, err := c.resolve(doc)
	if err != nil {
		return none, err
	}

	for _, name := range v.Required {
		raw, ok := doc.Lookup(name)
		if !ok || isNull(raw) {
			return none, &PayloadError{Variant: v.Tag, Field: name, Err: ErrMissingField}
		}
	}

	result, err := v.decode(c.api, data)
	if err != nil {
		return none, &PayloadError{Variant: v.Tag, Field: typeErrorField(err), Err: err}
	}

	if err := c.check(result); err != nil {
		return none, &PayloadError{Variant: v.Tag, Field: validationField(err), Err: err}
	}
	return result, nil
}

// resolve performs the single discriminator lookup.
func (c *Codec[T]) resolve(doc Document) (*variant[T], error) {
	raw, ok := doc.Lookup(c.field)
	if !ok {
		return nil, fmt.Errorf("%w: field %q not found", ErrMissingDiscriminator, c.field)
	}
	if !isString(raw) {
		return nil, fmt.Errorf("%w: field %q is not a string", ErrInvalidDiscriminator, c.field)
	}

	var tag string
	if err := c.api.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidDiscriminator, c.field, err)
	}
	if tag == "" {
		return nil, fmt.Errorf("%w: field %q is empty", ErrInvalidDiscriminator, c.field)
	}

	v, ok := c.registry.byTag[tag]
	if !ok {
		return nil, &UnknownVariantError{Field: c.field, Value: tag}
	}
	return v, nil
}

func (c *Codec[T]) check(result T) error {
	if c.validate == nil {
		return nil
	}
	rv := reflect.ValueOf(result)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	return c.validate.Struct(rv.Interface())
}

// EncodeDocument encodes v and injects its discriminator.
func (c *Codec[T]) EncodeDocument(v T) (Document, error) {
	tag, ok := c.registry.TagOf(v)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnregisteredType, v)
	}

	data, err := c.api.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode variant %q: %w", tag, err)
	}

	var doc Document
	if err := c.api.Unmarshal(data, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("%w: variant %q does not encode to an object", ErrMalformedDocument, tag)
	}

	discriminator, err := c.api.Marshal(tag)
	if err != nil {
		return nil, fmt.Errorf("encode discriminator %q: %w", tag, err)
	}
	doc.removeFold(c.field)
	doc[c.field] = discriminator
	return doc, nil
}

// Encode encodes v as a JSON object carrying the discriminator field.
func (c *Codec[T]) Encode(v T) ([]byte, error) {
	doc, err := c.EncodeDocument(v)
	if err != nil {
		return nil, err
	}
	if c.indent != "" {
		return c.api.MarshalIndent(doc, "", c.indent)
	}
	return c.api.Marshal(doc)
}

// typeErrorField extracts the offending member from a backend type error.
// jsoniter only reports the field in its message text, so Field stays empty
// on that backend.
func typeErrorField(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}
	var goTypeErr *gojson.UnmarshalTypeError
	if errors.As(err, &goTypeErr) {
		return goTypeErr.Field
	}
	return ""
}

func validationField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}
