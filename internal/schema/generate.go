package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gork-labs/polycodec/pkg/unions"
)

const refPrefix = "#/components/schemas/"

// Generate describes every variant of reg, with the discriminator stored
// in field.
func Generate[T any](reg *unions.Registry[T], field string, opts ...Option) (*Document, error) {
	if reg == nil {
		return nil, fmt.Errorf("nil registry")
	}
	if field == "" {
		return nil, fmt.Errorf("discriminator field name is empty")
	}

	o := options{title: "Tagged union", version: "0.1.0", name: "Union"}
	for _, opt := range opts {
		opt(&o)
	}

	schemas := make(map[string]*Schema)
	union := &Schema{
		Title:         o.name,
		Discriminator: &Discriminator{PropertyName: field, Mapping: map[string]string{}},
	}

	for _, v := range reg.Variants() {
		name := uniqueSchemaNameForType(v.Type, schemas)
		if name == "" {
			return nil, fmt.Errorf("variant %q: type %s has no name", v.Tag, v.Type)
		}

		member, err := variantSchema(v, field)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Tag, err)
		}
		member.Title = name
		schemas[name] = member

		ref := refPrefix + name
		union.OneOf = append(union.OneOf, &Schema{Ref: ref})
		union.Discriminator.Mapping[v.Tag] = ref
	}

	if _, exists := schemas[o.name]; exists {
		return nil, fmt.Errorf("union name %q collides with a variant schema", o.name)
	}
	schemas[o.name] = union

	return &Document{
		OpenAPI:    "3.1.0",
		Info:       Info{Title: o.title, Version: o.version},
		Components: &Components{Schemas: schemas},
	}, nil
}

func variantSchema(v unions.VariantInfo, field string) (*Schema, error) {
	t := v.Type
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type %s is not a struct", v.Type)
	}

	s := &Schema{
		Type:       "object",
		Properties: map[string]*Schema{field: {Type: "string", Enum: []string{v.Tag}}},
		Required:   []string{field},
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		if name == "" || strings.EqualFold(name, field) {
			continue
		}
		s.Properties[name] = typeSchema(f.Type)
	}

	for _, name := range v.Required {
		if !strings.EqualFold(name, field) {
			s.Required = append(s.Required, name)
		}
	}
	return s, nil
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// typeSchema maps a Go field type to a schema without following named
// struct types.
func typeSchema(t reflect.Type) *Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &Schema{Type: "integer", Format: "int32"}
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return &Schema{Type: "integer", Format: "int64"}
	case reflect.Float32:
		return &Schema{Type: "number", Format: "float"}
	case reflect.Float64:
		return &Schema{Type: "number", Format: "double"}
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: typeSchema(t.Elem())}
	default:
		return &Schema{Type: "object"}
	}
}

// sanitizeSchemaName replaces characters not allowed in component keys.
func sanitizeSchemaName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if isAllowedSchemaChar(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func isAllowedSchemaChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '.' || r == '-' || r == '_'
}

// uniqueSchemaNameForType returns a component name for t that is not yet
// taken: the type name, then package + type name, then a numeric suffix.
func uniqueSchemaNameForType(t reflect.Type, taken map[string]*Schema) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	base := sanitizeSchemaName(t.Name())
	if base == "" {
		return ""
	}
	if _, exists := taken[base]; !exists {
		return base
	}

	if pkg := lastPathComponent(t.PkgPath()); pkg != "" {
		base = toPascalCase(pkg) + base
		if _, exists := taken[base]; !exists {
			return base
		}
	}
	for i := 2; ; i++ {
		candidate := base + strconv.Itoa(i)
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
	}
}

func lastPathComponent(p string) string {
	parts := strings.Split(p, "/")
	return parts[len(parts)-1]
}

func toPascalCase(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if r == '_' || r == '-' || r == '.' {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		b.WriteRune(r)
	}
	return b.String()
}
