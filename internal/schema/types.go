// Package schema describes a tagged-union registry as OpenAPI components:
// one object schema per variant and a oneOf schema with a discriminator
// mapping.
package schema

// NOTE: These definitions keep only the fields the generator populates.

// Document is the root of the generated OpenAPI 3.1 document.
type Document struct {
	OpenAPI    string      `json:"openapi" yaml:"openapi"`
	Info       Info        `json:"info" yaml:"info"`
	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`
}

// Info carries document metadata.
type Info struct {
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Components holds the reusable schemas.
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Schema is an OpenAPI schema object.
type Schema struct {
	Title         string             `json:"title,omitempty" yaml:"title,omitempty"`
	Ref           string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type          string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format        string             `json:"format,omitempty" yaml:"format,omitempty"`
	Properties    map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required      []string           `json:"required,omitempty" yaml:"required,omitempty"`
	OneOf         []*Schema          `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	Discriminator *Discriminator     `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	Description   string             `json:"description,omitempty" yaml:"description,omitempty"`
	Enum          []string           `json:"enum,omitempty" yaml:"enum,omitempty"`
	Items         *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
}

// Discriminator represents an OpenAPI discriminator object for polymorphic schemas.
type Discriminator struct {
	PropertyName string            `json:"propertyName" yaml:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

type options struct {
	title   string
	version string
	name    string
}

// Option allows callers to tweak the generated document.
type Option func(*options)

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithVersion sets the document version.
func WithVersion(version string) Option {
	return func(o *options) { o.version = version }
}

// WithUnionName sets the component name of the oneOf schema.
func WithUnionName(name string) Option {
	return func(o *options) { o.name = name }
}
