package operation

import (
	"github.com/gork-labs/polycodec/pkg/unions"
)

// Bindings returns the discriminator bindings of the built-in variants.
func Bindings() []unions.Binding[Operation] {
	return []unions.Binding[Operation]{
		unions.Bind[Sum, Operation](TagSum),
		unions.Bind[Difference, Operation](TagDifference),
	}
}

// NewRegistry returns a registry of the built-in variants.
func NewRegistry() (*unions.Registry[Operation], error) {
	return unions.NewRegistry(Bindings()...)
}

// NewDeclaredRegistry builds the same registry from the tags each variant
// declares through DiscriminatorValue.
func NewDeclaredRegistry() (*unions.Registry[Operation], error) {
	return unions.FromDiscriminators[Operation](Sum{}, Difference{})
}

// NewCodec returns a codec over the built-in variants reading the
// discriminator from field.
func NewCodec(field string, opts ...unions.Option) (*unions.Codec[Operation], error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return unions.NewCodec(reg, field, opts...)
}
