// Package strategy collects interchangeable ways of decoding and encoding
// operations so they can be compared against the same inputs.
package strategy

import (
	"fmt"

	"github.com/gork-labs/polycodec/pkg/operation"
	"github.com/gork-labs/polycodec/pkg/unions"
)

// Strategy is one complete approach to polymorphic operation documents.
type Strategy interface {
	Name() string
	// Field returns the discriminator member the strategy reads and writes.
	Field() string
	Decode(data []byte) (operation.Operation, error)
	Encode(op operation.Operation) ([]byte, error)
}

// Strategy names.
const (
	RegistryTipo     = "registry-tipo"
	RegistryType     = "registry-type"
	DeclaredType     = "declared-type"
	Envelope         = "envelope"
	SwitchTipo       = "switch-tipo"
	RegistryJsoniter = "registry-type-jsoniter"
	RegistryGoccy    = "registry-type-goccy"
	JSONv2Tipo       = "jsonv2-tipo"
)

var names = []string{
	RegistryTipo,
	RegistryType,
	DeclaredType,
	Envelope,
	SwitchTipo,
	RegistryJsoniter,
	RegistryGoccy,
	JSONv2Tipo,
}

var builders = map[string]func() (Strategy, error){
	RegistryTipo: func() (Strategy, error) {
		return newRegistryStrategy(RegistryTipo, operation.FieldTipo, unions.StdJSON)
	},
	RegistryType: func() (Strategy, error) {
		return newRegistryStrategy(RegistryType, operation.FieldType, unions.StdJSON)
	},
	DeclaredType: func() (Strategy, error) {
		reg, err := operation.NewDeclaredRegistry()
		if err != nil {
			return nil, err
		}
		return newCodecStrategy(DeclaredType, reg, operation.FieldType, unions.StdJSON)
	},
	Envelope: func() (Strategy, error) {
		return envelopeStrategy{}, nil
	},
	SwitchTipo: func() (Strategy, error) {
		return switchStrategy{}, nil
	},
	RegistryJsoniter: func() (Strategy, error) {
		return newRegistryStrategy(RegistryJsoniter, operation.FieldType, unions.Jsoniter)
	},
	RegistryGoccy: func() (Strategy, error) {
		return newRegistryStrategy(RegistryGoccy, operation.FieldType, unions.GoJSON)
	},
	JSONv2Tipo: newJSONv2Strategy,
}

// Names returns every strategy name in catalog order.
func Names() []string {
	return append([]string(nil), names...)
}

// Lookup builds the strategy registered under name.
func Lookup(name string) (Strategy, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, names)
	}
	return build()
}

// All builds every strategy in catalog order.
func All() ([]Strategy, error) {
	all := make([]Strategy, 0, len(names))
	for _, name := range names {
		s, err := Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("build strategy %s: %w", name, err)
		}
		all = append(all, s)
	}
	return all, nil
}

// NewRegistry returns a registry-backed strategy for an arbitrary
// discriminator field and backend. opts are applied to the codec after the
// backend.
func NewRegistry(name, field string, api unions.JSONAPI, opts ...unions.Option) (Strategy, error) {
	return newRegistryStrategy(name, field, api, opts...)
}
