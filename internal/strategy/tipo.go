package strategy

import (
	"encoding/json"
	"fmt"

	"github.com/gork-labs/polycodec/pkg/operation"
	"github.com/gork-labs/polycodec/pkg/unions"
)

// operands are the members every built-in variant requires.
var operands = []string{"A", "B"}

// readTipo resolves the "Tipo" member of doc with the same error kinds the
// registry codec reports.
func readTipo(doc unions.Document) (string, error) {
	raw, ok := doc.Lookup(operation.FieldTipo)
	if !ok {
		return "", fmt.Errorf("%w: field %q not found", unions.ErrMissingDiscriminator, operation.FieldTipo)
	}
	if len(raw) == 0 || raw[0] != '"' {
		return "", fmt.Errorf("%w: field %q is not a string", unions.ErrInvalidDiscriminator, operation.FieldTipo)
	}

	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", fmt.Errorf("%w: field %q: %v", unions.ErrInvalidDiscriminator, operation.FieldTipo, err)
	}
	if tag == "" {
		return "", fmt.Errorf("%w: field %q is empty", unions.ErrInvalidDiscriminator, operation.FieldTipo)
	}
	return tag, nil
}

// requireOperands fails when an operand of variant is absent or null.
func requireOperands(doc unions.Document, variant string) error {
	for _, name := range operands {
		raw, ok := doc.Lookup(name)
		if !ok || string(raw) == "null" {
			return &unions.PayloadError{Variant: variant, Field: name, Err: unions.ErrMissingField}
		}
	}
	return nil
}
