package strategy

import (
	"encoding/json"
	"fmt"

	"github.com/gork-labs/polycodec/pkg/operation"
	"github.com/gork-labs/polycodec/pkg/unions"
)

// switchStrategy is the hand-written converter: a fixed switch over the
// known tags with no registry behind it. Adding a variant means editing it.
type switchStrategy struct{}

func (switchStrategy) Name() string  { return SwitchTipo }
func (switchStrategy) Field() string { return operation.FieldTipo }

func (switchStrategy) Decode(data []byte) (operation.Operation, error) {
	var doc unions.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", unions.ErrMalformedDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", unions.ErrMalformedDocument)
	}

	tag, err := readTipo(doc)
	if err != nil {
		return nil, err
	}

	switch tag {
	case operation.TagSum:
		if err := requireOperands(doc, tag); err != nil {
			return nil, err
		}
		var op operation.Sum
		if err := json.Unmarshal(data, &op); err != nil {
			return nil, &unions.PayloadError{Variant: tag, Err: err}
		}
		return op, nil
	case operation.TagDifference:
		if err := requireOperands(doc, tag); err != nil {
			return nil, err
		}
		var op operation.Difference
		if err := json.Unmarshal(data, &op); err != nil {
			return nil, &unions.PayloadError{Variant: tag, Err: err}
		}
		return op, nil
	default:
		return nil, &unions.UnknownVariantError{Field: operation.FieldTipo, Value: tag}
	}
}

func (switchStrategy) Encode(op operation.Operation) ([]byte, error) {
	switch v := op.(type) {
	case operation.Sum:
		return json.Marshal(struct {
			Tipo string `json:"Tipo"`
			operation.Sum
		}{operation.TagSum, v})
	case operation.Difference:
		return json.Marshal(struct {
			Tipo string `json:"Tipo"`
			operation.Difference
		}{operation.TagDifference, v})
	default:
		return nil, fmt.Errorf("%w: %T", unions.ErrUnregisteredType, op)
	}
}
