package strategy

import (
	"fmt"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/gork-labs/polycodec/pkg/operation"
	"github.com/gork-labs/polycodec/pkg/unions"
)

// jsonv2Strategy decodes an internally tagged union through the JSON v2
// experiment: a type-specific unmarshaler for operation.Operation reads the
// whole object, resolves "Tipo" and decodes the payload into the variant.
type jsonv2Strategy struct {
	registry  *unions.Registry[operation.Operation]
	marshal   jsonv2.Options
	unmarshal jsonv2.Options
}

func newJSONv2Strategy() (Strategy, error) {
	reg, err := operation.NewRegistry()
	if err != nil {
		return nil, err
	}

	s := &jsonv2Strategy{registry: reg}
	s.marshal = jsonv2.WithMarshalers(jsonv2.MarshalToFunc(s.encodeOperation))
	s.unmarshal = jsonv2.WithUnmarshalers(jsonv2.UnmarshalFromFunc(s.decodeOperation))
	return s, nil
}

func (s *jsonv2Strategy) Name() string  { return JSONv2Tipo }
func (s *jsonv2Strategy) Field() string { return operation.FieldTipo }

func (s *jsonv2Strategy) Decode(data []byte) (operation.Operation, error) {
	var op operation.Operation
	if err := jsonv2.Unmarshal(data, &op, s.unmarshal); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *jsonv2Strategy) Encode(op operation.Operation) ([]byte, error) {
	return jsonv2.Marshal(&op, s.marshal)
}

func (s *jsonv2Strategy) decodeOperation(dec *jsontext.Decoder, out *operation.Operation) error {
	raw, err := dec.ReadValue()
	if err != nil {
		return fmt.Errorf("%w: %v", unions.ErrMalformedDocument, err)
	}

	var members map[string]jsontext.Value
	if err := jsonv2.Unmarshal(raw, &members); err != nil || members == nil {
		return fmt.Errorf("%w: top-level value is not an object", unions.ErrMalformedDocument)
	}
	doc := make(unions.Document, len(members))
	for k, v := range members {
		doc[k] = []byte(v)
	}

	tag, err := readTipo(doc)
	if err != nil {
		return err
	}
	if _, ok := s.registry.Lookup(tag); !ok {
		return &unions.UnknownVariantError{Field: operation.FieldTipo, Value: tag}
	}
	if err := requireOperands(doc, tag); err != nil {
		return err
	}

	var op operation.Operation
	switch tag {
	case operation.TagSum:
		var v operation.Sum
		err = jsonv2.Unmarshal(raw, &v, jsonv2.MatchCaseInsensitiveNames(true))
		op = v
	case operation.TagDifference:
		var v operation.Difference
		err = jsonv2.Unmarshal(raw, &v, jsonv2.MatchCaseInsensitiveNames(true))
		op = v
	}
	if err != nil {
		return &unions.PayloadError{Variant: tag, Err: err}
	}
	*out = op
	return nil
}

func (s *jsonv2Strategy) encodeOperation(enc *jsontext.Encoder, op operation.Operation) error {
	tag, ok := s.registry.TagOf(op)
	if !ok {
		return fmt.Errorf("%w: %T", unions.ErrUnregisteredType, op)
	}

	// Plain options here: the variant implements operation.Operation too.
	payload, err := jsonv2.Marshal(op)
	if err != nil {
		return err
	}
	var members map[string]jsontext.Value
	if err := jsonv2.Unmarshal(payload, &members); err != nil {
		return err
	}
	tipo, err := jsonv2.Marshal(tag)
	if err != nil {
		return err
	}
	members[operation.FieldTipo] = tipo

	object, err := jsonv2.Marshal(members, jsonv2.Deterministic(true))
	if err != nil {
		return err
	}
	return enc.WriteValue(object)
}
