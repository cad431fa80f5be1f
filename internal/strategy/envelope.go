package strategy

import (
	"encoding/json"

	"github.com/gork-labs/polycodec/pkg/operation"
)

// envelopeStrategy goes through plain encoding/json calls; the envelope
// type carries the converter.
type envelopeStrategy struct{}

func (envelopeStrategy) Name() string  { return Envelope }
func (envelopeStrategy) Field() string { return operation.FieldTipo }

func (envelopeStrategy) Decode(data []byte) (operation.Operation, error) {
	var env operation.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return env.Operation, nil
}

func (envelopeStrategy) Encode(op operation.Operation) ([]byte, error) {
	return json.Marshal(operation.Envelope{Operation: op})
}
