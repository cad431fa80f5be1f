package operation

import (
	"errors"
	"sync"

	"github.com/gork-labs/polycodec/pkg/unions"
)

var (
	envelopeCodec     *unions.Codec[Operation]
	envelopeCodecErr  error
	envelopeCodecOnce sync.Once
)

func getEnvelopeCodec() (*unions.Codec[Operation], error) {
	envelopeCodecOnce.Do(func() {
		envelopeCodec, envelopeCodecErr = NewCodec(FieldTipo)
	})
	return envelopeCodec, envelopeCodecErr
}

// Envelope carries an Operation through encoding/json. It implements
// json.Marshaler and json.Unmarshaler with the discriminator in "Tipo", so
// an Envelope can sit anywhere a plain struct field can.
type Envelope struct {
	Operation Operation
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	codec, err := getEnvelopeCodec()
	if err != nil {
		return err
	}
	op, err := codec.Decode(data)
	if err != nil {
		return err
	}
	e.Operation = op
	return nil
}

// MarshalJSON implements json.Marshaler.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Operation == nil {
		return nil, errors.New("no operation set in envelope")
	}
	codec, err := getEnvelopeCodec()
	if err != nil {
		return nil, err
	}
	return codec.Encode(e.Operation)
}
