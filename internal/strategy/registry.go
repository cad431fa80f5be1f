package strategy

import (
	"github.com/gork-labs/polycodec/pkg/operation"
	"github.com/gork-labs/polycodec/pkg/unions"
)

type codecStrategy struct {
	name  string
	codec *unions.Codec[operation.Operation]
}

func newRegistryStrategy(name, field string, api unions.JSONAPI, opts ...unions.Option) (Strategy, error) {
	reg, err := operation.NewRegistry()
	if err != nil {
		return nil, err
	}
	return newCodecStrategy(name, reg, field, api, opts...)
}

func newCodecStrategy(name string, reg *unions.Registry[operation.Operation], field string, api unions.JSONAPI, opts ...unions.Option) (Strategy, error) {
	opts = append([]unions.Option{unions.WithBackend(api)}, opts...)
	codec, err := unions.NewCodec(reg, field, opts...)
	if err != nil {
		return nil, err
	}
	return &codecStrategy{name: name, codec: codec}, nil
}

func (s *codecStrategy) Name() string  { return s.name }
func (s *codecStrategy) Field() string { return s.codec.Field() }

func (s *codecStrategy) Decode(data []byte) (operation.Operation, error) {
	return s.codec.Decode(data)
}

func (s *codecStrategy) Encode(op operation.Operation) ([]byte, error) {
	return s.codec.Encode(op)
}
