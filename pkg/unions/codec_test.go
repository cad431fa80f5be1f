package unions

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shape interface {
	Area() int
}

type square struct {
	Side int `json:"Side" union:"required"`
}

func (s square) Area() int { return s.Side * s.Side }

type rect struct {
	W     int    `json:"W" union:"required"`
	H     int    `json:"H" union:"required"`
	Label string `json:"Label,omitempty"`
}

func (r *rect) Area() int { return r.W * r.H }

type circle struct {
	R int `json:"R" validate:"min=1"`
}

func (c circle) Area() int { return 3 * c.R * c.R }

func newShapeCodec(t *testing.T, field string, opts ...Option) *Codec[shape] {
	t.Helper()
	reg, err := NewRegistry(
		Bind[square, shape]("square"),
		Bind[*rect, shape]("rect"),
		Bind[circle, shape]("circle"),
	)
	require.NoError(t, err)
	codec, err := NewCodec(reg, field, opts...)
	require.NoError(t, err)
	return codec
}

func TestCodecDecode(t *testing.T) {
	codec := newShapeCodec(t, "kind")

	tests := []struct {
		name     string
		json     string
		want     shape
		wantArea int
	}{
		{
			name:     "value variant",
			json:     `{"kind":"square","Side":3}`,
			want:     square{Side: 3},
			wantArea: 9,
		},
		{
			name:     "pointer variant",
			json:     `{"kind":"rect","W":2,"H":5}`,
			want:     &rect{W: 2, H: 5},
			wantArea: 10,
		},
		{
			name:     "case-insensitive members",
			json:     `{"KIND":"rect","w":2,"h":5,"label":"door"}`,
			want:     &rect{W: 2, H: 5, Label: "door"},
			wantArea: 10,
		},
		{
			name:     "extra members ignored",
			json:     `{"kind":"square","Side":4,"color":"red","nested":{"a":[1,2]}}`,
			want:     square{Side: 4},
			wantArea: 16,
		},
		{
			name:     "optional member missing",
			json:     `{"kind":"circle","R":2}`,
			want:     circle{R: 2},
			wantArea: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.Decode([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantArea, got.Area())
		})
	}
}

func TestCodecDecodeErrors(t *testing.T) {
	codec := newShapeCodec(t, "kind")

	tests := []struct {
		name    string
		json    string
		wantErr error
		wantMsg string
	}{
		{name: "missing discriminator", json: `{"Side":3}`, wantErr: ErrMissingDiscriminator},
		{name: "missing discriminator empty object", json: `{}`, wantErr: ErrMissingDiscriminator},
		{name: "number discriminator", json: `{"kind":7,"Side":3}`, wantErr: ErrInvalidDiscriminator},
		{name: "null discriminator", json: `{"kind":null}`, wantErr: ErrInvalidDiscriminator},
		{name: "empty discriminator", json: `{"kind":""}`, wantErr: ErrInvalidDiscriminator},
		{name: "object discriminator", json: `{"kind":{"v":"square"}}`, wantErr: ErrInvalidDiscriminator},
		{name: "unknown variant", json: `{"kind":"hexagon","Side":3}`, wantErr: ErrUnknownVariant, wantMsg: `"hexagon"`},
		{name: "discriminator is case-sensitive", json: `{"kind":"Square","Side":3}`, wantErr: ErrUnknownVariant, wantMsg: `"Square"`},
		{name: "missing required field", json: `{"kind":"rect","W":2}`, wantErr: ErrMissingField, wantMsg: `"H"`},
		{name: "null required field", json: `{"kind":"square","Side":null}`, wantErr: ErrMissingField},
		{name: "wrong field type", json: `{"kind":"square","Side":"three"}`, wantErr: ErrMalformedPayload},
		{name: "failed validation", json: `{"kind":"circle","R":0}`, wantErr: ErrMalformedPayload, wantMsg: `"R"`},
		{name: "array document", json: `[{"kind":"square"}]`, wantErr: ErrMalformedDocument},
		{name: "null document", json: `null`, wantErr: ErrMalformedDocument},
		{name: "string document", json: `"square"`, wantErr: ErrMalformedDocument},
		{name: "invalid json", json: `{invalid}`, wantErr: ErrMalformedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.Decode([]byte(tt.json))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestCodecMissingFieldIsMalformedPayload(t *testing.T) {
	codec := newShapeCodec(t, "kind")

	_, err := codec.Decode([]byte(`{"kind":"rect","H":1}`))

	var perr *PayloadError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "rect", perr.Variant)
	assert.Equal(t, "W", perr.Field)
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestTypeErrorField(t *testing.T) {
	var std *json.UnmarshalTypeError
	err := json.Unmarshal([]byte(`{"Side":"three"}`), &square{})
	require.ErrorAs(t, err, &std)
	assert.Equal(t, "Side", typeErrorField(fmt.Errorf("wrapped: %w", err)))

	goErr := &gojson.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(0), Struct: "square", Field: "Side"}
	assert.Equal(t, "Side", typeErrorField(fmt.Errorf("wrapped: %w", goErr)))

	assert.Empty(t, typeErrorField(errors.New("unions.square.Side: ReadInt: unexpected character")))
}

func TestCodecUnknownVariantError(t *testing.T) {
	codec := newShapeCodec(t, "$type")

	_, err := codec.Decode([]byte(`{"$type":"multiplica","A":1,"B":2}`))

	var uerr *UnknownVariantError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "multiplica", uerr.Value)
	assert.Equal(t, "$type", uerr.Field)
	assert.Equal(t, `unknown variant "multiplica" in field "$type"`, err.Error())
}

func TestCodecWithoutValidation(t *testing.T) {
	codec := newShapeCodec(t, "kind", WithoutValidation())

	got, err := codec.Decode([]byte(`{"kind":"circle","R":0}`))
	require.NoError(t, err)
	assert.Equal(t, circle{R: 0}, got)
}

func TestCodecDecodeDocument(t *testing.T) {
	codec := newShapeCodec(t, "kind")

	doc, err := codec.Parse([]byte(`{"kind":"square","Side":5}`))
	require.NoError(t, err)

	got, err := codec.DecodeDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, square{Side: 5}, got)

	_, err = codec.DecodeDocument(nil)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestCodecEncode(t *testing.T) {
	codec := newShapeCodec(t, "kind")

	data, err := codec.Encode(&rect{W: 2, H: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"rect","W":2,"H":3}`, string(data))

	data, err = codec.Encode(square{Side: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"square","Side":7}`, string(data))
}

func TestCodecEncodeReplacesShadowingMember(t *testing.T) {
	type tagged struct {
		Kind string `json:"KIND"`
		Side int    `json:"Side"`
	}
	reg, err := NewRegistry(Bind[tagged, any]("tagged"))
	require.NoError(t, err)
	codec, err := NewCodec(reg, "kind")
	require.NoError(t, err)

	doc, err := codec.EncodeDocument(tagged{Kind: "stale", Side: 1})
	require.NoError(t, err)
	assert.Len(t, doc, 2)
	assert.JSONEq(t, `"tagged"`, string(doc["kind"]))
}

func TestCodecEncodeErrors(t *testing.T) {
	codec := newShapeCodec(t, "kind")

	_, err := codec.Encode(nil)
	assert.ErrorIs(t, err, ErrUnregisteredType)

	_, err = codec.Encode(triangle{})
	assert.ErrorIs(t, err, ErrUnregisteredType)
}

type triangle struct{}

func (triangle) Area() int { return 0 }

func TestCodecEncodeIndent(t *testing.T) {
	codec := newShapeCodec(t, "kind", WithIndent("  "))

	data, err := codec.Encode(square{Side: 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Side\": 1,\n  \"kind\": \"square\"\n}", string(data))
}

func TestCodecRoundTrip(t *testing.T) {
	values := []shape{
		square{Side: 9},
		&rect{W: 4, H: 6, Label: "window"},
		circle{R: 3},
	}

	for _, name := range BackendNames() {
		t.Run(name, func(t *testing.T) {
			api, err := BackendByName(name)
			require.NoError(t, err)
			codec := newShapeCodec(t, "$type", WithBackend(api))

			for _, v := range values {
				data, err := codec.Encode(v)
				require.NoError(t, err)

				got, err := codec.Decode(data)
				require.NoError(t, err)
				assert.Equal(t, v, got)

				again, err := codec.Encode(got)
				require.NoError(t, err)
				assert.JSONEq(t, string(data), string(again))
			}
		})
	}
}

func TestNewCodecErrors(t *testing.T) {
	_, err := NewCodec[shape](nil, "kind")
	assert.ErrorIs(t, err, ErrInvalidRegistry)

	reg, err := NewRegistry(Bind[square, shape]("square"))
	require.NoError(t, err)
	_, err = NewCodec(reg, "")
	assert.Error(t, err)
}

func TestDocumentLookup(t *testing.T) {
	doc := Document{
		"tipo": json.RawMessage(`"a"`),
		"Tipo": json.RawMessage(`"b"`),
		"TIPO": json.RawMessage(`"c"`),
	}

	raw, ok := doc.Lookup("Tipo")
	require.True(t, ok)
	assert.Equal(t, `"b"`, string(raw))

	raw, ok = doc.Lookup("tIPO")
	require.True(t, ok)
	assert.Equal(t, `"c"`, string(raw), "smallest folded key wins")

	_, ok = doc.Lookup("type")
	assert.False(t, ok)
}

func BenchmarkCodecDecode(b *testing.B) {
	reg, err := NewRegistry(Bind[*rect, shape]("rect"), Bind[square, shape]("square"))
	if err != nil {
		b.Fatal(err)
	}
	data := []byte(`{"kind":"rect","W":10,"H":20}`)

	for _, name := range BackendNames() {
		api, _ := BackendByName(name)
		codec, err := NewCodec(reg, "kind", WithBackend(api))
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := codec.Decode(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
