package unions

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type declaredSquare struct {
	Side int `json:"Side" union:"required"`
}

func (declaredSquare) DiscriminatorValue() string { return "square" }
func (s declaredSquare) Area() int                { return s.Side * s.Side }

type declaredRect struct {
	W int `json:"W"`
	H int `json:"H"`
}

func (*declaredRect) DiscriminatorValue() string { return "rect" }
func (r *declaredRect) Area() int                { return r.W * r.H }

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(
		Bind[square, shape]("square"),
		Bind[*rect, shape]("rect"),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"square", "rect"}, reg.Tags())

	info, ok := reg.Lookup("rect")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(&rect{}), info.Type)
	assert.Equal(t, []string{"W", "H"}, info.Required)

	_, ok = reg.Lookup("circle")
	assert.False(t, ok)

	tag, ok := reg.TagOf(&rect{})
	require.True(t, ok)
	assert.Equal(t, "rect", tag)

	_, ok = reg.TagOf(nil)
	assert.False(t, ok)
}

func TestNewRegistryErrors(t *testing.T) {
	tests := []struct {
		name     string
		bindings []Binding[shape]
	}{
		{
			name:     "no variants",
			bindings: nil,
		},
		{
			name:     "empty tag",
			bindings: []Binding[shape]{Bind[square, shape]("")},
		},
		{
			name:     "duplicate tag",
			bindings: []Binding[shape]{Bind[square, shape]("a"), Bind[circle, shape]("a")},
		},
		{
			name:     "duplicate type",
			bindings: []Binding[shape]{Bind[square, shape]("a"), Bind[square, shape]("b")},
		},
		{
			name: "value receiver missing",
			// rect implements shape only through its pointer.
			bindings: []Binding[shape]{Bind[rect, shape]("rect")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.bindings...)
			assert.Nil(t, reg)
			assert.ErrorIs(t, err, ErrInvalidRegistry)
		})
	}
}

func TestRegistryVariantsIsACopy(t *testing.T) {
	reg, err := NewRegistry(Bind[*rect, shape]("rect"))
	require.NoError(t, err)

	infos := reg.Variants()
	infos[0].Required[0] = "changed"

	again := reg.Variants()
	assert.Equal(t, []string{"W", "H"}, again[0].Required)
}

func TestFromDiscriminators(t *testing.T) {
	reg, err := FromDiscriminators[shape](declaredSquare{}, &declaredRect{})
	require.NoError(t, err)
	assert.Equal(t, []string{"square", "rect"}, reg.Tags())

	codec, err := NewCodec(reg, "$type")
	require.NoError(t, err)

	got, err := codec.Decode([]byte(`{"$type":"rect","w":3,"h":4}`))
	require.NoError(t, err)
	assert.Equal(t, &declaredRect{W: 3, H: 4}, got)
	assert.Equal(t, 12, got.Area())

	_, err = codec.Decode([]byte(`{"$type":"square"}`))
	assert.ErrorIs(t, err, ErrMissingField)

	data, err := codec.Encode(declaredSquare{Side: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"$type":"square","Side":2}`, string(data))
}

func TestFromDiscriminatorsRejectsUndeclared(t *testing.T) {
	_, err := FromDiscriminators[shape](declaredSquare{}, square{})
	assert.ErrorIs(t, err, ErrInvalidRegistry)
}

func TestFromDiscriminatorsNilSamples(t *testing.T) {
	_, err := FromDiscriminators[shape]((*declaredSquare)(nil))
	assert.ErrorIs(t, err, ErrInvalidRegistry)

	// Pointer receivers can report a tag through a nil pointer.
	reg, err := FromDiscriminators[shape]((*declaredRect)(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"rect"}, reg.Tags())
}

func TestParseUnionTag(t *testing.T) {
	assert.False(t, parseUnionTag("").Required)
	assert.True(t, parseUnionTag("required").Required)
	assert.True(t, parseUnionTag("other, required").Required)
	assert.False(t, parseUnionTag("optional").Required)
}

func TestBackendByName(t *testing.T) {
	assert.Equal(t, []string{"goccy", "jsoniter", "std"}, BackendNames())

	api, err := BackendByName("std")
	require.NoError(t, err)
	assert.Equal(t, StdJSON, api)

	_, err = BackendByName("xml")
	assert.Error(t, err)
}
