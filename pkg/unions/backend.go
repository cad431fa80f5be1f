package unions

import (
	"encoding/json"
	"fmt"
	"sort"

	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
)

// JSONAPI is the document parser/printer a Codec delegates to. Field
// matching on Unmarshal must be case-insensitive, as in encoding/json.
type JSONAPI interface {
	Marshal(v any) ([]byte, error)
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type stdJSON struct{}

func (stdJSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (stdJSON) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(v, prefix, indent)
}

func (stdJSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type goJSON struct{}

func (goJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

func (goJSON) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

func (goJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Available backends.
var (
	StdJSON JSONAPI = stdJSON{}

	Jsoniter JSONAPI = jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()

	GoJSON JSONAPI = goJSON{}
)

var backends = map[string]JSONAPI{
	"std":      StdJSON,
	"jsoniter": Jsoniter,
	"goccy":    GoJSON,
}

// BackendByName returns the backend registered under name.
func BackendByName(name string) (JSONAPI, error) {
	api, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown json backend %q (available: %v)", name, BackendNames())
	}
	return api, nil
}

// BackendNames returns the names accepted by BackendByName, sorted.
func BackendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
