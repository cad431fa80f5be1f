package unions

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// Discriminator interface allows types to specify their discriminator value.
// FromDiscriminators builds a Registry from values implementing it, so a
// variant can declare its tag next to its shape instead of at the call site.
type Discriminator interface {
	// DiscriminatorValue returns the unique discriminator value for this type.
	// This value should match what's in the JSON discriminator field.
	DiscriminatorValue() string
}

// Document is a parsed top-level JSON object with its members left raw.
type Document map[string]json.RawMessage

// Lookup returns the raw member named name. An exact key wins; otherwise
// keys are compared case-insensitively and the smallest matching key is
// used so that the result does not depend on map iteration order.
func (d Document) Lookup(name string) (json.RawMessage, bool) {
	if raw, ok := d[name]; ok {
		return raw, true
	}
	key, ok := d.foldKey(name)
	if !ok {
		return nil, false
	}
	return d[key], true
}

func (d Document) foldKey(name string) (string, bool) {
	found := ""
	ok := false
	for k := range d {
		if !strings.EqualFold(k, name) {
			continue
		}
		if !ok || k < found {
			found = k
			ok = true
		}
	}
	return found, ok
}

// removeFold deletes every key equal to name under case folding.
func (d Document) removeFold(name string) {
	for k := range d {
		if strings.EqualFold(k, name) {
			delete(d, k)
		}
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

// UnionTagInfo holds parsed information from a `union` struct tag.
type UnionTagInfo struct {
	Required bool
}

// parseUnionTag parses a tag value like `required`. Items are
// comma-separated; unknown items are ignored.
func parseUnionTag(tag string) UnionTagInfo {
	var info UnionTagInfo
	if tag == "" {
		return info
	}
	for _, p := range strings.Split(tag, ",") {
		if strings.TrimSpace(p) == "required" {
			info.Required = true
		}
	}
	return info
}

// jsonFieldName returns the JSON member name used for a struct field, or ""
// when the field is skipped by encoding/json.
func jsonFieldName(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// requiredFields lists the JSON names of fields tagged `union:"required"`.
func requiredFields(t reflect.Type) []string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var names []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !parseUnionTag(field.Tag.Get("union")).Required {
			continue
		}
		if name := jsonFieldName(field); name != "" {
			names = append(names, name)
		}
	}
	return names
}
