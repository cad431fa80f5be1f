package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Check validates the structure of a generated document: a supported
// OpenAPI version, an info title, and discriminator mappings whose refs
// resolve to object schemas requiring the discriminator property.
func Check(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}

	switch doc.OpenAPI {
	case "3.0.0", "3.0.1", "3.0.2", "3.0.3", "3.1.0":
	default:
		return fmt.Errorf("unsupported OpenAPI version: %q", doc.OpenAPI)
	}
	if doc.Info.Title == "" {
		return fmt.Errorf("missing info title")
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return fmt.Errorf("no component schemas")
	}

	for name, s := range doc.Components.Schemas {
		if s.Discriminator == nil {
			continue
		}
		if err := checkUnion(doc.Components.Schemas, s); err != nil {
			return fmt.Errorf("schema %s: %w", name, err)
		}
	}
	return nil
}

func checkUnion(schemas map[string]*Schema, union *Schema) error {
	prop := union.Discriminator.PropertyName
	if prop == "" {
		return fmt.Errorf("discriminator has no propertyName")
	}
	if len(union.OneOf) != len(union.Discriminator.Mapping) {
		return fmt.Errorf("%d oneOf members but %d mapping entries", len(union.OneOf), len(union.Discriminator.Mapping))
	}

	for tag, ref := range union.Discriminator.Mapping {
		target, err := resolve(schemas, ref)
		if err != nil {
			return fmt.Errorf("mapping %q: %w", tag, err)
		}
		if target.Type != "object" {
			return fmt.Errorf("mapping %q: %s is not an object schema", tag, ref)
		}
		if !slices.Contains(target.Required, prop) {
			return fmt.Errorf("mapping %q: %s does not require %q", tag, ref, prop)
		}
		if !slices.ContainsFunc(union.OneOf, func(s *Schema) bool { return s.Ref == ref }) {
			return fmt.Errorf("mapping %q: %s is not a oneOf member", tag, ref)
		}
	}
	return nil
}

func resolve(schemas map[string]*Schema, ref string) (*Schema, error) {
	name, ok := strings.CutPrefix(ref, refPrefix)
	if !ok {
		return nil, fmt.Errorf("unsupported ref %q", ref)
	}
	s, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unresolved ref %q", ref)
	}
	return s, nil
}
