package unions

import (
	"errors"
	"fmt"
)

// Error kinds returned by Codec. Use errors.Is to classify a failure.
var (
	ErrMissingDiscriminator = errors.New("missing discriminator")
	ErrInvalidDiscriminator = errors.New("invalid discriminator")
	ErrUnknownVariant       = errors.New("unknown variant")
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMalformedDocument    = errors.New("malformed document")
	ErrMissingField         = errors.New("missing required field")
	ErrUnregisteredType     = errors.New("unregistered variant type")
	ErrInvalidRegistry      = errors.New("invalid registry")
)

// UnknownVariantError reports a discriminator value with no registry entry.
type UnknownVariantError struct {
	Field string
	Value string
}

// Error implements the error interface.
func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant %q in field %q", e.Value, e.Field)
}

// Is reports whether target is ErrUnknownVariant.
func (e *UnknownVariantError) Is(target error) bool {
	return target == ErrUnknownVariant
}

// PayloadError reports a document whose discriminator resolved to a variant
// but whose payload does not fit that variant's shape. Field names the
// offending member when the backend reports it as a typed error (StdJSON and
// GoJSON); Jsoniter type errors leave it empty.
type PayloadError struct {
	Variant string
	Field   string
	Err     error
}

// Error implements the error interface.
func (e *PayloadError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed payload for variant %q: field %q: %v", e.Variant, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed payload for variant %q: %v", e.Variant, e.Err)
}

// Is reports whether target is ErrMalformedPayload.
func (e *PayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

// Unwrap returns the underlying cause.
func (e *PayloadError) Unwrap() error {
	return e.Err
}
