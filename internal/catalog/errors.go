package catalog

import (
	"fmt"
	"strings"
)

// unknownVariantError signals a --which value outside the registry.
type unknownVariantError struct{ id string }

func (e unknownVariantError) Error() string {
	return fmt.Sprintf("unknown model identifier %q (supported: %s)", e.id, strings.Join(VariantIDs(), ", "))
}

// ErrUnknownVariant constructs an unknownVariantError.
func ErrUnknownVariant(id string) error { return unknownVariantError{id: id} }

// IsUnknownVariant reports whether err indicates an unsupported --which value.
func IsUnknownVariant(err error) bool {
	_, ok := err.(unknownVariantError)
	return ok
}

// modelNotFoundError signals that no weight file matched a known variant.
type modelNotFoundError struct {
	id        string
	dir       string
	available []string
}

func (e modelNotFoundError) Error() string {
	if len(e.available) == 0 {
		return fmt.Sprintf("no GGUF weights for %q in %s (directory holds no models)", e.id, e.dir)
	}
	return fmt.Sprintf("no GGUF weights for %q in %s (found: %s)", e.id, e.dir, strings.Join(e.available, ", "))
}

// ErrModelNotFound constructs a modelNotFoundError.
func ErrModelNotFound(id, dir string, available []string) error {
	return modelNotFoundError{id: id, dir: dir, available: available}
}

// IsModelNotFound reports whether the error indicates missing weights for a
// known variant.
func IsModelNotFound(err error) bool {
	_, ok := err.(modelNotFoundError)
	return ok
}
