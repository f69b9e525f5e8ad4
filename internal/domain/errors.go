package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when a key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAddressNotFound means the geocoder had no result for an address.
	ErrAddressNotFound = errors.New("address not found")

	// ErrGeocoderUpstream means the geocoding provider failed or answered garbage.
	ErrGeocoderUpstream = errors.New("geocoder upstream error")
)

// ValidationError rejects a request before any external call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// GeocodingError aborts an optimization when a single stop cannot be resolved.
// Index is the stop position in the request, or -1 when unknown.
type GeocodingError struct {
	Address string
	Index   int
	Err     error
}

func (e *GeocodingError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("geocode stop %d %q: %v", e.Index, e.Address, e.Err)
	}
	return fmt.Sprintf("geocode %q: %v", e.Address, e.Err)
}

func (e *GeocodingError) Unwrap() error { return e.Err }

// NotFound reports whether the address itself was unresolvable (vs. a provider failure).
func (e *GeocodingError) NotFound() bool { return errors.Is(e.Err, ErrAddressNotFound) }
