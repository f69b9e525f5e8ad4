package ports

import (
	"context"
	"salestrail-route-service/internal/domain"
)

//go:generate mockgen -source=geocoder.go -destination=mocks/mock_geocoder.go -package=mocks

// Contract for resolving an address string to coordinates.
type Geocoder interface {
	// Return the coordinates for an address. Unresolvable addresses yield an
	// error wrapping domain.ErrAddressNotFound; provider failures wrap domain.ErrGeocoderUpstream.
	Geocode(ctx context.Context, address string) (domain.GeoPoint, error)
}

// Optional extension of Geocoder that supports batched lookups.
type BatchGeocoder interface {
	Geocoder
	// Return coordinates keyed by normalized address.
	GeocodeMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
}
