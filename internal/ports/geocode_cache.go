package ports

import (
	"context"
	"salestrail-route-service/internal/domain"
)

// Persistent address -> coordinate cache consulted before calling a provider.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
	PutMany(ctx context.Context, results map[string]domain.GeoPoint) error
}
