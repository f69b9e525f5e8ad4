package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/platform/metrics"
	"salestrail-route-service/internal/platform/obs"
	"salestrail-route-service/internal/ports"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CachedGeocoder puts a persistent GeocodeCache in front of a provider.
//
// It coordinates:
//   - Address normalization
//   - Cache lookups before any external call
//   - Concurrent provider lookups for cache misses
//   - Write-back of fresh results
//
// Cache failures are logged and never fail a lookup.
type CachedGeocoder struct {
	provider    ports.Geocoder
	cache       ports.GeocodeCache
	concurrency int
}

func NewCachedGeocoder(provider ports.Geocoder, cache ports.GeocodeCache, concurrency int) (*CachedGeocoder, error) {
	if provider == nil {
		return nil, errors.New("cached geocoder: provider is nil")
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &CachedGeocoder{provider: provider, cache: cache, concurrency: concurrency}, nil
}

// Delegate to the batched path to reuse caching logic.
func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	norm := domain.NormalizeAddress(address)
	if norm == "" {
		return domain.GeoPoint{}, fmt.Errorf("%w: empty address", domain.ErrAddressNotFound)
	}

	results, err := c.GeocodeMany(ctx, []string{norm})
	if err != nil {
		return domain.GeoPoint{}, err
	}

	p, ok := results[norm]
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("%w: no result for %q", domain.ErrAddressNotFound, address)
	}
	return p, nil
}

// GeocodeMany resolves addresses, keyed by normalized address.
// A failed lookup is returned as *domain.GeocodingError naming the address.
func (c *CachedGeocoder) GeocodeMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.GeoPoint, err error) {
	defer obs.Time(ctx, "geocode.GeocodeMany")(&err)

	seen := make(map[string]struct{}, len(addresses))
	needed := make([]string, 0, len(addresses))
	for _, a := range addresses {
		n := domain.NormalizeAddress(a)
		if n == "" {
			return nil, &domain.GeocodingError{Address: a, Index: -1, Err: fmt.Errorf("%w: empty address", domain.ErrAddressNotFound)}
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		needed = append(needed, n)
	}

	if len(needed) == 0 {
		return map[string]domain.GeoPoint{}, nil
	}

	hits := map[string]domain.GeoPoint{}
	if c.cache != nil {
		cached, err := c.cache.GetMany(ctx, needed)
		if err != nil {
			log.Printf("req_id=%s geocode cache read failed: %v", obs.RequestID(ctx), err)
		} else {
			hits = cached
		}
	}

	misses := make([]string, 0, len(needed))
	for _, a := range needed {
		if _, ok := hits[a]; ok {
			metrics.GeocodeLookups.WithLabelValues("cache", "hit").Inc()
			continue
		}
		misses = append(misses, a)
	}

	fresh, err := c.fetch(ctx, misses)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && len(fresh) > 0 {
		if err := c.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("req_id=%s geocode cache write failed: %v", obs.RequestID(ctx), err)
		}
	}

	out := make(map[string]domain.GeoPoint, len(hits)+len(fresh))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fresh {
		out[k] = v
	}
	return out, nil
}

func (c *CachedGeocoder) fetch(ctx context.Context, misses []string) (map[string]domain.GeoPoint, error) {
	out := make(map[string]domain.GeoPoint, len(misses))
	if len(misses) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	var mu sync.Mutex

	for _, a := range misses {
		g.Go(func() error {
			p, err := c.provider.Geocode(gctx, a)
			if err != nil {
				metrics.GeocodeLookups.WithLabelValues("provider", "error").Inc()
				return &domain.GeocodingError{Address: a, Index: -1, Err: err}
			}
			metrics.GeocodeLookups.WithLabelValues("provider", "ok").Inc()

			mu.Lock()
			out[a] = p
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
