package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"salestrail-route-service/internal/domain"
	"sync/atomic"
)

// StaticGeocoder answers from a fixed address table. Used offline by the CLI
// and in tests.
type StaticGeocoder struct {
	m     map[string]domain.GeoPoint
	calls atomic.Int64
}

func NewStaticGeocoder(points map[string]domain.GeoPoint) *StaticGeocoder {
	m := make(map[string]domain.GeoPoint, len(points))
	for addr, p := range points {
		m[domain.NormalizeAddress(addr)] = p
	}
	return &StaticGeocoder{m: m}
}

// LoadStaticGeocoder reads a JSON object of address -> {"lat","lon"}.
func LoadStaticGeocoder(path string) (*StaticGeocoder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load static geocodes: read %q: %w", path, err)
	}

	var points map[string]domain.GeoPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("load static geocodes: parse json: %w", err)
	}

	for addr, p := range points {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("load static geocodes: %q: %w", addr, err)
		}
	}

	return NewStaticGeocoder(points), nil
}

func (s *StaticGeocoder) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	s.calls.Add(1)

	if err := ctx.Err(); err != nil {
		return domain.GeoPoint{}, err
	}

	p, ok := s.m[domain.NormalizeAddress(address)]
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("%w: no entry for %q", domain.ErrAddressNotFound, address)
	}
	return p, nil
}

// Calls returns how many lookups have been made.
func (s *StaticGeocoder) Calls() int64 { return s.calls.Load() }
