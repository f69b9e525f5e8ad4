package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/platform/obs"
	"strings"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves addresses with OpenRouteService (/geocode/search).
// It is safe for concurrent use.
type ORSGeocoder struct {
	client  *apiClient
	baseURL string
	country string
}

type ORSOption func(*ORSGeocoder)

// WithORSBaseURL points the geocoder at another host (tests, self-hosted ORS).
func WithORSBaseURL(u string) ORSOption {
	return func(g *ORSGeocoder) { g.baseURL = strings.TrimRight(u, "/") }
}

// WithORSCountry restricts results to an ISO country code. Without it results are worldwide.
func WithORSCountry(c string) ORSOption {
	return func(g *ORSGeocoder) { g.country = c }
}

func NewORSGeocoder(apiKey string, perSecond float64, opts ...ORSOption) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	g := &ORSGeocoder{
		client:  newAPIClient(perSecond, map[string]string{"Authorization": apiKey}),
		baseURL: defaultORSBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *ORSGeocoder) Geocode(ctx context.Context, address string) (_ domain.GeoPoint, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := domain.NormalizeAddress(address)
	if norm == "" {
		return domain.GeoPoint{}, fmt.Errorf("%w: empty address", domain.ErrAddressNotFound)
	}

	endpoint := g.baseURL + "/geocode/search"
	query := map[string]string{"text": norm, "size": "1"}
	if g.country != "" {
		query["boundary.country"] = g.country
	}

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		return g.client.newRequest(ctx, http.MethodGet, endpoint, query)
	})
	if err != nil {
		if ctx.Err() != nil {
			return domain.GeoPoint{}, err
		}
		return domain.GeoPoint{}, fmt.Errorf("%w: execute request: %v", domain.ErrGeocoderUpstream, err)
	}
	defer resp.Body.Close()

	var decoded orsGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: decode geocode response: %v", domain.ErrGeocoderUpstream, err)
	}

	if len(decoded.Features) == 0 {
		return domain.GeoPoint{}, fmt.Errorf("%w: no geocode results for %q", domain.ErrAddressNotFound, address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.GeoPoint{}, fmt.Errorf("%w: invalid coordinate format for %q", domain.ErrGeocoderUpstream, address)
	}

	// ORS returns GeoJSON order: [lon, lat].
	return domain.GeoPoint{Lat: coords[1], Lon: coords[0]}, nil
}
