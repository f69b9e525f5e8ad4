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

const defaultGoogleBaseURL = "https://maps.googleapis.com"

type googleGeocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location *struct {
				Lat *float64 `json:"lat"`
				Lng *float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GoogleGeocoder resolves addresses with the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client  *apiClient
	apiKey  string
	baseURL string
}

func NewGoogleGeocoder(apiKey string, perSecond float64, baseURL string) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key not configured")
	}
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	return &GoogleGeocoder{
		client:  newAPIClient(perSecond, nil),
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (_ domain.GeoPoint, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	norm := domain.NormalizeAddress(address)
	if norm == "" {
		return domain.GeoPoint{}, fmt.Errorf("%w: empty address", domain.ErrAddressNotFound)
	}

	endpoint := g.baseURL + "/maps/api/geocode/json"
	query := map[string]string{"address": norm, "key": g.apiKey}

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		return g.client.newRequest(ctx, http.MethodGet, endpoint, query)
	})
	if err != nil {
		if ctx.Err() != nil {
			return domain.GeoPoint{}, err
		}
		return domain.GeoPoint{}, fmt.Errorf("%w: geocoding failed: %v", domain.ErrGeocoderUpstream, err)
	}
	defer resp.Body.Close()

	var decoded googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: decode geocode response: %v", domain.ErrGeocoderUpstream, err)
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS":
		return domain.GeoPoint{}, fmt.Errorf("%w: no geocode result for %q", domain.ErrAddressNotFound, address)
	default:
		return domain.GeoPoint{}, fmt.Errorf("%w: status %s %s", domain.ErrGeocoderUpstream, decoded.Status, decoded.ErrorMessage)
	}

	if len(decoded.Results) == 0 {
		return domain.GeoPoint{}, fmt.Errorf("%w: no geocode result for %q", domain.ErrAddressNotFound, address)
	}

	loc := decoded.Results[0].Geometry.Location
	if loc == nil || loc.Lat == nil || loc.Lng == nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: invalid geocode response for %q", domain.ErrGeocoderUpstream, address)
	}

	return domain.GeoPoint{Lat: *loc.Lat, Lon: *loc.Lng}, nil
}
