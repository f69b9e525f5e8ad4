package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"salestrail-route-service/internal/domain"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestORSGeocoder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		assert.Equal(t, "1", r.URL.Query().Get("size"))
		assert.False(t, r.URL.Query().Has("boundary.country"), "no country boundary by default")

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("text") {
		case "1901 W Madison St, Phoenix":
			_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-112.0994,33.4484]}}]}`))
		case "broken":
			_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[1]}}]}`))
		case "denied":
			w.WriteHeader(http.StatusForbidden)
		default:
			_, _ = w.Write([]byte(`{"features":[]}`))
		}
	}))
	t.Cleanup(srv.Close)

	g, err := NewORSGeocoder("secret", 0, WithORSBaseURL(srv.URL))
	require.NoError(t, err)
	ctx := context.Background()

	p, err := g.Geocode(ctx, "  1901 W Madison St,   Phoenix ")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 33.4484, Lon: -112.0994}, p)

	_, err = g.Geocode(ctx, "atlantis")
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)

	_, err = g.Geocode(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrGeocoderUpstream)

	_, err = g.Geocode(ctx, "denied")
	assert.ErrorIs(t, err, domain.ErrGeocoderUpstream)

	_, err = g.Geocode(ctx, "")
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)

	_, err = NewORSGeocoder("", 1)
	require.Error(t, err)
}

func TestORSGeocoder_RetriesTransientFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[1,2]}}]}`))
	}))
	t.Cleanup(srv.Close)

	g, err := NewORSGeocoder("k", 0, WithORSBaseURL(srv.URL), WithORSCountry(""))
	require.NoError(t, err)

	p, err := g.Geocode(context.Background(), "flaky")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 2, Lon: 1}, p)
	assert.EqualValues(t, 2, hits.Load())
}

func TestORSGeocoder_CountryBoundary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CA", r.URL.Query().Get("boundary.country"))
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-79.38,43.65]}}]}`))
	}))
	t.Cleanup(srv.Close)

	g, err := NewORSGeocoder("k", 0, WithORSBaseURL(srv.URL), WithORSCountry("CA"))
	require.NoError(t, err)

	p, err := g.Geocode(context.Background(), "100 Queen St W, Toronto")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 43.65, Lon: -79.38}, p)
}

func TestGoogleGeocoder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "gkey", r.URL.Query().Get("key"))

		switch r.URL.Query().Get("address") {
		case "85004":
			_, _ = w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"Phoenix, AZ 85004, USA","geometry":{"location":{"lat":33.4515,"lng":-112.0685}}}]}`))
		case "nowhere":
			_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
		case "nolocation":
			_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{}}]}`))
		default:
			_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
		}
	}))
	t.Cleanup(srv.Close)

	g, err := NewGoogleGeocoder("gkey", 0, srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	p, err := g.Geocode(ctx, "85004")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 33.4515, Lon: -112.0685}, p)

	_, err = g.Geocode(ctx, "nowhere")
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)

	_, err = g.Geocode(ctx, "nolocation")
	assert.ErrorIs(t, err, domain.ErrGeocoderUpstream)

	_, err = g.Geocode(ctx, "anything")
	assert.ErrorIs(t, err, domain.ErrGeocoderUpstream)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")

	_, err = NewGoogleGeocoder("", 0, "")
	require.Error(t, err)
}

func TestStaticGeocoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geocodes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"A  St": {"lat": 1, "lon": 2}}`), 0o600))

	g, err := LoadStaticGeocoder(path)
	require.NoError(t, err)

	p, err := g.Geocode(context.Background(), "A St")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 1, Lon: 2}, p)

	_, err = g.Geocode(context.Background(), "B St")
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
	assert.EqualValues(t, 2, g.Calls())

	require.NoError(t, os.WriteFile(path, []byte(`{"bad": {"lat": 100, "lon": 0}}`), 0o600))
	_, err = LoadStaticGeocoder(path)
	require.Error(t, err)
}

// memoryCache is a GeocodeCache that can be told to fail.
type memoryCache struct {
	mu      sync.Mutex
	m       map[string]domain.GeoPoint
	failGet bool
	failPut bool
	puts    int
}

func (c *memoryCache) GetMany(_ context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, errors.New("cache down")
	}
	out := map[string]domain.GeoPoint{}
	for _, a := range addresses {
		if p, ok := c.m[a]; ok {
			out[a] = p
		}
	}
	return out, nil
}

func (c *memoryCache) PutMany(_ context.Context, results map[string]domain.GeoPoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	if c.failPut {
		return errors.New("cache read-only")
	}
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

func TestCachedGeocoder_ReadsThroughAndWritesBack(t *testing.T) {
	provider := NewStaticGeocoder(map[string]domain.GeoPoint{
		"A": {Lat: 1, Lon: 1},
		"B": {Lat: 2, Lon: 2},
	})
	cache := &memoryCache{m: map[string]domain.GeoPoint{"A": {Lat: 9, Lon: 9}}}

	g, err := NewCachedGeocoder(provider, cache, 2)
	require.NoError(t, err)

	got, err := g.GeocodeMany(context.Background(), []string{"A", " B", "B "})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.GeoPoint{"A": {Lat: 9, Lon: 9}, "B": {Lat: 2, Lon: 2}}, got)
	assert.EqualValues(t, 1, provider.Calls(), "only the miss reaches the provider")
	assert.Equal(t, domain.GeoPoint{Lat: 2, Lon: 2}, cache.m["B"])

	p, err := g.Geocode(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 2, Lon: 2}, p)
	assert.EqualValues(t, 1, provider.Calls(), "second lookup is served from cache")
}

func TestCachedGeocoder_CacheFailuresAreNotFatal(t *testing.T) {
	provider := NewStaticGeocoder(map[string]domain.GeoPoint{"A": {Lat: 1, Lon: 1}})
	cache := &memoryCache{m: map[string]domain.GeoPoint{}, failGet: true, failPut: true}

	g, err := NewCachedGeocoder(provider, cache, 0)
	require.NoError(t, err)

	p, err := g.Geocode(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 1, Lon: 1}, p)
	assert.Equal(t, 1, cache.puts)
}

func TestCachedGeocoder_MissFailureIsGeocodingError(t *testing.T) {
	provider := NewStaticGeocoder(map[string]domain.GeoPoint{})
	cache := &memoryCache{m: map[string]domain.GeoPoint{}}

	g, err := NewCachedGeocoder(provider, cache, 1)
	require.NoError(t, err)

	_, err = g.GeocodeMany(context.Background(), []string{"Nowhere"})
	var ge *domain.GeocodingError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Nowhere", ge.Address)
	assert.True(t, ge.NotFound())
	assert.Zero(t, cache.puts)

	_, err = NewCachedGeocoder(nil, cache, 1)
	require.Error(t, err)
}
