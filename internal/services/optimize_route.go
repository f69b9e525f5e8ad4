package services

import (
	"context"
	"errors"
	"fmt"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/platform/obs"
	"salestrail-route-service/internal/ports"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	defaultGeocodeConcurrency = 4

	// DefaultStopLimit caps stops per request; 2-opt cost grows with the cube of the count.
	DefaultStopLimit = 100
)

type OptimizeRouteRequest struct {
	Stops       []string
	Origin      *domain.GeoPoint
	Strategy    domain.Strategy
	Unit        domain.UnitPref
	Locale      string
	Weights     domain.WeightVector
	Constraints domain.Constraints
	StopMeta    []domain.StopMeta
}

// Validate rejects malformed requests before any geocoding happens.
func (r OptimizeRouteRequest) Validate() error {
	if len(r.Stops) < 2 {
		return domain.NewValidationError("stops", "need at least two stops, got %d", len(r.Stops))
	}
	for i, s := range r.Stops {
		if strings.TrimSpace(s) == "" {
			return domain.NewValidationError(fmt.Sprintf("stops[%d]", i), "address must not be empty")
		}
	}
	if len(r.StopMeta) > len(r.Stops) {
		return domain.NewValidationError("stopMeta", "has %d entries for %d stops", len(r.StopMeta), len(r.Stops))
	}
	if _, err := domain.ParseStrategy(string(r.Strategy)); err != nil {
		return domain.NewValidationError("strategy", "%v", err)
	}
	if _, err := domain.ParseUnitPref(string(r.Unit)); err != nil {
		return domain.NewValidationError("unit", "%v", err)
	}
	if err := r.Weights.Validate(); err != nil {
		return domain.NewValidationError("weights", "%v", err)
	}
	if r.Origin != nil {
		if err := r.Origin.Validate(); err != nil {
			return domain.NewValidationError("origin", "%v", err)
		}
	}
	return nil
}

// RouteOptimizer orders a set of stops by balancing travel distance against stop desirability.
// It holds no per-request state and is safe for concurrent use.
type RouteOptimizer struct {
	Geocoder ports.Geocoder
	Scorer   Scorer
	Units    UnitSelector
	// Upper bound on 2-opt sweeps; DefaultTwoOptPasses when zero.
	MaxPasses int
	// Parallel geocoding lookups when the geocoder has no batch support.
	Concurrency int
	// Largest accepted stop list; DefaultStopLimit when zero.
	StopLimit int
}

func NewRouteOptimizer(geocoder ports.Geocoder) *RouteOptimizer {
	return &RouteOptimizer{
		Geocoder:    geocoder,
		Scorer:      WeightedSumScorer{},
		Units:       RegionUnitSelector{},
		MaxPasses:   DefaultTwoOptPasses,
		Concurrency: defaultGeocodeConcurrency,
		StopLimit:   DefaultStopLimit,
	}
}

// Optimize geocodes, scores, filters, orders and refines the requested stops.
//
// Any geocoding failure aborts the whole request with a *domain.GeocodingError;
// no partial tour is ever returned.
func (o *RouteOptimizer) Optimize(ctx context.Context, req OptimizeRouteRequest) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "route.Optimize")(&err)

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if limit := o.stopLimit(); len(req.Stops) > limit {
		return nil, domain.NewValidationError("stops", "at most %d stops allowed, got %d", limit, len(req.Stops))
	}
	strategy, _ := domain.ParseStrategy(string(req.Strategy))
	unit, _ := domain.ParseUnitPref(string(req.Unit))

	if o.Geocoder == nil {
		return nil, errors.New("optimize route: geocoder is nil")
	}

	points, err := o.geocodeStops(ctx, req.Stops)
	if err != nil {
		return nil, err
	}

	// Scores are computed over the full stop set before any filtering.
	scoresAll := ComputeSaleScores(len(points), req.Weights, req.StopMeta, o.Scorer)
	indices := SelectTopStops(scoresAll, req.Constraints.MaxStops)

	selPoints := make([]domain.GeoPoint, len(indices))
	selScores := make([]float64, len(indices))
	for pos, idx := range indices {
		selPoints[pos] = points[idx]
		selScores[pos] = scoresAll[idx]
	}

	order := GreedyOrder(selPoints, req.Origin, selScores, req.Weights.Distance)
	if strategy.Refines() {
		if order, err = TwoOptContext(ctx, order, selPoints, o.MaxPasses); err != nil {
			return nil, fmt.Errorf("optimize route: refine: %w", err)
		}
	}

	units := o.Units
	if units == nil {
		units = RegionUnitSelector{}
	}
	displayUnit := domain.UnitKilometers
	if units.UseMiles(unit, req.Origin, req.Locale) {
		displayUnit = domain.UnitMiles
	}

	summary := domain.RouteSummary{
		DistanceKm: RouteLengthKm(order, selPoints),
		Stops:      len(order),
		Unit:       displayUnit,
		Strategy:   strategy,
	}

	// Map filtered positions back to request indices.
	original := make([]int, len(order))
	for i, pos := range order {
		original[i] = indices[pos]
	}

	return &domain.RouteResult{
		Order:   original,
		Summary: summary,
		Text:    FormatSummary(summary),
	}, nil
}

func (o *RouteOptimizer) stopLimit() int {
	if o.StopLimit <= 0 {
		return DefaultStopLimit
	}
	return o.StopLimit
}

// geocodeStops resolves every stop, reassembled in request order.
// Duplicate addresses are looked up once.
func (o *RouteOptimizer) geocodeStops(ctx context.Context, stops []string) (_ []domain.GeoPoint, err error) {
	defer obs.Time(ctx, "route.geocodeStops")(&err)

	norm := make([]string, len(stops))
	firstIndex := make(map[string]int, len(stops))
	uniq := make([]string, 0, len(stops))
	for i, s := range stops {
		norm[i] = domain.NormalizeAddress(s)
		if _, ok := firstIndex[norm[i]]; ok {
			continue
		}
		firstIndex[norm[i]] = i
		uniq = append(uniq, norm[i])
	}

	var resolved map[string]domain.GeoPoint
	if bg, ok := o.Geocoder.(ports.BatchGeocoder); ok {
		resolved, err = bg.GeocodeMany(ctx, uniq)
	} else {
		resolved, err = o.geocodeConcurrently(ctx, uniq)
	}
	if err != nil {
		var ge *domain.GeocodingError
		if errors.As(err, &ge) {
			if idx, ok := firstIndex[domain.NormalizeAddress(ge.Address)]; ok {
				ge.Index = idx
			}
			return nil, ge
		}
		return nil, fmt.Errorf("optimize route: geocode stops: %w", err)
	}

	points := make([]domain.GeoPoint, len(stops))
	for i, a := range norm {
		p, ok := resolved[a]
		if !ok {
			return nil, &domain.GeocodingError{Address: stops[i], Index: i, Err: domain.ErrAddressNotFound}
		}
		if err := p.Validate(); err != nil {
			return nil, &domain.GeocodingError{
				Address: stops[i],
				Index:   i,
				Err:     fmt.Errorf("%w: %v", domain.ErrGeocoderUpstream, err),
			}
		}
		points[i] = p
	}

	return points, nil
}

func (o *RouteOptimizer) geocodeConcurrently(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	limit := o.Concurrency
	if limit <= 0 {
		limit = defaultGeocodeConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	out := make(map[string]domain.GeoPoint, len(addresses))

	for _, a := range addresses {
		g.Go(func() error {
			p, err := o.Geocoder.Geocode(gctx, a)
			if err != nil {
				var ge *domain.GeocodingError
				if errors.As(err, &ge) {
					return ge
				}
				return &domain.GeocodingError{Address: a, Index: -1, Err: err}
			}

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
