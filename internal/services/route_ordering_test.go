package services

import (
	"context"
	"math"
	"math/rand/v2"
	"salestrail-route-service/internal/domain"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	a := domain.GeoPoint{Lat: 33.4484, Lon: -112.0740}
	b := domain.GeoPoint{Lat: 34.0522, Lon: -118.2437}

	assert.Equal(t, 0.0, HaversineKm(a, a))
	assert.Equal(t, HaversineKm(a, b), HaversineKm(b, a))
	// Phoenix to Los Angeles is roughly 574 km great-circle.
	assert.InDelta(t, 574, HaversineKm(a, b), 5)
	// One degree of longitude on the equator.
	assert.InDelta(t, 111.195, HaversineKm(domain.GeoPoint{}, domain.GeoPoint{Lon: 1}), 0.01)
}

func TestSelectTopStops(t *testing.T) {
	scores := []float64{0.2, 0.9, 0.5, 0.9}

	assert.Equal(t, []int{0, 1, 2, 3}, SelectTopStops(scores, nil))
	assert.Equal(t, []int{0, 1, 2, 3}, SelectTopStops(scores, ptr(0)))
	assert.Equal(t, []int{0, 1, 2, 3}, SelectTopStops(scores, ptr(10)))
	// Stable: the two 0.9 stops keep input order.
	assert.Equal(t, []int{1, 3}, SelectTopStops(scores, ptr(2)))
	assert.Equal(t, []int{1, 3, 2}, SelectTopStops(scores, ptr(3)))
}

func TestGreedyOrder_StartsAtBestScoreWithoutOrigin(t *testing.T) {
	points := []domain.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 2}}
	scores := []float64{0.1, 0.2, 0.9}

	order := GreedyOrder(points, nil, scores, 0.4)
	if order[0] != 2 {
		t.Fatalf("expected first stop 2, got %d", order[0])
	}
	if !slices.Equal(order, []int{2, 1, 0}) {
		t.Fatalf("order = %v, want [2 1 0]", order)
	}
}

func TestGreedyOrder_StartsNearestOrigin(t *testing.T) {
	points := []domain.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 5}, {Lat: 0, Lon: 1}}
	origin := &domain.GeoPoint{Lat: 0, Lon: 4.9}

	order := GreedyOrder(points, origin, []float64{1, 0, 0}, 0.4)
	if order[0] != 1 {
		t.Fatalf("expected first stop 1, got %d", order[0])
	}
	if !slices.Equal(order, []int{1, 2, 0}) {
		t.Fatalf("order = %v, want [1 2 0]", order)
	}
}

func TestGreedyOrder_ScoreCanOutweighDistance(t *testing.T) {
	// From stop 0, stop 2 is farther but much more desirable.
	points := []domain.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.01}, {Lat: 0, Lon: 0.05}}
	scores := []float64{1, 0, 1}

	order := GreedyOrder(points, nil, scores, 0.4)
	assert.Equal(t, []int{0, 2, 1}, order)
}

func TestGreedyOrder_Empty(t *testing.T) {
	assert.Empty(t, GreedyOrder(nil, nil, nil, 0.4))
}

func TestTwoOpt_UntanglesCrossing(t *testing.T) {
	points := []domain.GeoPoint{
		{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 2}, {Lat: 0, Lon: 3}, {Lat: 0, Lon: 4},
	}
	tangled := []int{0, 2, 1, 3, 4}

	refined := TwoOpt(tangled, points, 0)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, refined)
	assert.Less(t, RouteLengthKm(refined, points), RouteLengthKm(tangled, points))
	assert.Equal(t, []int{0, 2, 1, 3, 4}, tangled, "input must not be mutated")
}

func TestTwoOptContext_StopsWhenCancelled(t *testing.T) {
	points := []domain.GeoPoint{
		{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 2}, {Lat: 0, Lon: 3}, {Lat: 0, Lon: 4},
	}
	tangled := []int{0, 2, 1, 3, 4}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := TwoOptContext(ctx, tangled, points, 0)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, tangled, got, "no pass runs after cancellation")

	got, err = TwoOptContext(context.Background(), tangled, points, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestTwoOpt_KeepsEndpoints(t *testing.T) {
	// Moving the last stop would help, but the final position is never reversed.
	points := []domain.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 3}, {Lat: 0, Lon: 2}, {Lat: 0, Lon: 1}}
	order := []int{0, 1, 2, 3}

	refined := TwoOpt(order, points, 0)
	assert.Equal(t, 0, refined[0])
	assert.Equal(t, 3, refined[len(refined)-1])
}

func TestTwoOpt_SmallToursUnchanged(t *testing.T) {
	points := []domain.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 0}, {Lat: 0, Lon: 1}}

	assert.Equal(t, []int{2, 0, 1}, TwoOpt([]int{2, 0, 1}, points, 0))
	assert.Equal(t, []int{1, 0}, TwoOpt([]int{1, 0}, points[:2], 0))
}

func TestTwoOpt_NeverLonger(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.IntN(10)
		points := make([]domain.GeoPoint, n)
		scores := make([]float64, n)
		for i := range points {
			points[i] = domain.GeoPoint{Lat: 30 + rng.Float64()*5, Lon: -100 + rng.Float64()*5}
			scores[i] = rng.Float64()
		}

		greedy := GreedyOrder(points, nil, scores, 0.4)
		refined := TwoOpt(greedy, points, DefaultTwoOptPasses)

		require.LessOrEqual(t, RouteLengthKm(refined, points), RouteLengthKm(greedy, points), "trial %d", trial)
		assertPermutation(t, refined, n)
	}
}

func TestFormatSummary_Units(t *testing.T) {
	s := domain.RouteSummary{DistanceKm: 10, Stops: 3, Unit: domain.UnitMiles, Strategy: domain.StrategyDistance}
	assert.Equal(t, "3 stops (strategy: distance): ~6.2 mi", FormatSummary(s))

	s.Unit = domain.UnitKilometers
	assert.Equal(t, "3 stops (strategy: distance): ~10.0 km", FormatSummary(s))
}

func TestRegionUnitSelector(t *testing.T) {
	phoenix := &domain.GeoPoint{Lat: 33.45, Lon: -112.07}
	paris := &domain.GeoPoint{Lat: 48.85, Lon: 2.35}
	honolulu := &domain.GeoPoint{Lat: 21.31, Lon: -157.86}
	sel := RegionUnitSelector{}

	assert.True(t, sel.UseMiles(domain.UnitMiles, paris, "fr-FR"))
	assert.False(t, sel.UseMiles(domain.UnitKilometers, phoenix, "en-US"))
	assert.True(t, sel.UseMiles(domain.UnitAuto, phoenix, ""))
	assert.False(t, sel.UseMiles(domain.UnitAuto, paris, "fr-FR,fr;q=0.9"))
	assert.True(t, sel.UseMiles(domain.UnitAuto, paris, "fr-FR,en-US;q=0.5"))
	assert.True(t, sel.UseMiles(domain.UnitAuto, nil, "en-us"))
	assert.False(t, sel.UseMiles(domain.UnitAuto, nil, "en-GB,en;q=0.8"))
	assert.False(t, sel.UseMiles(domain.UnitAuto, honolulu, ""), "Hawaii is outside the continental box")
}

func assertPermutation(t *testing.T, order []int, n int) {
	t.Helper()

	require.Len(t, order, n)
	sorted := slices.Clone(order)
	slices.Sort(sorted)
	for i, v := range sorted {
		require.Equal(t, i, v, "order %v is not a permutation of [0,%d)", order, n)
	}
}

// minLengthFrom returns the shortest open tour over points that starts at start.
func minLengthFrom(points []domain.GeoPoint, start int) float64 {
	rest := make([]int, 0, len(points)-1)
	for i := range points {
		if i != start {
			rest = append(rest, i)
		}
	}

	best := math.Inf(1)
	var permute func(k int)
	permute = func(k int) {
		if k == len(rest) {
			tour := append([]int{start}, rest...)
			best = math.Min(best, RouteLengthKm(tour, points))
			return
		}
		for i := k; i < len(rest); i++ {
			rest[k], rest[i] = rest[i], rest[k]
			permute(k + 1)
			rest[k], rest[i] = rest[i], rest[k]
		}
	}
	permute(0)
	return best
}
