package services

import (
	"math"
	"salestrail-route-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestWeightedSumScorer_NoMetadataIsNeutral(t *testing.T) {
	w := domain.DefaultWeights()
	got := WeightedSumScorer{}.Score(domain.StopMeta{}, w)

	want := 0.5*w.Time + 0.5*w.Quality + 0.5*w.Weather + 0*w.Favorites
	assert.InDelta(t, want, got, 1e-12)
}

func TestWeightedSumScorer_TimeWindow(t *testing.T) {
	now := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	scorer := WeightedSumScorer{Now: func() time.Time { return now }}
	timeOnly := domain.WeightVector{Time: 1}

	tests := []struct {
		name string
		meta domain.StopMeta
		want float64
	}{
		{name: "ended", meta: domain.StopMeta{EndTime: ptr(now.Add(-time.Minute))}, want: 0},
		{name: "ended even if started", meta: domain.StopMeta{
			StartTime: ptr(now.Add(-2 * time.Hour)),
			EndTime:   ptr(now.Add(-time.Hour)),
		}, want: 0},
		{name: "open now", meta: domain.StopMeta{
			StartTime: ptr(now.Add(-time.Hour)),
			EndTime:   ptr(now.Add(time.Hour)),
		}, want: 1},
		{name: "only end in future", meta: domain.StopMeta{EndTime: ptr(now.Add(time.Hour))}, want: 1},
		{name: "starts in 2h", meta: domain.StopMeta{StartTime: ptr(now.Add(2 * time.Hour))}, want: 0.5},
		{name: "starts in 1h", meta: domain.StopMeta{StartTime: ptr(now.Add(time.Hour))}, want: 0.75},
		{name: "starts in 6h", meta: domain.StopMeta{StartTime: ptr(now.Add(6 * time.Hour))}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scorer.Score(tt.meta, timeOnly), 1e-9)
		})
	}
}

func TestWeightedSumScorer_PastEndZeroesTimeTermRegardlessOfOtherFields(t *testing.T) {
	now := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	scorer := WeightedSumScorer{Now: func() time.Time { return now }}
	w := domain.DefaultWeights()

	meta := domain.StopMeta{
		EndTime:         ptr(now.Add(-time.Second)),
		QualityScore:    ptr(1.0),
		WeatherGoodness: ptr(1.0),
		Favorite:        ptr(true),
	}

	want := 0*w.Time + 1*w.Quality + 1*w.Weather + 1*w.Favorites
	assert.InDelta(t, want, scorer.Score(meta, w), 1e-12)
}

func TestWeightedSumScorer_ClampsSignals(t *testing.T) {
	qualityOnly := domain.WeightVector{Quality: 1}

	assert.Equal(t, 1.0, WeightedSumScorer{}.Score(domain.StopMeta{QualityScore: ptr(3.0)}, qualityOnly))
	assert.Equal(t, 0.0, WeightedSumScorer{}.Score(domain.StopMeta{QualityScore: ptr(-1.0)}, qualityOnly))
	assert.Equal(t, 0.5, WeightedSumScorer{}.Score(domain.StopMeta{QualityScore: ptr(math.NaN())}, qualityOnly))
}

func TestWeightedSumScorer_FavoriteFlag(t *testing.T) {
	favOnly := domain.WeightVector{Favorites: 1}

	assert.Equal(t, 1.0, WeightedSumScorer{}.Score(domain.StopMeta{Favorite: ptr(true)}, favOnly))
	assert.Equal(t, 0.0, WeightedSumScorer{}.Score(domain.StopMeta{Favorite: ptr(false)}, favOnly))
	assert.Equal(t, 0.0, WeightedSumScorer{}.Score(domain.StopMeta{}, favOnly))
}

func TestComputeSaleScores_ShortMetaPadsNeutral(t *testing.T) {
	w := domain.WeightVector{Quality: 1}
	scores := ComputeSaleScores(3, w, []domain.StopMeta{{QualityScore: ptr(0.9)}}, nil)

	assert.Equal(t, []float64{0.9, 0.5, 0.5}, scores)
}
