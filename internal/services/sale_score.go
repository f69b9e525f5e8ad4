package services

import (
	"salestrail-route-service/internal/domain"
	"time"
)

// Scorer computes a location-independent desirability for one stop.
// Implementations must return a finite value for any input.
type Scorer interface {
	Score(meta domain.StopMeta, w domain.WeightVector) float64
}

// WeightedSumScorer is the default linear combination of time fit, quality,
// weather and favorite signals. The distance weight is not used here; it is
// applied later as a travel penalty during tour construction.
type WeightedSumScorer struct {
	Now func() time.Time
}

const (
	neutralScore      = 0.5
	startDecayHorizon = 4 * time.Hour
)

func (s WeightedSumScorer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s WeightedSumScorer) Score(meta domain.StopMeta, w domain.WeightVector) float64 {
	timeScore := s.timeScore(meta)
	quality := clampUnit(meta.QualityScore)
	weather := clampUnit(meta.WeatherGoodness)
	favorite := 0.0
	if meta.IsFavorite() {
		favorite = 1
	}

	return timeScore*w.Time + quality*w.Quality + weather*w.Weather + favorite*w.Favorites
}

func (s WeightedSumScorer) timeScore(meta domain.StopMeta) float64 {
	if meta.StartTime == nil && meta.EndTime == nil {
		return neutralScore
	}

	now := s.now()
	if meta.EndTime != nil && now.After(*meta.EndTime) {
		return 0
	}
	if meta.StartTime != nil && now.Before(*meta.StartTime) {
		// Linear decay: 1 at the start, 0 at 4h or more before it.
		hoursAhead := meta.StartTime.Sub(now).Hours()
		return clamp(1-hoursAhead/startDecayHorizon.Hours(), 0, 1)
	}
	return 1
}

func clampUnit(v *float64) float64 {
	if v == nil {
		return neutralScore
	}
	return clamp(*v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	// NaN compares false everywhere; treat it as the neutral value.
	if v != v {
		return neutralScore
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ComputeSaleScores scores n stops. meta is index-aligned and may be shorter than n;
// missing entries score with neutral defaults.
func ComputeSaleScores(n int, w domain.WeightVector, meta []domain.StopMeta, scorer Scorer) []float64 {
	if scorer == nil {
		scorer = WeightedSumScorer{}
	}

	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		var m domain.StopMeta
		if i < len(meta) {
			m = meta[i]
		}
		scores[i] = scorer.Score(m, w)
	}
	return scores
}
