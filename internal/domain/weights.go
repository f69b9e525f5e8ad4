package domain

import "fmt"

// WeightVector tunes how much each signal contributes to a route.
// Distance is a travel penalty coefficient; the other four weigh per-stop desirability.
type WeightVector struct {
	Distance  float64 `json:"distance"`
	Time      float64 `json:"time"`
	Quality   float64 `json:"quality"`
	Weather   float64 `json:"weather"`
	Favorites float64 `json:"favorites"`
}

func DefaultWeights() WeightVector {
	return WeightVector{
		Distance:  0.4,
		Time:      0.2,
		Quality:   0.3,
		Weather:   0.05,
		Favorites: 0.05,
	}
}

func (w WeightVector) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"distance", w.Distance},
		{"time", w.Time},
		{"quality", w.Quality},
		{"weather", w.Weather},
		{"favorites", w.Favorites},
	}
	for _, f := range fields {
		if f.v < 0 {
			return fmt.Errorf("weight %q must be non-negative, got %v", f.name, f.v)
		}
	}
	return nil
}

// Constraints limit the stop set before ordering.
// A nil or non-positive MaxStops means "no cap".
type Constraints struct {
	MaxStops *int `json:"maxStops,omitempty"`
}
