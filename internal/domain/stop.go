package domain

import "time"

// Optional per-stop desirability signals supplied alongside the address list.
// Every field may be absent; absent fields score neutrally.
type StopMeta struct {
	StartTime       *time.Time `json:"startTime,omitempty"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	QualityScore    *float64   `json:"qualityScore,omitempty"`
	Favorite        *bool      `json:"favorite,omitempty"`
	WeatherGoodness *float64   `json:"weatherGoodness,omitempty"`
}

// IsFavorite is a nil-safe accessor for the favorite flag.
func (m StopMeta) IsFavorite() bool {
	return m.Favorite != nil && *m.Favorite
}

// Stop is a single address the user wants to visit, with its optional metadata.
type Stop struct {
	Address string
	Meta    StopMeta
}
