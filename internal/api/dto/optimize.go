package dto

// OptimizeRouteRequest is the POST /optimize-route body.
type OptimizeRouteRequest struct {
	Stops       []string        `json:"stops"`
	Origin      *GeoPoint       `json:"origin"`
	Strategy    string          `json:"strategy"`
	Unit        string          `json:"unit"`
	Weights     *Weights        `json:"weights"`
	Constraints *Constraints    `json:"constraints"`
	StopMeta    []*StopMetaItem `json:"stopMeta"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Weights fields are optional; missing ones take the service defaults.
type Weights struct {
	Distance  *float64 `json:"distance"`
	Time      *float64 `json:"time"`
	Quality   *float64 `json:"quality"`
	Weather   *float64 `json:"weather"`
	Favorites *float64 `json:"favorites"`
}

type Constraints struct {
	MaxStops *int `json:"maxStops"`
}

// StopMetaItem carries times as ISO-8601 strings.
type StopMetaItem struct {
	StartTime       *string  `json:"startTime"`
	EndTime         *string  `json:"endTime"`
	QualityScore    *float64 `json:"qualityScore"`
	Favorite        *bool    `json:"favorite"`
	WeatherGoodness *float64 `json:"weatherGoodness"`
}

type OptimizeRouteResponse struct {
	Order   []int  `json:"order"`
	Summary string `json:"summary"`
}
