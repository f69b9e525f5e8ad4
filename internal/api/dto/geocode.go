package dto

type GeocodeLabel struct {
	Label string `json:"label"`
}

type GeocodeResponse struct {
	Lat float64      `json:"lat"`
	Lon float64      `json:"lon"`
	Raw GeocodeLabel `json:"raw"`
}
