package domain

// Preferences hold the per-profile settings the UI feeds into route requests.
type Preferences struct {
	Unit               UnitPref     `json:"unit"`
	Weights            WeightVector `json:"weights"`
	Constraints        Constraints  `json:"constraints"`
	Mode               string       `json:"mode"`
	Categories         []string     `json:"categories"`
	Travel             TravelPrefs  `json:"travel"`
	TimeOfDay          string       `json:"timeOfDay"`
	WeatherSensitivity string       `json:"weatherSensitivity"`
	Display            DisplayPrefs `json:"display"`
	Social             SocialPrefs  `json:"social"`
	Alerts             AlertPrefs   `json:"alerts"`
}

type TravelPrefs struct {
	Style    string  `json:"style"`
	RadiusMi float64 `json:"radiusMi"`
}

type DisplayPrefs struct {
	DefaultTab string `json:"defaultTab"`
	View       string `json:"view"`
	Theme      string `json:"theme"`
}

type SocialPrefs struct {
	ShowRatings bool `json:"showRatings"`
	ShowFinds   bool `json:"showFinds"`
	PrivateMode bool `json:"privateMode"`
}

type AlertPrefs struct {
	AutoFavoriteKeywords string  `json:"autoFavoriteKeywords"`
	Push                 bool    `json:"push"`
	Email                bool    `json:"email"`
	SmartThreshold       float64 `json:"smartThreshold"`
}

// Known shopper categories.
var CategoryOptions = []string{
	"Antiques & Collectibles",
	"Tools & Hardware",
	"Electronics",
	"Furniture",
	"Vinyl/Media",
	"Clothing & Apparel",
	"Toys/Kids",
}

func DefaultPreferences() Preferences {
	return Preferences{
		Unit:               UnitAuto,
		Weights:            DefaultWeights(),
		Mode:               "casual",
		Categories:         []string{},
		Travel:             TravelPrefs{Style: "local", RadiusMi: 10},
		TimeOfDay:          "flex",
		WeatherSensitivity: "all",
		Display:            DisplayPrefs{DefaultTab: "feed", View: "grid", Theme: "auto"},
		Social:             SocialPrefs{ShowRatings: true, ShowFinds: true, PrivateMode: false},
		Alerts:             AlertPrefs{SmartThreshold: 0.6},
	}
}
