package services

import (
	"fmt"
	"salestrail-route-service/internal/domain"
	"strings"

	"golang.org/x/text/language"
)

const kmToMiles = 0.621371

func KmToMiles(km float64) float64 { return km * kmToMiles }

// UnitSelector decides whether a summary is shown in miles.
type UnitSelector interface {
	UseMiles(pref domain.UnitPref, origin *domain.GeoPoint, locale string) bool
}

// RegionUnitSelector resolves "auto" from the origin location and the request locale.
// The box is the continental US only; Alaska and Hawaii fall outside it.
type RegionUnitSelector struct{}

func (RegionUnitSelector) UseMiles(pref domain.UnitPref, origin *domain.GeoPoint, locale string) bool {
	switch pref {
	case domain.UnitMiles:
		return true
	case domain.UnitKilometers:
		return false
	}
	return WithinUSBox(origin) || LocalePrefersMiles(locale)
}

// WithinUSBox reports whether p lies in the continental US bounding box.
func WithinUSBox(p *domain.GeoPoint) bool {
	if p == nil {
		return false
	}
	return p.Lat >= 24 && p.Lat <= 49 && p.Lon <= -66 && p.Lon >= -125
}

// LocalePrefersMiles reports whether an Accept-Language style string names en-US.
func LocalePrefersMiles(locale string) bool {
	if strings.Contains(locale, "en-US") {
		return true
	}

	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil {
		return false
	}
	for _, tag := range tags {
		base, baseConf := tag.Base()
		region, regionConf := tag.Region()
		if baseConf == language.Exact && regionConf == language.Exact &&
			base.String() == "en" && region.String() == "US" {
			return true
		}
	}
	return false
}

// FormatSummary renders the one-line route summary. It always ends with the unit.
func FormatSummary(s domain.RouteSummary) string {
	distance := s.DistanceKm
	if s.Unit == domain.UnitMiles {
		distance = KmToMiles(distance)
	}
	return fmt.Sprintf("%d stops (strategy: %s): ~%.1f %s", s.Stops, s.Strategy, distance, s.Unit)
}
