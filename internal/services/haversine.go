package services

import (
	"math"
	"salestrail-route-service/internal/domain"
)

const earthRadiusKm = 6371.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(a, b domain.GeoPoint) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// RouteLengthKm sums consecutive leg distances along order. No return leg is included.
func RouteLengthKm(order []int, points []domain.GeoPoint) float64 {
	total := 0.0
	for i := 0; i < len(order)-1; i++ {
		total += HaversineKm(points[order[i]], points[order[i+1]])
	}
	return total
}
