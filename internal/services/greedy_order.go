package services

import (
	"math"
	"salestrail-route-service/internal/domain"
)

// Travel penalty granularity: each 10 km costs distanceWeight in score units.
const penaltyKmUnit = 10.0

// Build an initial tour with a greedy nearest/best-value heuristic.
//
// The first stop is the one closest to origin, or the highest scoring stop when
// no origin is given. Each following stop maximizes
// score - distanceWeight * (km from current / 10). Ties resolve to the lowest index.
// The result is always a permutation of [0, len(points)).
func GreedyOrder(
	points []domain.GeoPoint,
	origin *domain.GeoPoint,
	saleScores []float64,
	distanceWeight float64,
) []int {
	n := len(points)
	order := make([]int, 0, n)
	if n == 0 {
		return order
	}

	visited := make([]bool, n)

	current := -1
	if origin != nil {
		bestDist := math.Inf(1)
		for i := 0; i < n; i++ {
			if d := HaversineKm(*origin, points[i]); d < bestDist {
				bestDist = d
				current = i
			}
		}
	} else {
		bestScore := math.Inf(-1)
		for i := 0; i < n; i++ {
			if saleScores[i] > bestScore {
				bestScore = saleScores[i]
				current = i
			}
		}
	}
	// All candidates compared false (NaN inputs); fall back to input order.
	if current < 0 {
		current = 0
	}

	order = append(order, current)
	visited[current] = true

	for len(order) < n {
		next := -1
		bestValue := math.Inf(-1)

		// Select next stop by best value (greedy step).
		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			dKm := HaversineKm(points[current], points[i])
			value := saleScores[i] - distanceWeight*(dKm/penaltyKmUnit)
			if next < 0 || value > bestValue {
				bestValue = value
				next = i
			}
		}

		order = append(order, next)
		visited[next] = true
		current = next
	}

	return order
}
