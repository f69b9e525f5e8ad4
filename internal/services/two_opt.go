package services

import (
	"context"
	"salestrail-route-service/internal/domain"
)

// DefaultTwoOptPasses bounds the refinement sweeps.
const DefaultTwoOptPasses = 50

// TwoOpt refines a tour by reversing segments [i..j] with 1 <= i < j <= n-2
// whenever the reversal strictly shortens the open route. The first stop never
// moves and the last position is never part of a reversal.
//
// Sweeps repeat until one makes no improvement or maxPasses is reached
// (DefaultTwoOptPasses when maxPasses <= 0). The result is never longer than order.
func TwoOpt(order []int, points []domain.GeoPoint, maxPasses int) []int {
	best, _ := TwoOptContext(context.Background(), order, points, maxPasses)
	return best
}

// TwoOptContext is TwoOpt that stops between passes once ctx is done.
// On cancellation it returns the best tour found so far with ctx.Err().
func TwoOptContext(ctx context.Context, order []int, points []domain.GeoPoint, maxPasses int) ([]int, error) {
	if maxPasses <= 0 {
		maxPasses = DefaultTwoOptPasses
	}

	best := append([]int(nil), order...)
	bestLen := RouteLengthKm(best, points)
	n := len(best)

	for pass := 0; pass < maxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		improved := false
		for i := 1; i < n-2; i++ {
			for j := i + 1; j < n-1; j++ {
				cand := reverseSegment(best, i, j)
				candLen := RouteLengthKm(cand, points)
				if candLen < bestLen {
					best = cand
					bestLen = candLen
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}

	return best, nil
}

// reverseSegment returns a copy of order with order[i..j] reversed.
func reverseSegment(order []int, i, j int) []int {
	out := make([]int, len(order))
	copy(out, order)
	for l, r := i, j; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}
