package services

import "slices"

// SelectTopStops applies the maxStops constraint.
//
// It returns original stop indices for the retained subset. When no cap applies
// the identity order is returned; otherwise stops are ranked by descending score
// (stable, so equal scores keep input order) and the first maxStops are kept.
// The returned slice maps filtered position -> original index.
func SelectTopStops(scores []float64, maxStops *int) []int {
	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}

	if maxStops == nil || *maxStops <= 0 || *maxStops >= len(indices) {
		return indices
	}

	slices.SortStableFunc(indices, func(a, b int) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		}
		return 0
	})

	return indices[:*maxStops]
}
