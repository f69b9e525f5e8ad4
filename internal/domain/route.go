package domain

import "fmt"

// Strategy selects how aggressively a tour is refined after greedy construction.
type Strategy string

const (
	StrategyDistance Strategy = "distance"
	StrategyBalanced Strategy = "balanced"
	StrategyQuality  Strategy = "quality"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return StrategyDistance, nil
	case StrategyDistance, StrategyBalanced, StrategyQuality:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q (allowed: distance, balanced, quality)", s)
}

// Refines reports whether the 2-opt pass runs for this strategy.
func (s Strategy) Refines() bool { return s != StrategyQuality }

// UnitPref is the caller's preferred display unit.
type UnitPref string

const (
	UnitAuto       UnitPref = "auto"
	UnitKilometers UnitPref = "km"
	UnitMiles      UnitPref = "mi"
)

func ParseUnitPref(s string) (UnitPref, error) {
	switch UnitPref(s) {
	case "":
		return UnitAuto, nil
	case UnitAuto, UnitKilometers, UnitMiles:
		return UnitPref(s), nil
	}
	return "", fmt.Errorf("unknown unit %q (allowed: auto, km, mi)", s)
}

// RouteSummary aggregates the chosen tour for display.
type RouteSummary struct {
	DistanceKm float64
	Stops      int
	Unit       UnitPref
	Strategy   Strategy
}

// RouteResult is the output of one optimization.
// Order holds original input indices in visiting order.
type RouteResult struct {
	Order   []int
	Summary RouteSummary
	Text    string
}
