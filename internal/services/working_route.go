package services

import (
	"context"
	"fmt"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/ports"
)

// WorkingRoutes holds the stop list a profile is currently curating.
type WorkingRoutes struct {
	Store ports.KVStore

	locks keyLocks
}

func NewWorkingRoutes(store ports.KVStore) *WorkingRoutes {
	return &WorkingRoutes{Store: store}
}

func (w *WorkingRoutes) Get(ctx context.Context, profile string) (domain.WorkingRoute, error) {
	wr := domain.WorkingRoute{Stops: []domain.RouteStop{}}
	if err := getJSONOrZero(ctx, w.Store, profileKey(profile, "working-route"), &wr); err != nil {
		return domain.WorkingRoute{Stops: []domain.RouteStop{}}, fmt.Errorf("get working route: %w", err)
	}
	if wr.Stops == nil {
		wr.Stops = []domain.RouteStop{}
	}
	return wr, nil
}

func (w *WorkingRoutes) Set(ctx context.Context, profile string, wr domain.WorkingRoute) error {
	defer w.locks.lock(profileKey(profile, "working-route"))()
	return w.set(ctx, profile, wr)
}

func (w *WorkingRoutes) set(ctx context.Context, profile string, wr domain.WorkingRoute) error {
	if wr.Stops == nil {
		wr.Stops = []domain.RouteStop{}
	}
	if wr.SelectedIndex != nil && (*wr.SelectedIndex < 0 || *wr.SelectedIndex >= len(wr.Stops)) {
		wr.SelectedIndex = nil
	}
	if err := setJSON(ctx, w.Store, profileKey(profile, "working-route"), wr); err != nil {
		return fmt.Errorf("set working route: %w", err)
	}
	return nil
}

func (w *WorkingRoutes) update(ctx context.Context, profile string, fn func(*domain.WorkingRoute)) (domain.WorkingRoute, error) {
	defer w.locks.lock(profileKey(profile, "working-route"))()

	wr, err := w.Get(ctx, profile)
	if err != nil {
		return wr, err
	}
	fn(&wr)
	if err := w.set(ctx, profile, wr); err != nil {
		return wr, err
	}
	return w.Get(ctx, profile)
}

func (w *WorkingRoutes) AddStop(ctx context.Context, profile string, stop domain.RouteStop) (domain.WorkingRoute, error) {
	return w.update(ctx, profile, func(wr *domain.WorkingRoute) {
		wr.Stops = append(wr.Stops, stop)
	})
}

// RemoveStop drops the stop at index; an out-of-range index changes nothing.
func (w *WorkingRoutes) RemoveStop(ctx context.Context, profile string, index int) (domain.WorkingRoute, error) {
	return w.update(ctx, profile, func(wr *domain.WorkingRoute) {
		if index < 0 || index >= len(wr.Stops) {
			return
		}
		wr.Stops = append(wr.Stops[:index], wr.Stops[index+1:]...)
	})
}

// MoveStop shifts the stop at index one place up (dir -1) or down (dir +1).
// Moves past either end are ignored.
func (w *WorkingRoutes) MoveStop(ctx context.Context, profile string, index, dir int) (domain.WorkingRoute, error) {
	if dir != -1 && dir != 1 {
		return domain.WorkingRoute{}, domain.NewValidationError("dir", "must be -1 or 1")
	}
	return w.update(ctx, profile, func(wr *domain.WorkingRoute) {
		j := index + dir
		if index < 0 || index >= len(wr.Stops) || j < 0 || j >= len(wr.Stops) {
			return
		}
		wr.Stops[index], wr.Stops[j] = wr.Stops[j], wr.Stops[index]
	})
}

func (w *WorkingRoutes) SetSelected(ctx context.Context, profile string, index *int) (domain.WorkingRoute, error) {
	return w.update(ctx, profile, func(wr *domain.WorkingRoute) {
		wr.SelectedIndex = index
	})
}
