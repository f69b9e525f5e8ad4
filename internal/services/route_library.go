package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/ports"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RouteLibrary persists named routes per profile.
type RouteLibrary struct {
	Store ports.KVStore
	Now   func() time.Time
}

func NewRouteLibrary(store ports.KVStore) *RouteLibrary {
	return &RouteLibrary{Store: store, Now: time.Now}
}

func NewRouteID() string {
	return "rt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (l *RouteLibrary) now() time.Time {
	if l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}

// List returns saved routes, most recently updated first.
func (l *RouteLibrary) List(ctx context.Context, profile string) ([]domain.SavedRoute, error) {
	entries, err := l.Store.List(ctx, profileKey(profile, "routes")+":")
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}

	routes := make([]domain.SavedRoute, 0, len(entries))
	for _, e := range entries {
		var r domain.SavedRoute
		if err := json.Unmarshal(e.Value, &r); err != nil {
			return nil, fmt.Errorf("list routes: decode %q: %w", e.Key, err)
		}
		routes = append(routes, r)
	}

	slices.SortStableFunc(routes, func(a, b domain.SavedRoute) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return routes, nil
}

func (l *RouteLibrary) Get(ctx context.Context, profile, id string) (*domain.SavedRoute, error) {
	var r domain.SavedRoute
	if err := getJSON(ctx, l.Store, profileKey(profile, "routes", id), &r); err != nil {
		return nil, fmt.Errorf("get route %q: %w", id, err)
	}
	return &r, nil
}

// Save stores route, assigning an id and timestamps as needed.
func (l *RouteLibrary) Save(ctx context.Context, profile string, route domain.SavedRoute) (*domain.SavedRoute, error) {
	route.ID = strings.TrimSpace(route.ID)
	if route.ID == "" {
		route.ID = NewRouteID()
	}
	if strings.Contains(route.ID, ":") {
		return nil, domain.NewValidationError("id", "must not contain ':'")
	}
	if route.Stops == nil {
		route.Stops = []domain.RouteStop{}
	}

	route.UpdatedAt = l.now()
	if route.CreatedAt.IsZero() {
		route.CreatedAt = route.UpdatedAt
	}

	if err := setJSON(ctx, l.Store, profileKey(profile, "routes", route.ID), route); err != nil {
		return nil, fmt.Errorf("save route %q: %w", route.ID, err)
	}
	return &route, nil
}

func (l *RouteLibrary) Delete(ctx context.Context, profile, id string) error {
	if err := l.Store.Delete(ctx, profileKey(profile, "routes", id)); err != nil {
		return fmt.Errorf("delete route %q: %w", id, err)
	}
	return nil
}

// Export returns all routes as a JSON object keyed by id.
func (l *RouteLibrary) Export(ctx context.Context, profile string) ([]byte, error) {
	routes, err := l.List(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("export routes: %w", err)
	}

	byID := make(map[string]domain.SavedRoute, len(routes))
	for _, r := range routes {
		byID[r.ID] = r
	}
	return json.Marshal(byID)
}

// Import merges an exported JSON object into the library; incoming routes win.
// Timestamps are kept as exported. Returns the number of routes written.
func (l *RouteLibrary) Import(ctx context.Context, profile string, data []byte) (int, error) {
	var byID map[string]domain.SavedRoute
	if err := json.Unmarshal(data, &byID); err != nil {
		return 0, domain.NewValidationError("body", "invalid routes export: %v", err)
	}
	if byID == nil {
		return 0, domain.NewValidationError("body", "routes export must be a JSON object")
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		r := byID[id]
		if r.ID == "" {
			r.ID = id
		}
		if strings.TrimSpace(r.ID) == "" || strings.Contains(r.ID, ":") {
			return 0, domain.NewValidationError("id", "invalid route id %q", r.ID)
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = l.now()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = r.UpdatedAt
		}
		if err := setJSON(ctx, l.Store, profileKey(profile, "routes", r.ID), r); err != nil {
			return 0, fmt.Errorf("import route %q: %w", r.ID, err)
		}
	}
	return len(ids), nil
}

// IsNotFound is a convenience for handlers.
func IsNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
