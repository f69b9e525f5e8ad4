package services

import (
	"context"
	"fmt"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/ports"
	"slices"
	"time"
)

// Favorites tracks favorited sale listings per profile. The whole set is
// stored under one key so toggles stay consistent with the listing order.
type Favorites struct {
	Store ports.KVStore
	Now   func() time.Time

	locks keyLocks
}

func NewFavorites(store ports.KVStore) *Favorites {
	return &Favorites{Store: store, Now: time.Now}
}

func (f *Favorites) now() time.Time {
	if f.Now != nil {
		return f.Now().UTC()
	}
	return time.Now().UTC()
}

func (f *Favorites) load(ctx context.Context, profile string) (map[string]domain.FavoriteMeta, error) {
	m := map[string]domain.FavoriteMeta{}
	if err := getJSONOrZero(ctx, f.Store, profileKey(profile, "favorites"), &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]domain.FavoriteMeta{}
	}
	return m, nil
}

func (f *Favorites) save(ctx context.Context, profile string, m map[string]domain.FavoriteMeta) error {
	return setJSON(ctx, f.Store, profileKey(profile, "favorites"), m)
}

// Toggle flips the favorite state of id and reports the new state.
// When no meta is given a placeholder titled with the id is stored.
func (f *Favorites) Toggle(ctx context.Context, profile, id string, meta *domain.FavoriteMeta) (bool, error) {
	if id == "" {
		return false, domain.NewValidationError("id", "must not be empty")
	}

	defer f.locks.lock(profileKey(profile, "favorites"))()

	m, err := f.load(ctx, profile)
	if err != nil {
		return false, fmt.Errorf("toggle favorite %q: %w", id, err)
	}

	if _, ok := m[id]; ok {
		delete(m, id)
		if err := f.save(ctx, profile, m); err != nil {
			return false, fmt.Errorf("toggle favorite %q: %w", id, err)
		}
		return false, nil
	}

	entry := domain.FavoriteMeta{Title: id, URL: id}
	if meta != nil {
		entry = *meta
	}
	entry.SavedAt = f.now()
	m[id] = entry

	if err := f.save(ctx, profile, m); err != nil {
		return false, fmt.Errorf("toggle favorite %q: %w", id, err)
	}
	return true, nil
}

func (f *Favorites) IsFavorite(ctx context.Context, profile, id string) (bool, error) {
	m, err := f.load(ctx, profile)
	if err != nil {
		return false, fmt.Errorf("is favorite %q: %w", id, err)
	}
	_, ok := m[id]
	return ok, nil
}

// List returns favorites, most recently saved first.
func (f *Favorites) List(ctx context.Context, profile string) ([]domain.Favorite, error) {
	m, err := f.load(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	out := make([]domain.Favorite, 0, len(m))
	for id, meta := range m {
		out = append(out, domain.Favorite{ID: id, FavoriteMeta: meta})
	}
	slices.SortFunc(out, func(a, b domain.Favorite) int {
		if c := b.SavedAt.Compare(a.SavedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out, nil
}

func (f *Favorites) Remove(ctx context.Context, profile, id string) error {
	defer f.locks.lock(profileKey(profile, "favorites"))()

	m, err := f.load(ctx, profile)
	if err != nil {
		return fmt.Errorf("remove favorite %q: %w", id, err)
	}
	delete(m, id)
	if err := f.save(ctx, profile, m); err != nil {
		return fmt.Errorf("remove favorite %q: %w", id, err)
	}
	return nil
}

func (f *Favorites) Clear(ctx context.Context, profile string) error {
	defer f.locks.lock(profileKey(profile, "favorites"))()

	if err := f.Store.Delete(ctx, profileKey(profile, "favorites")); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}

func (f *Favorites) Count(ctx context.Context, profile string) (int, error) {
	m, err := f.load(ctx, profile)
	if err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return len(m), nil
}
