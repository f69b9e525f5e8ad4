package services

import (
	"context"
	"fmt"
	"salestrail-route-service/internal/domain"
	"salestrail-route-service/internal/ports"

	"github.com/go-viper/mapstructure/v2"
)

// PreferenceStore keeps one Preferences document per profile.
type PreferenceStore struct {
	Store ports.KVStore

	locks keyLocks
}

func NewPreferenceStore(store ports.KVStore) *PreferenceStore {
	return &PreferenceStore{Store: store}
}

// Load returns stored preferences layered over the defaults.
func (p *PreferenceStore) Load(ctx context.Context, profile string) (domain.Preferences, error) {
	prefs := domain.DefaultPreferences()
	if err := getJSONOrZero(ctx, p.Store, profileKey(profile, "preferences"), &prefs); err != nil {
		return domain.DefaultPreferences(), fmt.Errorf("load preferences: %w", err)
	}
	return prefs, nil
}

func (p *PreferenceStore) Save(ctx context.Context, profile string, prefs domain.Preferences) error {
	defer p.locks.lock(profileKey(profile, "preferences"))()
	return p.save(ctx, profile, prefs)
}

func (p *PreferenceStore) save(ctx context.Context, profile string, prefs domain.Preferences) error {
	if err := validatePreferences(prefs); err != nil {
		return err
	}
	if prefs.Categories == nil {
		prefs.Categories = []string{}
	}
	if err := setJSON(ctx, p.Store, profileKey(profile, "preferences"), prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Patch merges a partial document (JSON field names) into the stored preferences.
// Fields absent from patch keep their current values; unknown fields are rejected.
func (p *PreferenceStore) Patch(ctx context.Context, profile string, patch map[string]any) (domain.Preferences, error) {
	defer p.locks.lock(profileKey(profile, "preferences"))()

	prefs, err := p.Load(ctx, profile)
	if err != nil {
		return prefs, err
	}

	// Slices are decoded element-wise into the existing backing array; start fresh.
	if _, ok := patch["categories"]; ok {
		prefs.Categories = nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      &prefs,
	})
	if err != nil {
		return prefs, fmt.Errorf("patch preferences: build decoder: %w", err)
	}
	if err := dec.Decode(patch); err != nil {
		return prefs, domain.NewValidationError("preferences", "%v", err)
	}

	if err := p.save(ctx, profile, prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

func validatePreferences(prefs domain.Preferences) error {
	if _, err := domain.ParseUnitPref(string(prefs.Unit)); err != nil {
		return domain.NewValidationError("unit", "%v", err)
	}
	if err := prefs.Weights.Validate(); err != nil {
		return domain.NewValidationError("weights", "%v", err)
	}
	if prefs.Constraints.MaxStops != nil && *prefs.Constraints.MaxStops < 0 {
		return domain.NewValidationError("constraints.maxStops", "must not be negative")
	}
	if prefs.Alerts.SmartThreshold < 0 || prefs.Alerts.SmartThreshold > 1 {
		return domain.NewValidationError("alerts.smartThreshold", "must be within [0, 1]")
	}
	return nil
}
