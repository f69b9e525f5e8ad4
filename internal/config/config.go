package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Config is the resolved service configuration.
// Values come from an optional YAML file and are overridden by the environment.
type Config struct {
	Port string `yaml:"port"`

	Store       string `yaml:"store"`
	DatabaseURL string `yaml:"database_url"`
	SQLitePath  string `yaml:"sqlite_path"`
	RedisURL    string `yaml:"redis_url"`

	Geocoder           string  `yaml:"geocoder"`
	ORSAPIKey          string  `yaml:"ors_api_key"`
	ORSCountry         string  `yaml:"ors_country"`
	GoogleAPIKey       string  `yaml:"google_maps_api_key"`
	StaticGeocodes     string  `yaml:"static_geocodes"`
	GeocodeCache       string  `yaml:"geocode_cache"`
	GeocodeRate        float64 `yaml:"geocode_rate"`
	GeocodeConcurrency int     `yaml:"geocode_concurrency"`

	TwoOptMaxPasses int `yaml:"two_opt_max_passes"`
	MaxStops        int `yaml:"max_stops"`
}

func Defaults() Config {
	return Config{
		Port:               "8080",
		Store:              "memory",
		SQLitePath:         "data/app.db",
		Geocoder:           "ors",
		GeocodeCache:       "none",
		GeocodeRate:        5,
		GeocodeConcurrency: 4,
		TwoOptMaxPasses:    50,
		MaxStops:           100,
	}
}

// Load builds a Config from defaults, then the YAML file at path (if non-empty),
// then environment variables.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	cfg.Port = Get("PORT", cfg.Port)
	cfg.Store = strings.ToLower(Get("STORE", cfg.Store))
	cfg.DatabaseURL = Get("DATABASE_URL", cfg.DatabaseURL)
	cfg.SQLitePath = Get("SQLITE_PATH", cfg.SQLitePath)
	cfg.RedisURL = Get("REDIS_URL", cfg.RedisURL)
	cfg.Geocoder = strings.ToLower(Get("GEOCODER", cfg.Geocoder))
	cfg.ORSAPIKey = Get("ORS_API_KEY", cfg.ORSAPIKey)
	cfg.ORSCountry = strings.ToUpper(Get("ORS_COUNTRY", cfg.ORSCountry))
	cfg.GoogleAPIKey = Get("GOOGLE_MAPS_API_KEY", cfg.GoogleAPIKey)
	cfg.StaticGeocodes = Get("STATIC_GEOCODES", cfg.StaticGeocodes)
	cfg.GeocodeCache = strings.ToLower(Get("GEOCODE_CACHE", cfg.GeocodeCache))

	var err error
	if cfg.GeocodeRate, err = getFloat("GEOCODE_RATE", cfg.GeocodeRate); err != nil {
		return Config{}, err
	}
	if cfg.GeocodeConcurrency, err = getInt("GEOCODE_CONCURRENCY", cfg.GeocodeConcurrency); err != nil {
		return Config{}, err
	}
	if cfg.TwoOptMaxPasses, err = getInt("TWO_OPT_MAX_PASSES", cfg.TwoOptMaxPasses); err != nil {
		return Config{}, err
	}
	if cfg.MaxStops, err = getInt("MAX_STOPS", cfg.MaxStops); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c Config) Validate() error {
	var errs []error

	switch c.Store {
	case "memory":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for STORE=postgres"))
		}
	case "sqlite":
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for STORE=sqlite"))
		}
	case "redis":
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE %q is not one of memory, postgres, sqlite, redis", c.Store))
	}

	switch c.Geocoder {
	case "ors":
		if c.ORSAPIKey == "" {
			errs = append(errs, errors.New("ORS_API_KEY is required for GEOCODER=ors"))
		}
	case "google":
		if c.GoogleAPIKey == "" {
			errs = append(errs, errors.New("GOOGLE_MAPS_API_KEY is required for GEOCODER=google"))
		}
	case "static":
		if c.StaticGeocodes == "" {
			errs = append(errs, errors.New("STATIC_GEOCODES is required for GEOCODER=static"))
		}
	default:
		errs = append(errs, fmt.Errorf("GEOCODER %q is not one of ors, google, static", c.Geocoder))
	}

	switch c.GeocodeCache {
	case "", "none":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for GEOCODE_CACHE=postgres"))
		}
	case "sqlite":
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for GEOCODE_CACHE=sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("GEOCODE_CACHE %q is not one of none, postgres, sqlite", c.GeocodeCache))
	}

	if c.GeocodeRate <= 0 {
		errs = append(errs, errors.New("GEOCODE_RATE must be positive"))
	}
	if c.GeocodeConcurrency < 1 {
		errs = append(errs, errors.New("GEOCODE_CONCURRENCY must be at least 1"))
	}
	if c.TwoOptMaxPasses < 0 {
		errs = append(errs, errors.New("TWO_OPT_MAX_PASSES must not be negative"))
	}
	if c.MaxStops < 2 {
		errs = append(errs, errors.New("MAX_STOPS must be at least 2"))
	}

	return errors.Join(errs...)
}

func getInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("load config: %s=%q is not an integer", key, v)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("load config: %s=%q is not a number", key, v)
	}
	return f, nil
}
