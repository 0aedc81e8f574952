// Package config defines the run configuration and how it is loaded.
package config

import (
	"fmt"
	"time"
)

// Engine names accepted by the engine key.
const (
	EngineLocal  = "local"
	EngineRemote = "remote"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Engine selects the matching strategy: local or remote.
	Engine string `koanf:"engine"`
	// RematchAll ignores persisted state and matches the whole venue list.
	RematchAll bool `koanf:"rematch_all"`
	// IncludeNewVenues adds never-seen source venues to an incremental run.
	IncludeNewVenues bool `koanf:"include_new_venues"`
	// Rules names the local matcher rules in priority order. Empty means the
	// default rule set.
	Rules []string `koanf:"rules"`

	VenuesPath    string `koanf:"venues_path"`
	RoomsPath     string `koanf:"rooms_path"`
	MatchedPath   string `koanf:"matched_path"`
	UnmatchedPath string `koanf:"unmatched_path"`
	FinalPath     string `koanf:"final_path"`
	// MetricsPath, when set, receives the run's metrics in Prometheus text
	// format.
	MetricsPath string `koanf:"metrics_path"`

	GeocodeURL string `koanf:"geocode_url"`
	FindURL    string `koanf:"find_url"`
	FindLayer  int    `koanf:"find_layer"`

	// MinScore is the geocode acceptance threshold; scores must be strictly
	// above it.
	MinScore          float64 `koanf:"min_score"`
	BatchSize         int     `koanf:"batch_size"`
	EnrichConcurrency int     `koanf:"enrich_concurrency"`
	HTTPTimeoutMS     int     `koanf:"http_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Engine:            EngineLocal,
		VenuesPath:        "./data/venues.json",
		RoomsPath:         "./data/rooms.json",
		MatchedPath:       "./results/matchedVenues.json",
		UnmatchedPath:     "./results/unmatchedVenues.json",
		FinalPath:         "./results/finalVenues.json",
		GeocodeURL:        "https://arcgis.ami-lab.org/arcgis/rest/services/FULL_NUS_NETWORK_051017/POI_LOCATOR_051017/GeocodeServer/geocodeAddresses",
		FindURL:           "https://arcgis.ami-lab.org/arcgis/rest/services/FULL_NUS_NETWORK_051017/FULL_NUS_NETWORK_051017/MapServer/find",
		FindLayer:         8,
		MinScore:          71,
		BatchSize:         50,
		EnrichConcurrency: 10,
		HTTPTimeoutMS:     30_000,
	}
}

// HTTPTimeout returns the per-request timeout of remote calls.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Engine {
	case EngineLocal:
		if c.RoomsPath == "" {
			return invalid("rooms_path must not be empty for the local engine")
		}
	case EngineRemote:
		if c.GeocodeURL == "" {
			return invalid("geocode_url must not be empty for the remote engine")
		}
	default:
		return invalid(fmt.Sprintf("engine %q is not one of %s, %s", c.Engine, EngineLocal, EngineRemote))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return invalid(fmt.Sprintf("log_format %q is not one of text, json", c.LogFormat))
	}

	if c.VenuesPath == "" {
		return invalid("venues_path must not be empty")
	}
	if c.MatchedPath == "" || c.UnmatchedPath == "" {
		return invalid("matched_path and unmatched_path must not be empty")
	}
	if c.MinScore < 0 {
		return invalid("min_score must not be negative")
	}
	if c.BatchSize <= 0 {
		return invalid("batch_size must be positive")
	}
	if c.EnrichConcurrency <= 0 {
		return invalid("enrich_concurrency must be positive")
	}
	if c.HTTPTimeoutMS <= 0 {
		return invalid("http_timeout_ms must be positive")
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}
