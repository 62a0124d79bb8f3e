package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the configuration for the given command mode
// ("allocate", "serve", "runs"). All problems are reported at once.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch c.Store.Driver {
	case "none", "":
		if mode == "runs" {
			errs = append(errs, "store.driver must be sqlite or postgres to list runs")
		}
	case "sqlite", "postgres":
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required")
		}
	default:
		errs = append(errs, fmt.Sprintf("store.driver %q is not one of sqlite, postgres, none", c.Store.Driver))
	}

	if mode == "allocate" || mode == "serve" {
		if err := c.Scoring.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
		if c.Allocation.Workers < 1 {
			errs = append(errs, "allocation.workers must be >= 1")
		}
	}

	if mode == "serve" {
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server.port %d out of range", c.Server.Port))
		}
		if c.Server.RateLimit <= 0 {
			errs = append(errs, "server.rate_limit must be > 0")
		}
		if c.Server.Burst < 1 {
			errs = append(errs, "server.burst must be >= 1")
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks that scoring weights are non-negative and distance caps
// are positive.
func (s ScoringConfig) Validate() error {
	var errs []string

	weights := []struct {
		name string
		v    float64
	}{
		{"availability_weight", s.AvailabilityWeight},
		{"same_zone_weight", s.SameZoneWeight},
		{"proximity_weight", s.ProximityWeight},
		{"exit_weight", s.ExitWeight},
	}
	for _, w := range weights {
		if w.v < 0 {
			errs = append(errs, fmt.Sprintf("scoring.%s must be >= 0", w.name))
		}
	}
	if s.ProximityMaxKM <= 0 {
		errs = append(errs, "scoring.proximity_max_km must be > 0")
	}
	if s.ExitMaxKM <= 0 {
		errs = append(errs, "scoring.exit_max_km must be > 0")
	}
	if s.ScorePrecision < 0 || s.ScorePrecision > 12 {
		errs = append(errs, "scoring.score_precision must be between 0 and 12")
	}

	if len(errs) > 0 {
		return eris.New(strings.Join(errs, "; "))
	}
	return nil
}

// MaxScore returns the highest score the weights allow.
func (s ScoringConfig) MaxScore() float64 {
	return s.AvailabilityWeight + s.SameZoneWeight + s.ProximityWeight + s.ExitWeight
}
