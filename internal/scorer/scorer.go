// Package scorer ranks how well an officer fits a site.
package scorer

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/field-allocator/internal/config"
	"github.com/sells-group/field-allocator/internal/geo"
	"github.com/sells-group/field-allocator/internal/model"
	"github.com/sells-group/field-allocator/internal/zone"
)

// DefaultConfig returns the standard weights: availability 0.3, same zone
// 0.4, proximity 0.4 decaying to 0 at 10 km, exit distance 0.2 decaying to
// 0 at 10 km. The maximum attainable score is 1.3.
func DefaultConfig() config.ScoringConfig {
	return config.ScoringConfig{
		AvailabilityWeight: 0.3,
		SameZoneWeight:     0.4,
		ProximityWeight:    0.4,
		ProximityMaxKM:     10,
		ExitWeight:         0.2,
		ExitMaxKM:          10,
		ScorePrecision:     3,
	}
}

// Result is the score for one (officer, site) pair and the measurements
// behind it.
type Result struct {
	Score           float64 `json:"score"`
	OfficerToSiteKM float64 `json:"officer_to_site_km"`
	ExitKM          float64 `json:"exit_km"`
	SameZone        bool    `json:"same_zone"`
	OfficerZone     string  `json:"officer_zone,omitempty"`
	Relation        string  `json:"relation"`
}

// Scorer computes officer/site scores against a zone index. It is read-only
// and safe for concurrent use.
type Scorer struct {
	cfg   config.ScoringConfig
	zones *zone.Index
}

// New creates a Scorer. A nil index means no officer is ever in a zone.
func New(cfg config.ScoringConfig, zones *zone.Index) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "scorer: invalid config")
	}
	return &Scorer{cfg: cfg, zones: zones}, nil
}

// Config returns the scoring configuration.
func (s *Scorer) Config() config.ScoringConfig {
	return s.cfg
}

// Score sums four independent contributions:
//   - availability: officer is active
//   - same zone: the officer's current zone contains or touches the site
//   - proximity: linear decay over officer-to-site distance
//   - exit: linear decay over distance from the officer's zone boundary
//
// Contributions beyond their distance cap are 0, never negative.
func (s *Scorer) Score(o model.Officer, site model.Site) (Result, error) {
	if err := o.Location.Validate(); err != nil {
		return Result{}, eris.Wrapf(err, "scorer: officer %s location", o.ID)
	}
	if err := site.Location.Validate(); err != nil {
		return Result{}, eris.Wrapf(err, "scorer: site %s location", site.RequestID)
	}

	var r Result

	if o.Active {
		r.Score += s.cfg.AvailabilityWeight
	}

	zoneID, poly, inZone := s.zones.Locate(o.Location)
	r.OfficerZone = zoneID
	if inZone && geo.ContainsOrTouches(poly, site.Location) {
		r.SameZone = true
		r.Score += s.cfg.SameZoneWeight
	}

	r.OfficerToSiteKM = geo.DistanceKM(o.Location, site.Location)
	r.Score += decay(s.cfg.ProximityWeight, r.OfficerToSiteKM, s.cfg.ProximityMaxKM)

	if inZone && !r.SameZone {
		r.ExitKM = geo.DistanceToBoundaryKM(poly, site.Location)
	}
	r.Score += decay(s.cfg.ExitWeight, r.ExitKM, s.cfg.ExitMaxKM)

	r.Relation = geo.Classify(inZone, r.SameZone, r.ExitKM, s.cfg.ExitMaxKM)
	return r, nil
}

// Round rounds a score to the configured precision.
func (s *Scorer) Round(score float64) float64 {
	p := math.Pow(10, float64(s.cfg.ScorePrecision))
	return math.Round(score*p) / p
}

// decay returns weight at distance 0, falling linearly to 0 at maxKM.
func decay(weight, km, maxKM float64) float64 {
	if km > maxKM {
		return 0
	}
	return math.Max(0, weight*(1-km/maxKM))
}
