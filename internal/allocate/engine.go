// Package allocate assigns sites to officers with a sequential greedy pass.
//
// Sites are processed strictly in input order. For each site every officer
// is scored, the best one wins (ties go to the nearer officer, then to
// roster order) and is moved to the site and marked inactive before the
// next site is scored. The result can be globally suboptimal; that is the
// intended behaviour.
package allocate

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/field-allocator/internal/model"
	"github.com/sells-group/field-allocator/internal/scorer"
)

// ErrNoOfficers is returned when a run starts with an empty roster.
var ErrNoOfficers = eris.New("no officers available")

// Result is the outcome of one allocation run.
type Result struct {
	Assignments []model.Assignment `json:"assignments"`
	Officers    []model.Officer    `json:"officers"`
	Unassigned  []model.Site       `json:"unassigned,omitempty"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers scores officers for a single site on up to n goroutines.
// Sites are still processed one at a time.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// Engine runs allocation passes.
type Engine struct {
	scorer  *scorer.Scorer
	workers int
}

// New creates an Engine.
func New(s *scorer.Scorer, opts ...Option) *Engine {
	e := &Engine{scorer: s, workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type candidate struct {
	res scorer.Result
	err error
}

// Run allocates sites in order against roster, mutating it as officers are
// dispatched. The context is checked between sites and, with parallel
// scoring, before each officer is scored. On cancellation the assignments
// made so far are returned together with the context error.
func (e *Engine) Run(ctx context.Context, roster *Roster, sites []model.Site) (*Result, error) {
	res := &Result{}
	if roster == nil || roster.Len() == 0 {
		return res, ErrNoOfficers
	}
	defer func() { res.Officers = roster.Officers() }()

	log := zap.L().With(zap.String("component", "allocate"))

	for i, site := range sites {
		if err := ctx.Err(); err != nil {
			log.Warn("allocate: run cancelled",
				zap.Int("processed", i),
				zap.Int("sites", len(sites)),
			)
			return res, eris.Wrap(err, "allocate: cancelled")
		}

		cands, err := e.evaluate(ctx, roster, site)
		if err != nil {
			log.Warn("allocate: run cancelled mid-site",
				zap.Int("processed", i),
				zap.String("request_id", site.RequestID),
			)
			return res, eris.Wrap(err, "allocate: cancelled")
		}

		best := -1
		for j, c := range cands {
			if c.err != nil {
				log.Warn("allocate: skipping officer",
					zap.String("officer_id", roster.Officer(j).ID),
					zap.String("request_id", site.RequestID),
					zap.Error(c.err),
				)
				continue
			}
			if best < 0 || better(c.res, cands[best].res) {
				best = j
			}
		}

		if best < 0 {
			log.Warn("allocate: no officer could be scored for site",
				zap.String("request_id", site.RequestID),
			)
			res.Unassigned = append(res.Unassigned, site)
			continue
		}

		officer := roster.Officer(best)
		win := cands[best].res
		res.Assignments = append(res.Assignments, model.Assignment{
			RequestID:       site.RequestID,
			CustomerName:    site.CustomerName,
			OfficerID:       officer.ID,
			OfficerName:     officer.Name,
			SiteLat:         site.Location.Lat,
			SiteLon:         site.Location.Lon,
			Score:           e.scorer.Round(win.Score),
			OfficerLocation: officer.Location,
			DistanceKM:      win.OfficerToSiteKM,
			OfficerZone:     win.OfficerZone,
			ZoneRelation:    win.Relation,
		})
		roster.dispatch(best, site.Location)

		log.Debug("allocate: site assigned",
			zap.String("request_id", site.RequestID),
			zap.String("officer_id", officer.ID),
			zap.Float64("score", win.Score),
			zap.Float64("distance_km", win.OfficerToSiteKM),
		)
	}

	log.Info("allocate: run complete",
		zap.Int("sites", len(sites)),
		zap.Int("officers", roster.Len()),
		zap.Int("assigned", len(res.Assignments)),
		zap.Int("unassigned", len(res.Unassigned)),
	)
	return res, nil
}

// better reports whether a beats b: higher score first, then strictly
// shorter distance.
func better(a, b scorer.Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.OfficerToSiteKM < b.OfficerToSiteKM
}

// evaluate scores every officer against site. Results are indexed by roster
// position so selection order does not depend on goroutine scheduling.
// Per-officer scoring failures stay in their candidate slot; the returned
// error is only the context's, when the run is cancelled mid-site.
func (e *Engine) evaluate(ctx context.Context, roster *Roster, site model.Site) ([]candidate, error) {
	cands := make([]candidate, roster.Len())

	if e.workers <= 1 || roster.Len() < 2 {
		for j := range cands {
			cands[j].res, cands[j].err = e.scorer.Score(roster.Officer(j), site)
		}
		return cands, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for j := range cands {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cands[j].res, cands[j].err = e.scorer.Score(roster.Officer(j), site)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cands, nil
}
