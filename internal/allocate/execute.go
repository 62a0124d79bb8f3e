package allocate

import (
	"context"
	"errors"

	"github.com/sells-group/field-allocator/internal/config"
	"github.com/sells-group/field-allocator/internal/loader"
	"github.com/sells-group/field-allocator/internal/model"
	"github.com/sells-group/field-allocator/internal/scorer"
	"github.com/sells-group/field-allocator/internal/zone"
)

// Input is one allocation request as loaded from files or decoded from JSON.
// InputErrors carries problems already found while loading.
type Input struct {
	Officers    []model.Officer
	Sites       []model.Site
	Zones       []model.Zone
	InputErrors []error
}

// Execute validates in, builds the zone index and scorer, and runs the
// engine. The returned Run is never nil: on ErrNoOfficers it is marked
// failed, and on cancellation it holds the partial result.
func Execute(ctx context.Context, scoring config.ScoringConfig, workers int, in Input) (*model.Run, error) {
	errs := append([]error(nil), in.InputErrors...)

	officers, oerrs := loader.ValidateOfficers(in.Officers)
	sites, serrs := loader.ValidateSites(in.Sites)
	idx, zerrs := zone.New(in.Zones)
	errs = append(errs, oerrs...)
	errs = append(errs, serrs...)
	errs = append(errs, zerrs...)

	run := &model.Run{Status: model.RunStatusComplete, InputErrors: InputErrors(errs)}

	sc, err := scorer.New(scoring, idx)
	if err != nil {
		run.Status = model.RunStatusFailed
		return run, err
	}

	res, err := New(sc, WithWorkers(workers)).Run(ctx, NewRoster(officers), sites)
	run.Assignments = res.Assignments
	run.Officers = res.Officers
	run.Unassigned = res.Unassigned
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		run.Status = model.RunStatusCancelled
	default:
		run.Status = model.RunStatusFailed
	}
	return run, err
}

// InputErrors flattens load and validation errors into the persisted form.
// Errors that are not *model.InputError keep only their message.
func InputErrors(errs []error) []model.InputError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]model.InputError, 0, len(errs))
	for _, err := range errs {
		var ie *model.InputError
		if errors.As(err, &ie) {
			out = append(out, *ie)
			continue
		}
		out = append(out, model.InputError{Reason: err.Error()})
	}
	return out
}
