// Package store persists allocation runs to SQLite or Postgres.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/field-allocator/internal/config"
	"github.com/sells-group/field-allocator/internal/model"
)

var (
	// ErrNotFound is returned when a run id is unknown.
	ErrNotFound = eris.New("store: run not found")
	// ErrDisabled is returned by Open for the "none" driver.
	ErrDisabled = eris.New("store: persistence disabled")
)

const defaultListLimit = 50

// AssignmentRecord is one persisted assignment, used for officer history.
type AssignmentRecord struct {
	RunID     string    `json:"run_id"`
	RequestID string    `json:"request_id"`
	OfficerID string    `json:"officer_id"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the persistence interface for allocation runs.
type Store interface {
	// SaveRun assigns an id and creation time when unset and writes the run.
	SaveRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	// ListRuns returns summaries, newest first.
	ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error)
	// OfficerAssignments returns an officer's assignments across runs,
	// newest run first.
	OfficerAssignments(ctx context.Context, officerID string, limit int) ([]AssignmentRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates and migrates the store selected by cfg.Driver. The "none"
// driver (or an empty one) returns ErrDisabled.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.Driver {
	case "", "none":
		return nil, ErrDisabled
	case "sqlite":
		st, err = NewSQLite(cfg.DatabaseURL)
	case "postgres":
		st, err = NewPostgres(ctx, cfg.DatabaseURL, &PoolConfig{MaxConns: cfg.MaxConns, MinConns: cfg.MinConns})
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// prepare fills in the id and creation time of a new run.
func prepare(run *model.Run) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if run.Status == "" {
		run.Status = model.RunStatusComplete
	}
}

func listLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
