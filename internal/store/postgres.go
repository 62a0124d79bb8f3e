package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/field-allocator/internal/db"
	"github.com/sells-group/field-allocator/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32
	MinConns int32
}

var assignmentColumns = []string{"run_id", "seq", "request_id", "officer_id", "score"}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	status      TEXT NOT NULL,
	assignments INTEGER NOT NULL DEFAULT 0,
	officers    INTEGER NOT NULL DEFAULT 0,
	result      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS run_assignments (
	run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	request_id TEXT NOT NULL,
	officer_id TEXT NOT NULL,
	score      DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_run_assignments_officer ON run_assignments(officer_id);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *model.Run) error {
	prepare(run)
	resultJSON, err := json.Marshal(run)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal run")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		`INSERT INTO runs (id, status, assignments, officers, result, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, string(run.Status), len(run.Assignments), len(run.Officers), resultJSON, run.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: insert run %s", run.ID)
	}

	rows := make([][]any, len(run.Assignments))
	for i, a := range run.Assignments {
		rows[i] = []any{run.ID, i, a.RequestID, a.OfficerID, a.Score}
	}
	if _, err := db.CopyFrom(ctx, tx, "run_assignments", assignmentColumns, rows); err != nil {
		return eris.Wrapf(err, "postgres: copy assignments for run %s", run.ID)
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit run")
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	var resultJSON []byte
	err := s.pool.QueryRow(ctx, `SELECT result FROM runs WHERE id = $1`, id).Scan(&resultJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: run %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", id)
	}

	var r model.Run
	if err := json.Unmarshal(resultJSON, &r); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal run")
	}
	return &r, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, status, assignments, officers, created_at FROM runs ORDER BY created_at DESC LIMIT $1`,
		listLimit(limit),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var out []model.RunSummary
	for rows.Next() {
		var (
			r      model.RunSummary
			status string
		)
		if err := rows.Scan(&r.ID, &status, &r.Assignments, &r.Officers, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		r.Status = model.RunStatus(status)
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}

func (s *PostgresStore) OfficerAssignments(ctx context.Context, officerID string, limit int) ([]AssignmentRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.run_id, a.request_id, a.officer_id, a.score, r.created_at
		   FROM run_assignments a JOIN runs r ON r.id = a.run_id
		  WHERE a.officer_id = $1
		  ORDER BY r.created_at DESC, a.seq ASC
		  LIMIT $2`,
		officerID, listLimit(limit),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: officer assignments %s", officerID)
	}
	defer rows.Close()

	var out []AssignmentRecord
	for rows.Next() {
		var a AssignmentRecord
		if err := rows.Scan(&a.RunID, &a.RequestID, &a.OfficerID, &a.Score, &a.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan assignment")
		}
		out = append(out, a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: officer assignments iterate")
}
