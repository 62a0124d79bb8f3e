package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/field-allocator/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	status      TEXT NOT NULL,
	assignments INTEGER NOT NULL DEFAULT 0,
	officers    INTEGER NOT NULL DEFAULT 0,
	result      TEXT NOT NULL,
	created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS run_assignments (
	run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	request_id TEXT NOT NULL,
	officer_id TEXT NOT NULL,
	score      REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_run_assignments_officer ON run_assignments(officer_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *model.Run) error {
	prepare(run)
	resultJSON, err := json.Marshal(run)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal run")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, status, assignments, officers, result, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Status), len(run.Assignments), len(run.Officers), string(resultJSON), run.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_assignments (run_id, seq, request_id, officer_id, score) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare assignment insert")
	}
	defer stmt.Close() //nolint:errcheck
	for i, a := range run.Assignments {
		if _, err := stmt.ExecContext(ctx, run.ID, i, a.RequestID, a.OfficerID, a.Score); err != nil {
			return eris.Wrapf(err, "sqlite: insert assignment %s", a.RequestID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit run")
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	var resultJSON string
	err := s.db.QueryRowContext(ctx, `SELECT result FROM runs WHERE id = ?`, id).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: run %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", id)
	}

	var r model.Run
	if err := json.Unmarshal([]byte(resultJSON), &r); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal run")
	}
	return &r, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, status, assignments, officers, created_at FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		listLimit(limit),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.RunSummary
	for rows.Next() {
		var r model.RunSummary
		if err := rows.Scan(&r.ID, &r.Status, &r.Assignments, &r.Officers, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

func (s *SQLiteStore) OfficerAssignments(ctx context.Context, officerID string, limit int) ([]AssignmentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.run_id, a.request_id, a.officer_id, a.score, r.created_at
		   FROM run_assignments a JOIN runs r ON r.id = a.run_id
		  WHERE a.officer_id = ?
		  ORDER BY r.created_at DESC, a.seq ASC
		  LIMIT ?`,
		officerID, listLimit(limit),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: officer assignments %s", officerID)
	}
	defer rows.Close() //nolint:errcheck

	var out []AssignmentRecord
	for rows.Next() {
		var a AssignmentRecord
		if err := rows.Scan(&a.RunID, &a.RequestID, &a.OfficerID, &a.Score, &a.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan assignment")
		}
		out = append(out, a)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: officer assignments iterate")
}
