// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records self-test runs in a local SQLite database so that
// setup regressions can be traced over time, and exports them as YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/daily-arxiv/internal/selftest"
	"github.com/pdiddy/daily-arxiv/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20
)

// CheckOutcome is the stored result of one check within a run.
type CheckOutcome struct {
	Name       string `json:"name" yaml:"name"`
	Passed     bool   `json:"passed" yaml:"passed"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMS int64  `json:"duration_ms" yaml:"duration_ms"`
}

// Run is a stored self-test run.
type Run struct {
	ID        int64          `json:"id" yaml:"id"`
	StartedAt time.Time      `json:"started_at" yaml:"started_at"`
	Root      string         `json:"root" yaml:"root"`
	Passed    int            `json:"passed" yaml:"passed"`
	Total     int            `json:"total" yaml:"total"`
	Checks    []CheckOutcome `json:"checks" yaml:"checks"`
}

// OK reports whether every check in the run passed.
func (r Run) OK() bool {
	return r.Passed == r.Total
}

// Store manages the run history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// ErrNoHistory is returned by Open when no history database exists yet.
var ErrNoHistory = errors.New("no runs recorded")

// dbPath resolves the history database path for root.
func dbPath(root string, cfg types.HistoryConfig) string {
	dir := cfg.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return filepath.Join(dir, dbFile)
}

// NewStore opens or creates history.db under cfg.Dir, resolved against root,
// and creates the schema if it does not exist.
func NewStore(root string, cfg types.HistoryConfig) (*Store, error) {
	path := dbPath(root, cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return openStore(path, cfg)
}

// Open opens an existing history database for reading. It returns
// ErrNoHistory, and creates nothing, when the database does not exist.
func Open(root string, cfg types.HistoryConfig) (*Store, error) {
	path := dbPath(root, cfg)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoHistory
		}
		return nil, fmt.Errorf("checking history database: %w", err)
	}
	return openStore(path, cfg)
}

func openStore(path string, cfg types.HistoryConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			root TEXT NOT NULL,
			passed INTEGER NOT NULL,
			total INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS checks (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			passed INTEGER NOT NULL,
			error TEXT,
			duration_ms INTEGER,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run summary and returns the new run ID.
func (s *Store) Record(ctx context.Context, summary selftest.Summary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, root, passed, total) VALUES (?, ?, ?, ?)`,
		summary.StartedAt.UTC().Format(time.RFC3339Nano), summary.Root, summary.Passed, summary.Total(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO checks (run_id, position, name, passed, error, duration_ms) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range summary.Results {
		var errText sql.NullString
		if r.Err != nil {
			errText = sql.NullString{String: r.Err.Error(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, runID, i, r.Name, r.Passed, errText, r.Duration.Milliseconds()); err != nil {
			return 0, fmt.Errorf("inserting check %s: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns up to limit runs, newest first, with their check outcomes.
// A limit of 0 or less uses the configured default.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, root, passed, total FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			started string
		)
		if err := rows.Scan(&r.ID, &started, &r.Root, &r.Passed, &r.Total); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("parsing start time of run %d: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		checks, err := s.checks(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Checks = checks
	}
	return runs, nil
}

func (s *Store) checks(ctx context.Context, runID int64) ([]CheckOutcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, passed, error, duration_ms FROM checks WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying checks of run %d: %w", runID, err)
	}
	defer rows.Close()

	var out []CheckOutcome
	for rows.Next() {
		var (
			c       CheckOutcome
			errText sql.NullString
		)
		if err := rows.Scan(&c.Name, &c.Passed, &errText, &c.DurationMS); err != nil {
			return nil, fmt.Errorf("scanning check: %w", err)
		}
		c.Error = errText.String
		out = append(out, c)
	}
	return out, rows.Err()
}
