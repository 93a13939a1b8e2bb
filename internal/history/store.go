// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion runs and their per-file outcomes in
// a local SQLite database so past batches can be inspected.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cspanachis/emzconv/pkg/types"
)

const dbFile = "emzconv.db"

// Store manages the run-history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at
// historyDir/emzconv.db, creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.HistoryDir
	if dir == "" {
		dir = "history"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
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
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			input_dir TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			output_format TEXT NOT NULL,
			relabeled INTEGER NOT NULL,
			converted INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			report_path TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS run_files (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			output_path TEXT,
			reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_files_run_id ON run_files(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun inserts a run and its per-file outcomes in one transaction.
func (s *Store) RecordRun(ctx context.Context, rec types.RunRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, input_dir, output_dir,
			output_format, relabeled, converted, failed, report_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
		rec.InputDir,
		rec.OutputDir,
		rec.OutputFormat,
		rec.Relabeled,
		rec.Converted,
		rec.Failed,
		rec.ReportPath,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", rec.ID, err)
	}

	for _, o := range rec.Outcomes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, name, status, output_path, reason)
			 VALUES (?, ?, ?, ?, ?)`,
			rec.ID, o.Name, string(o.Status), o.OutputPath, o.Reason,
		)
		if err != nil {
			return fmt.Errorf("inserting outcome for %s: %w", o.Name, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first, up to limit.
// A limit of 0 uses the configured default.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, input_dir, output_dir,
			output_format, relabeled, converted, failed, report_path
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		var started, finished string
		if err := rows.Scan(&rec.ID, &started, &finished, &rec.InputDir,
			&rec.OutputDir, &rec.OutputFormat, &rec.Relabeled,
			&rec.Converted, &rec.Failed, &rec.ReportPath); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, started); err == nil {
			rec.StartedAt = t
		}
		if t, err := time.Parse(time.RFC3339Nano, finished); err == nil {
			rec.FinishedAt = t
		}
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}

// RunFiles returns the per-file outcomes for a run, in recorded order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]types.FileOutcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, status, output_path, reason FROM run_files
		 WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run files: %w", err)
	}
	defer rows.Close()

	var outcomes []types.FileOutcome
	for rows.Next() {
		var o types.FileOutcome
		var status string
		if err := rows.Scan(&o.Name, &status, &o.OutputPath, &o.Reason); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Status = types.FileStatus(status)
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if outcomes == nil {
		// Distinguish an unknown run from one that processed zero files.
		var n int
		if err := s.db.QueryRowContext(ctx,
			`SELECT count(*) FROM runs WHERE id = ?`, runID).Scan(&n); err != nil {
			return nil, fmt.Errorf("checking run %s: %w", runID, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("no run found with id %s", runID)
		}
	}
	return outcomes, nil
}
