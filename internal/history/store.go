package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/sitecheck/internal/model"
)

// DatabaseName is the file name of the history database inside its directory.
const DatabaseName = "sitecheck.db"

// ErrNotEnoughRuns is returned when a comparison needs more stored runs
// than exist for a site root.
var ErrNotEnoughRuns = errors.New("not enough stored runs")

// Store provides SQLite-based storage for validation runs.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Run is one stored validation run.
type Run struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Root is the absolute site root the run validated.
	Root string

	// Timestamp is when the run finished.
	Timestamp time.Time

	// FilesChecked, Passes, Errors and Warnings mirror the report counters.
	FilesChecked int
	Passes       int
	Errors       int
	Warnings     int

	// Digest is the report digest.
	Digest string

	// Report is the full report. List leaves it nil.
	Report *model.Report
}

// Open opens or creates the history database in dbDir.
func Open(dbDir string) (*Store, error) {
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	dbPath := filepath.Join(dbDir, DatabaseName)

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		files_checked INTEGER NOT NULL,
		passes INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		digest TEXT NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_root ON runs(root);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Save stores report as a run of root finished at at. When the latest
// stored run for root has the same digest, nothing is inserted and that
// run's ID is returned with saved set to false.
func (s *Store) Save(ctx context.Context, root string, report *model.Report, at time.Time) (id int64, saved bool, err error) {
	digest, err := report.Digest()
	if err != nil {
		return 0, false, err
	}

	var lastID int64
	var lastDigest string
	err = s.db.QueryRowContext(ctx, `
	SELECT id, digest FROM runs
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`, root).Scan(&lastID, &lastDigest)
	switch {
	case err == nil && lastDigest == digest:
		return lastID, false, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("failed to get latest run: %w", err)
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, false, fmt.Errorf("failed to encode report: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
	INSERT INTO runs (root, timestamp, files_checked, passes, errors, warnings, digest, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		root,
		at.UnixNano(),
		report.FilesChecked,
		report.Passes,
		report.ErrorCount(),
		report.WarningCount(),
		digest,
		string(reportJSON),
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to save run: %w", err)
	}

	id, err = result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, true, nil
}

// List returns up to limit runs of root, newest first, without their
// reports. A limit of zero or less returns every run.
func (s *Store) List(ctx context.Context, root string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, root, timestamp, files_checked, passes, errors, warnings, digest
	FROM runs
	WHERE root = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`, root, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var ts int64
		if err := rows.Scan(&run.ID, &run.Root, &ts, &run.FilesChecked,
			&run.Passes, &run.Errors, &run.Warnings, &run.Digest); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Timestamp = time.Unix(0, ts)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Latest returns the n newest runs of root with their reports, newest
// first. ErrNotEnoughRuns is returned when fewer than n runs are stored.
func (s *Store) Latest(ctx context.Context, root string, n int) ([]Run, error) {
	runs, err := s.List(ctx, root, n)
	if err != nil {
		return nil, err
	}
	if len(runs) < n {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughRuns, len(runs), n)
	}

	for i := range runs {
		report, err := s.report(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Report = report
	}
	return runs, nil
}

// report loads the stored report of a run.
func (s *Store) report(ctx context.Context, id int64) (*model.Report, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx, `SELECT report_json FROM runs WHERE id = ?`, id).Scan(&reportJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}

	report := model.NewReport()
	if err := json.Unmarshal([]byte(reportJSON), report); err != nil {
		return nil, fmt.Errorf("failed to parse run %d: %w", id, err)
	}
	return report, nil
}
