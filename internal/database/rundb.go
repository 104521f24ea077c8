package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/naturkoll/vocabbuild/internal/model"
)

// RunDB provides SQLite-based storage for build run history.
// It manages connection pooling and provides methods for saving and
// listing run summaries.
//
// Design decision: We use a single database file for all runs rather
// than one file per run. This keeps the history queryable in one place
// and simplifies backup/restore operations.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "vocabbuild.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string format: mode=rw prevents
	// creating new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Runs store one row per completed build run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Group runs store the per-group outcome within a run
	CREATE TABLE IF NOT EXISTS group_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		retained INTEGER NOT NULL,
		written INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		position INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_group_runs_run ON group_runs(run_id);
	CREATE INDEX IF NOT EXISTS idx_group_runs_label ON group_runs(label);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun persists a run summary and its group rows in one transaction.
// The record's ID field is set to the new row id on success.
func (rdb *RunDB) SaveRun(ctx context.Context, run *model.RunRecord) error {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at) VALUES (?, ?)`,
		run.StartedAt.UTC().Format(sqliteTimeFormat),
		run.FinishedAt.UTC().Format(sqliteTimeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read run id: %w", err)
	}

	for i, g := range run.Groups {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_runs (run_id, label, retained, written, skipped, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, g.Label, g.Retained, g.Written, g.Skipped, i,
		); err != nil {
			return fmt.Errorf("failed to insert group run %q: %w", g.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	run.ID = runID
	return nil
}

// ListRuns retrieves the most recent runs with their group rows, newest
// first. A non-positive limit returns all runs.
func (rdb *RunDB) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	query := `SELECT id, started_at, finished_at FROM runs ORDER BY started_at DESC, id DESC`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		var run model.RunRecord
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = parseTimestamp(started)
		run.FinishedAt = parseTimestamp(finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		groups, err := rdb.listGroupRuns(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Groups = groups
	}

	return runs, nil
}

// listGroupRuns fetches the group rows for one run in run order.
func (rdb *RunDB) listGroupRuns(ctx context.Context, runID int64) ([]model.GroupRunRecord, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT label, retained, written, skipped
		 FROM group_runs WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group runs: %w", err)
	}
	defer rows.Close()

	var groups []model.GroupRunRecord
	for rows.Next() {
		var g model.GroupRunRecord
		if err := rows.Scan(&g.Label, &g.Retained, &g.Written, &g.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan group run: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// sqliteTimeFormat is the canonical timestamp format written to the
// database. Reads still tolerate the other formats SQLite may produce.
const sqliteTimeFormat = "2006-01-02 15:04:05"

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	sqliteTimeFormat,          // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
