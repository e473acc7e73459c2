package database

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

	"github.com/0xjam3z/webscanner/internal/model"
)

// ScanDB provides SQLite-based storage for scan run history.
// It manages connection pooling and provides methods for saving and
// querying past runs.
//
// Design decision: We use a single database file for all runs rather
// than one file per run. This keeps history queries trivial and makes
// backup/restore a single-file operation.
type ScanDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ScanDB behavior.
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

// Open opens or creates a ScanDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*ScanDB, error) {
	dbPath := filepath.Join(dbDir, "webscanner.db")

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

	// SQLite only supports one writer; more connections just contend.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &ScanDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *ScanDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *ScanDB) createTables() error {
	schema := `
	-- Runs store one row per completed pipeline execution
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input TEXT NOT NULL,
		target_kind TEXT NOT NULL,
		country_filter TEXT,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		elapsed_ms INTEGER DEFAULT 0,
		list_entries INTEGER DEFAULT 0,
		open80 INTEGER DEFAULT 0,
		open443 INTEGER DEFAULT 0,
		title_count INTEGER DEFAULT 0,
		error TEXT,
		run_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Titles store the individual records of each run
	CREATE TABLE IF NOT EXISTS titles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		ip TEXT NOT NULL,
		port TEXT NOT NULL,
		title TEXT,
		has_body INTEGER NOT NULL DEFAULT 0,
		country TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_titles_run ON titles(run_id);
	CREATE INDEX IF NOT EXISTS idx_titles_ip ON titles(ip);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores a completed run and its title records.
// The run and its titles are inserted in one transaction so history
// never contains a run with half its records.
func (sdb *ScanDB) SaveRun(ctx context.Context, run *model.ScanRun) (int64, error) {
	runJSON, err := json.Marshal(run)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize run: %w", err)
	}

	tx, err := sdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (input, target_kind, country_filter, started_at, elapsed_ms, list_entries, open80, open443, title_count, error, run_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.Input,
		run.Target.Kind.String(),
		run.Target.CountryFilter,
		run.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		run.Elapsed.Milliseconds(),
		run.ListEntries,
		run.Open80,
		run.Open443,
		run.TitleCount(),
		run.ErrorMessage,
		string(runJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, t := range run.Titles {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO titles (run_id, ip, port, title, has_body, country)
		VALUES (?, ?, ?, ?, ?, ?)
		`, runID, t.IP, t.Port, t.Title, t.HasBody, t.Country); err != nil {
			return 0, fmt.Errorf("failed to insert title record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// RunSummary contains summary information about a stored run.
// This is used for displaying history without loading full runs.
type RunSummary struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Input is the raw scan input argument.
	Input string

	// TargetKind is the detected target kind at scan time.
	TargetKind string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Elapsed is the total run duration.
	Elapsed time.Duration

	// ListEntries, Open80, Open443, and TitleCount are the run's
	// phase counts.
	ListEntries int
	Open80      int
	Open443     int
	TitleCount  int

	// Error is the recorded failure message, empty for clean runs.
	Error string
}

// ListRuns returns the most recent runs, newest first.
// A limit of zero or less returns all runs.
func (sdb *ScanDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
	SELECT id, input, target_kind, started_at, elapsed_ms, list_entries, open80, open443, title_count, error
	FROM runs
	ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunSummary
	for rows.Next() {
		var s RunSummary
		var startedAt string
		var elapsedMs int64
		var errMsg sql.NullString

		if err := rows.Scan(
			&s.ID,
			&s.Input,
			&s.TargetKind,
			&startedAt,
			&elapsedMs,
			&s.ListEntries,
			&s.Open80,
			&s.Open443,
			&s.TitleCount,
			&errMsg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}

		s.StartedAt = parseTimestamp(startedAt)
		s.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		if errMsg.Valid {
			s.Error = errMsg.String
		}
		results = append(results, s)
	}

	return results, rows.Err()
}

// GetRun retrieves a full run by its database ID.
// A missing ID returns (nil, nil).
func (sdb *ScanDB) GetRun(ctx context.Context, id int64) (*model.ScanRun, error) {
	var runJSON string
	err := sdb.db.QueryRowContext(ctx, `SELECT run_json FROM runs WHERE id = ?`, id).Scan(&runJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var run model.ScanRun
	if err := json.Unmarshal([]byte(runJSON), &run); err != nil {
		return nil, fmt.Errorf("failed to parse run: %w", err)
	}

	return &run, nil
}

// RunTitles retrieves the title records of a stored run in insertion
// order.
func (sdb *ScanDB) RunTitles(ctx context.Context, runID int64) ([]model.TitleRecord, error) {
	rows, err := sdb.db.QueryContext(ctx, `
	SELECT ip, port, title, has_body, country
	FROM titles
	WHERE run_id = ?
	ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query titles: %w", err)
	}
	defer rows.Close()

	var results []model.TitleRecord
	for rows.Next() {
		var t model.TitleRecord
		var title, country sql.NullString

		if err := rows.Scan(&t.IP, &t.Port, &title, &t.HasBody, &country); err != nil {
			return nil, fmt.Errorf("failed to scan title record: %w", err)
		}

		if title.Valid {
			t.Title = title.String
		}
		if country.Valid {
			t.Country = country.String
		}
		results = append(results, t)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
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
