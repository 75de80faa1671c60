package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/urlsentry/urlsentry/internal/model"
)

// dbFileName is the history database file name under the data directory.
const dbFileName = "urlsentry.db"

// Record is one persisted scoring outcome.
type Record struct {
	// ID is the database row id.
	ID int64 `json:"id"`

	// URL is the checked input.
	URL string `json:"url"`

	// Score is the strategy score at check time.
	Score float64 `json:"score"`

	// Verdict is the category or prediction label at check time.
	Verdict string `json:"verdict"`

	// Reasons are the reasons or explanation recorded with the check.
	Reasons []string `json:"reasons"`

	// Strategy names the strategy that produced the outcome.
	Strategy string `json:"strategy"`

	// CreatedAt is the check timestamp in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// Store is the SQLite-backed history of scoring outcomes.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// read performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history store in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned instead of silently creating an empty history.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY churn for this append-mostly workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the schema if it does not exist.
func (s *Store) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS checks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT NOT NULL,
	score REAL NOT NULL,
	verdict TEXT NOT NULL,
	reasons TEXT NOT NULL,
	strategy TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checks_created_at ON checks(created_at DESC);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save persists one scoring outcome.
func (s *Store) Save(ctx context.Context, outcome model.Outcome, strategy string) error {
	reasons, err := json.Marshal(outcome.Reasons)
	if err != nil {
		return fmt.Errorf("failed to encode reasons: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO checks (url, score, verdict, reasons, strategy, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		outcome.URL, outcome.Score, outcome.Verdict, string(reasons), strategy, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save check: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first. The id is the
// tie-breaker so records inserted within the same timestamp still come
// back in insertion-reversed order.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, score, verdict, reasons, strategy, created_at
		 FROM checks ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		var reasons string
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Score, &rec.Verdict, &reasons, &rec.Strategy, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		if err := json.Unmarshal([]byte(reasons), &rec.Reasons); err != nil {
			return nil, fmt.Errorf("failed to decode reasons for check %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checks: %w", err)
	}
	return records, nil
}

// Count returns the total number of persisted checks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM checks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count checks: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path, for display.
func (s *Store) Path() string { return s.dbPath }
