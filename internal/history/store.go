package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"videoforge/internal/services"
	"videoforge/internal/workflow"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    job_id TEXT NOT NULL,
    mode TEXT NOT NULL,
    source TEXT NOT NULL,
    output_path TEXT NOT NULL,
    ok INTEGER NOT NULL,
    message TEXT NOT NULL,
    started_at TEXT NOT NULL,
    duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_job_history_started_at ON job_history(started_at);
`

// Store is a SQLite-backed job ledger. It satisfies workflow.Recorder.
type Store struct {
	db *sql.DB
}

// Open creates or opens the ledger database at path, applying the schema.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, "", "", "history path required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "", "create history directory", path, err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one finished-job row.
func (s *Store) Record(ctx context.Context, rec workflow.JobRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_history (job_id, mode, source, output_path, ok, message, started_at, duration_ms)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.JobID, rec.Mode, rec.Source, rec.OutputPath, boolToInt(rec.OK), rec.Message,
		rec.StartedAt.UTC().Format(time.RFC3339Nano), rec.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert history row: %w", err)
	}
	return nil
}

// List returns the most recent rows, newest first. limit <= 0 means a default
// of 50.
func (s *Store) List(ctx context.Context, limit int) ([]workflow.JobRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT job_id, mode, source, output_path, ok, message, started_at, duration_ms
         FROM job_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []workflow.JobRecord
	for rows.Next() {
		var (
			rec        workflow.JobRecord
			ok         int
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&rec.JobID, &rec.Mode, &rec.Source, &rec.OutputPath, &ok, &rec.Message, &startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		rec.OK = ok != 0
		if ts, parseErr := time.Parse(time.RFC3339Nano, startedAt); parseErr == nil {
			rec.StartedAt = ts
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
