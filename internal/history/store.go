// Package history records completed generate runs in a SQLite database.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run is one completed generate run.
type Run struct {
	ID           string
	SourceDir    string
	TargetPath   string
	Format       string
	Recursive    bool
	ChildrenOnly bool
	TotalDirs    int
	TotalFiles   int
	Bytes        int
	Duration     time.Duration
	CreatedAt    time.Time
}

// Store manages the run history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens or creates the database at dbPath. ":memory:" is supported.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// each connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	// busy_timeout first so the rest wait on locks held by a concurrent build
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a statement, backing off while the database is locked.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun inserts run. An empty ID is filled with a new UUID and a zero
// CreatedAt with the current time.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	query := `INSERT INTO runs
		(id, source_dir, target_path, format, recursive, children_only, total_dirs, total_files, bytes, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		run.SourceDir,
		run.TargetPath,
		run.Format,
		run.Recursive,
		run.ChildrenOnly,
		run.TotalDirs,
		run.TotalFiles,
		run.Bytes,
		run.Duration.Milliseconds(),
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

const selectRuns = `SELECT id, source_dir, target_path, format, recursive, children_only,
	total_dirs, total_files, bytes, duration_ms, created_at FROM runs`

// RecentRuns returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	query := selectRuns + ` ORDER BY created_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LastRunFor returns the newest run of sourceDir, or nil when there is none.
func (s *Store) LastRunFor(ctx context.Context, sourceDir string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		selectRuns+` WHERE source_dir = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, sourceDir)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(r rowScanner) (*Run, error) {
	var run Run
	var durationMS int64
	err := r.Scan(
		&run.ID,
		&run.SourceDir,
		&run.TargetPath,
		&run.Format,
		&run.Recursive,
		&run.ChildrenOnly,
		&run.TotalDirs,
		&run.TotalFiles,
		&run.Bytes,
		&durationMS,
		&run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}
