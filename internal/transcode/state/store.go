// Package state records successful MELD conversions in SQLite so a later
// batch can skip sources that have not changed since they were converted.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages conversion records backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Record describes one converted source.
type Record struct {
	Source      string
	Dest        string
	Size        int64
	ModTime     time.Time
	RunID       string
	ConvertedAt time.Time
}

// Matches reports whether the record still describes a source with the given
// size and modification time.
func (r Record) Matches(size int64, modTime time.Time) bool {
	return r.Size == size && r.ModTime.Equal(modTime)
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const schema = `CREATE TABLE IF NOT EXISTS conversions (
	source       TEXT PRIMARY KEY,
	dest         TEXT NOT NULL,
	size         INTEGER NOT NULL,
	mod_time     INTEGER NOT NULL,
	run_id       TEXT NOT NULL,
	converted_at INTEGER NOT NULL
)`

// Open initializes or connects to the state database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("open state db: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure state directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout = 5000"} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lookup returns the record for source, if any.
func (s *Store) Lookup(ctx context.Context, source string) (Record, bool, error) {
	var (
		rec         Record
		modTime     int64
		convertedAt int64
	)
	err := retryOnBusy(ctx, func() error {
		row := s.db.QueryRowContext(ctx,
			`SELECT source, dest, size, mod_time, run_id, converted_at FROM conversions WHERE source = ?`, source)
		return row.Scan(&rec.Source, &rec.Dest, &rec.Size, &modTime, &rec.RunID, &convertedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("lookup %s: %w", source, err)
	}
	rec.ModTime = time.Unix(0, modTime)
	rec.ConvertedAt = time.Unix(0, convertedAt)
	return rec, true, nil
}

// Put inserts or replaces the record for rec.Source.
func (s *Store) Put(ctx context.Context, rec Record) error {
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now()
	}
	return s.exec(ctx,
		`INSERT INTO conversions (source, dest, size, mod_time, run_id, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET dest = excluded.dest, size = excluded.size,
		   mod_time = excluded.mod_time, run_id = excluded.run_id, converted_at = excluded.converted_at`,
		rec.Source, rec.Dest, rec.Size, rec.ModTime.UnixNano(), rec.RunID, rec.ConvertedAt.UnixNano())
}

// Forget removes the record for source.
func (s *Store) Forget(ctx context.Context, source string) error {
	return s.exec(ctx, `DELETE FROM conversions WHERE source = ?`, source)
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&n)
	})
	return n, err
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
