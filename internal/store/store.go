// Package store provides the SQLite-backed registry of residents, businesses
// and the records issued to them.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Errors returned by Store lookups.
var (
	ErrNotFound = errors.New("not found")
	ErrArchived = errors.New("owner is archived")
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store is the registry database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the registry database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening registry db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func newID() string {
	return uuid.NewString()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored UTC timestamp back in the local zone, so dates
// and month groups follow the clerk's calendar.
func parseTime(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, ns.String)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, ns.String); err != nil {
			return time.Time{}
		}
	}
	return t.In(time.Local)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// execOne runs a statement that must touch exactly one row.
func execOne(exec func() (sql.Result, error)) error {
	res, err := exec()
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
