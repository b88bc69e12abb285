package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one accepted translation
type Entry struct {
	ID          int64
	Text        string
	Translation string
	Source      string // language short name
	Target      string // language short name
	CreatedAt   time.Time
}

// Store keeps translation history in a sqlite database
type Store struct {
	db *sql.DB
}

// DefaultPath returns the history database location under the XDG state dir
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "translatebar", "history.db")
}

// Open opens (and if needed creates) the history database at path
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translations (
		id integer PRIMARY KEY AUTOINCREMENT,
		text text NOT NULL,
		translation text NOT NULL,
		source text NOT NULL,
		target text NOT NULL,
		created_at integer NOT NULL
	);
	CREATE INDEX IF NOT EXISTS ix_translations_created ON translations (created_at);`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create history tables: %w", err)
	}
	return nil
}

// Record stores a translation. Repeating the newest entry is a no-op so
// re-translating the same text does not flood the history.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	var last Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT text, translation, source, target FROM translations ORDER BY id DESC LIMIT 1`,
	).Scan(&last.Text, &last.Translation, &last.Source, &last.Target)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return fmt.Errorf("failed to read last history entry: %w", err)
	case last.Text == e.Text && last.Translation == e.Translation &&
		last.Source == e.Source && last.Target == e.Target:
		return nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO translations (text, translation, source, target, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.Text, e.Translation, e.Source, e.Target, e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record translation: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, translation, source, target, created_at FROM translations ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return scanEntries(rows)
}

// All returns every entry, oldest first
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, translation, source, target, created_at FROM translations ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Text, &e.Translation, &e.Source, &e.Target, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.CreatedAt = time.UnixMilli(created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every entry
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM translations`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
