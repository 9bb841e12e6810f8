// Package store keeps a primer library in a local SQLite file.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"primertail-core/oligo"
	"primertail-core/primer"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ErrNotFound is returned by Get for an unknown primer id.
var ErrNotFound = errors.New("primer not found")

// Entry is a stored primer.
type Entry struct {
	primer.Primer
	CreatedAt string
}

// Store is a primer library backed by one SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates dataDir if needed and opens (or creates) primers.db in it.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	db, err := openDB("sqlite", filepath.Join(dataDir, "primers.db"))
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS primers (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			description      TEXT NOT NULL DEFAULT '',
			seq              TEXT NOT NULL,
			concentration_nm REAL NOT NULL DEFAULT 0,
			created_at       TEXT NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX IF NOT EXISTS idx_primers_seq ON primers(seq);
	`)
	return err
}

// Save inserts p, replacing any primer with the same id. Unnamed primers are
// rejected: the id is the library key.
func (s *Store) Save(ctx context.Context, p primer.Primer) error {
	if p.Unnamed() {
		return fmt.Errorf("store: primer %q needs an id", p.Seq)
	}
	clean, err := oligo.Validate(p.Seq)
	if err != nil {
		return fmt.Errorf("store: primer %s: %w", p.ID, err)
	}
	name := p.Name
	if name == "" || name == primer.UnsetID {
		name = p.ID
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO primers (id, name, description, seq, concentration_nm)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			seq = excluded.seq,
			concentration_nm = excluded.concentration_nm`,
		p.ID, name, p.Description, clean, p.Concentration)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", p.ID, err)
	}
	return nil
}

// Get returns the primer stored under id.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, seq, concentration_nm, created_at
		FROM primers WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("store: %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("store: get %s: %w", id, err)
	}
	return e, nil
}

// List returns stored primers oldest first. A non-empty contains filter keeps
// primers whose sequence contains it (case-insensitive).
func (s *Store) List(ctx context.Context, contains string) ([]Entry, error) {
	q := `SELECT id, name, description, seq, concentration_nm, created_at FROM primers`
	var args []any
	if contains != "" {
		q += ` WHERE lower(seq) LIKE ?`
		args = append(args, "%"+strings.ToLower(contains)+"%")
	}
	q += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var e Entry
	err := sc.Scan(&e.ID, &e.Name, &e.Description, &e.Seq, &e.Concentration, &e.CreatedAt)
	return e, err
}
