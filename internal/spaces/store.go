package spaces

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrEmptyDirectory is returned when the space table holds no rows; a service
// with nothing to resolve against would answer every query with "room not
// found", so startup should fail loudly instead.
var ErrEmptyDirectory = errors.New("spaces: directory is empty")

const schema = `
CREATE TABLE IF NOT EXISTS spaces (
	name     TEXT PRIMARY KEY,
	space_id TEXT NOT NULL
)`

// Store reads and writes the space table in a SQLite database. It is the Go
// rendition of the static spaces file the service ships with: written once by
// tooling, read once at startup into a Directory.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn and ensures the space table
// exists.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open space database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ensure space schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Directory loads every space row into an in-memory Directory.
func (s *Store) Directory(ctx context.Context) (*Directory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, space_id FROM spaces`)
	if err != nil {
		return nil, fmt.Errorf("failed to load spaces: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var name, id string
		if err := rows.Scan(&name, &id); err != nil {
			return nil, fmt.Errorf("failed to scan space row: %w", err)
		}
		entries[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spaces: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyDirectory
	}
	return NewDirectory(entries), nil
}

// ReplaceAll swaps the whole space table for the provided entries inside a
// single transaction, for seeding and refresh tooling.
func (s *Store) ReplaceAll(ctx context.Context, entries map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := replaceAll(ctx, tx, entries); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("replace failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replacement: %w", err)
	}
	return nil
}

func replaceAll(ctx context.Context, tx *sql.Tx, entries map[string]string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM spaces`); err != nil {
		return fmt.Errorf("failed to clear spaces: %w", err)
	}
	for name, id := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO spaces (name, space_id) VALUES (?, ?)`,
			normalizeName(name), id,
		); err != nil {
			return fmt.Errorf("failed to insert space %q: %w", name, err)
		}
	}
	return nil
}
