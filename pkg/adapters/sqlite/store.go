package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/turing/pkg/domain"

	_ "modernc.org/sqlite"
)

// Store implements ports.RunStore on a SQLite database.
// The full record is kept as a JSON payload; machine, verdict and start time are
// duplicated into columns for listing.
type Store struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewStore creates a store for the database at path. Call Init before use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init opens the database and creates the schema.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// Save inserts or replaces the record.
func (s *Store) Save(ctx context.Context, record *domain.RunRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, machine, verdict, started_at, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			machine = excluded.machine,
			verdict = excluded.verdict,
			started_at = excluded.started_at,
			payload = excluded.payload
	`, record.ID, record.Machine, record.Verdict(), record.StartedAt.UnixNano(), payload)
	return err
}

// Load returns the record with the given ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, err
	}

	var rec domain.RunRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return &rec, nil
}

// Delete removes the record if present.
func (s *Store) Delete(ctx context.Context, id string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	return err
}

// List returns run IDs, oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.query(ctx, `SELECT id FROM runs ORDER BY started_at, id`)
}

// ListByMachine returns the IDs of runs of one machine, oldest first.
func (s *Store) ListByMachine(ctx context.Context, machine string) ([]string, error) {
	return s.query(ctx, `SELECT id FROM runs WHERE machine = ? ORDER BY started_at, id`, machine)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close releases the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			machine TEXT NOT NULL,
			verdict TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS runs_machine ON runs (machine);
	`)
	return err
}
