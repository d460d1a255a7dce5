//go:build sqlite

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists run records in a sqlite database.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func newSQLiteStore(path string) (Store, error) {
	return &SQLiteStore{path: path}, nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
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

	const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    algorithm  TEXT NOT NULL,
    status     TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    config     TEXT NOT NULL,
    result     TEXT,
    error      TEXT
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("sqlite store is not initialized")
	}
	return s.db, nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, record Record) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
INSERT OR REPLACE INTO runs (id, algorithm, status, created_at, config, result, error)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Algorithm, record.Status, record.CreatedAt,
		string(record.Config), string(record.Result), record.Error)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", record.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Record, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Record{}, false, err
	}

	var record Record
	var configText, resultText string
	row := db.QueryRowContext(ctx, `
SELECT id, algorithm, status, created_at, config, result, error FROM runs WHERE id = ?`, id)
	err = row.Scan(&record.ID, &record.Algorithm, &record.Status, &record.CreatedAt,
		&configText, &resultText, &record.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	record.Config = []byte(configText)
	if resultText != "" {
		record.Result = []byte(resultText)
	}
	return record, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Record, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.QueryContext(ctx, `
SELECT id, algorithm, status, created_at, config, result, error
FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var configText, resultText string
		if err := rows.Scan(&record.ID, &record.Algorithm, &record.Status, &record.CreatedAt,
			&configText, &resultText, &record.Error); err != nil {
			return nil, err
		}
		record.Config = []byte(configText)
		if resultText != "" {
			record.Result = []byte(resultText)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
