// Package storage provides the durable key-value blob store used to persist
// the daily specials schedule and other small documents.
package storage

import (
	"database/sql"
	"errors"
	"time"
)

// BlobStore manages blob persistence operations
type BlobStore struct {
	db *sql.DB
}

// NewBlobStore creates a new blob store on an existing database connection
func NewBlobStore(db *sql.DB) *BlobStore {
	return &BlobStore{db: db}
}

// Read returns the value stored under key, with a presence flag.
func (s *BlobStore) Read(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Write upserts the value under key.
func (s *BlobStore) Write(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	return err
}

// Delete removes the value stored under key, if any.
func (s *BlobStore) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM blobs WHERE key = ?", key)
	return err
}
