package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/moodlist/internal/models"
)

// SQLiteStore implements [CollectionStore] on the migrated slots table.
//
// Each key holds one whole document; a save is a single UPSERT so readers never see a partial write.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// NewSQLiteStore creates a SQLiteStore using [CollectionKey].
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, key: CollectionKey}
}

// Get returns the raw value stored under key and whether it exists.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Put replaces the value stored under key.
func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO slots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// LoadCollection implements [CollectionStore].
func (s *SQLiteStore) LoadCollection(ctx context.Context) ([]models.Playlist, error) {
	data, ok, err := s.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Playlist{}, nil
	}
	return DecodeCollection(data)
}

// SaveCollection implements [CollectionStore].
func (s *SQLiteStore) SaveCollection(ctx context.Context, playlists []models.Playlist) error {
	data, err := EncodeCollection(playlists)
	if err != nil {
		return err
	}
	return s.Put(ctx, s.key, data)
}
