package repositories

import (
	"context"
	"sync"

	"github.com/desertthunder/moodlist/internal/models"
)

// MemoryStore is an in-process [CollectionStore]. It keeps the encoded bytes
// so that it goes through the same codec as the durable stores.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
	// SaveErr, when set, is returned by every SaveCollection call.
	SaveErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Raw returns a copy of the stored bytes (nil when nothing was saved).
func (m *MemoryStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil
	}
	return append([]byte(nil), m.data...)
}

// SetRaw replaces the stored bytes verbatim.
func (m *MemoryStore) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

// LoadCollection implements [CollectionStore].
func (m *MemoryStore) LoadCollection(ctx context.Context) ([]models.Playlist, error) {
	return DecodeCollection(m.Raw())
}

// SaveCollection implements [CollectionStore].
func (m *MemoryStore) SaveCollection(ctx context.Context, playlists []models.Playlist) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := EncodeCollection(playlists)
	if err != nil {
		return err
	}
	m.SetRaw(data)
	return nil
}
