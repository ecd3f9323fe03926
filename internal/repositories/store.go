package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/shared"
)

// CollectionKey is the slot holding the whole serialized playlist collection.
const CollectionKey = "my_playlists"

// CollectionStore loads and saves the playlist collection as a single unit.
//
// Implementations must overwrite the previous content wholesale on save and
// return an empty collection (not an error) when nothing has been stored yet.
type CollectionStore interface {
	LoadCollection(ctx context.Context) ([]models.Playlist, error)
	SaveCollection(ctx context.Context, playlists []models.Playlist) error
}

// EncodeCollection serializes playlists to the stored JSON form.
func EncodeCollection(playlists []models.Playlist) ([]byte, error) {
	// Clone always yields non-nil Songs, so empty playlists encode as "songs":[]
	data, err := json.Marshal(models.ClonePlaylists(playlists))
	if err != nil {
		return nil, fmt.Errorf("failed to encode playlists: %w", err)
	}
	return data, nil
}

// DecodeCollection parses stored content. Empty or null content is an empty collection;
// anything that is not a JSON array of playlists wraps [shared.ErrMalformedStoredData].
func DecodeCollection(data []byte) ([]models.Playlist, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []models.Playlist{}, nil
	}

	var playlists []models.Playlist
	if err := json.Unmarshal(trimmed, &playlists); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedStoredData, err)
	}

	for i := range playlists {
		if playlists[i].Songs == nil {
			playlists[i].Songs = []models.Song{}
		}
	}
	return playlists, nil
}
