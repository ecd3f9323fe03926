package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/shared"
)

// Move directions accepted by [PlaylistRepository.MoveSong].
const (
	MoveUp   = -1
	MoveDown = 1
)

// PlaylistRepository performs playlist CRUD against a [CollectionStore].
//
// It holds no state between calls: every operation loads the whole collection,
// changes it, and saves it back before returning the updated collection.
type PlaylistRepository struct {
	store  CollectionStore
	logger *log.Logger
}

// NewPlaylistRepository creates a new PlaylistRepository with the given store
func NewPlaylistRepository(store CollectionStore, logger *log.Logger) *PlaylistRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PlaylistRepository{store: store, logger: logger}
}

// load reads the collection. Malformed content is logged and treated as empty.
func (r *PlaylistRepository) load(ctx context.Context) ([]models.Playlist, error) {
	playlists, err := r.store.LoadCollection(ctx)
	if errors.Is(err, shared.ErrMalformedStoredData) {
		r.logger.Warn("stored playlists are unreadable, treating as empty", "error", err)
		return []models.Playlist{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load playlists: %w", err)
	}
	return playlists, nil
}

func (r *PlaylistRepository) save(ctx context.Context, playlists []models.Playlist) error {
	if err := r.store.SaveCollection(ctx, playlists); err != nil {
		return fmt.Errorf("failed to save playlists: %w", err)
	}
	return nil
}

// Playlists returns the stored collection in order.
func (r *PlaylistRepository) Playlists(ctx context.Context) ([]models.Playlist, error) {
	return r.load(ctx)
}

// PlaylistNames returns the playlist names in stored order.
func (r *PlaylistRepository) PlaylistNames(ctx context.Context) ([]string, error) {
	playlists, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(playlists))
	for i, p := range playlists {
		names[i] = p.Name
	}
	return names, nil
}

// Get returns the playlist with the given id.
func (r *PlaylistRepository) Get(ctx context.Context, id string) (*models.Playlist, error) {
	playlists, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexByID(playlists, id); i >= 0 {
		return &playlists[i], nil
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
}

// CreatePlaylist appends an empty playlist with a fresh id.
//
// The name is used as given; callers trim it. A name equal to an existing one
// ignoring case fails with [shared.ErrDuplicateName] and nothing is written.
func (r *PlaylistRepository) CreatePlaylist(ctx context.Context, name string) ([]models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name is empty", shared.ErrInvalidInput)
	}

	playlists, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if indexByName(playlists, name) >= 0 {
		return playlists, fmt.Errorf("%w: %q", shared.ErrDuplicateName, name)
	}

	playlist := models.NewPlaylist(shared.GenerateID(), name)
	playlists = append(playlists, playlist)
	if err := r.save(ctx, playlists); err != nil {
		return nil, err
	}

	r.logger.Debug("playlist created", "id", playlist.ID, "name", name)
	return playlists, nil
}

// AddTrackToPlaylist appends song to the first playlist whose name matches ignoring case.
//
// Fails with [shared.ErrPlaylistNotFound] when no playlist matches; nothing is written.
func (r *PlaylistRepository) AddTrackToPlaylist(ctx context.Context, playlistName string, song models.Song) ([]models.Playlist, error) {
	playlists, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexByName(playlists, playlistName)
	if i < 0 {
		return playlists, fmt.Errorf("%w: %q", shared.ErrPlaylistNotFound, playlistName)
	}

	playlists[i].Songs = append(playlists[i].Songs, song)
	if err := r.save(ctx, playlists); err != nil {
		return nil, err
	}

	r.logger.Debug("track added", "playlist", playlists[i].Name, "track_id", song.TrackID)
	return playlists, nil
}

// MoveSong swaps the song at index with its neighbour in direction ([MoveUp] or [MoveDown]).
//
// Unknown ids, other directions, and moves past either end are silent no-ops.
func (r *PlaylistRepository) MoveSong(ctx context.Context, playlistID string, index, direction int) ([]models.Playlist, error) {
	playlists, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if direction != MoveUp && direction != MoveDown {
		return playlists, nil
	}

	i := indexByID(playlists, playlistID)
	if i < 0 {
		return playlists, nil
	}

	songs := playlists[i].Songs
	target := index + direction
	if index < 0 || index >= len(songs) || target < 0 || target >= len(songs) {
		return playlists, nil
	}

	songs[index], songs[target] = songs[target], songs[index]
	if err := r.save(ctx, playlists); err != nil {
		return nil, err
	}

	r.logger.Debug("song moved", "playlist_id", playlistID, "from", index, "to", target)
	return playlists, nil
}

// RemoveTrackFromPlaylist deletes the song at index, shifting later songs left.
//
// Unknown ids and out-of-range indexes are silent no-ops.
func (r *PlaylistRepository) RemoveTrackFromPlaylist(ctx context.Context, playlistID string, index int) ([]models.Playlist, error) {
	playlists, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexByID(playlists, playlistID)
	if i < 0 || index < 0 || index >= len(playlists[i].Songs) {
		return playlists, nil
	}

	songs := playlists[i].Songs
	playlists[i].Songs = append(songs[:index:index], songs[index+1:]...)
	if err := r.save(ctx, playlists); err != nil {
		return nil, err
	}

	r.logger.Debug("song removed", "playlist_id", playlistID, "index", index)
	return playlists, nil
}

// RemovePlaylist deletes the playlist with the given id; an unknown id is a no-op.
func (r *PlaylistRepository) RemovePlaylist(ctx context.Context, playlistID string) ([]models.Playlist, error) {
	playlists, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexByID(playlists, playlistID)
	if i < 0 {
		return playlists, nil
	}

	playlists = append(playlists[:i:i], playlists[i+1:]...)
	if err := r.save(ctx, playlists); err != nil {
		return nil, err
	}

	r.logger.Debug("playlist removed", "id", playlistID)
	return playlists, nil
}

func indexByID(playlists []models.Playlist, id string) int {
	for i, p := range playlists {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func indexByName(playlists []models.Playlist, name string) int {
	for i, p := range playlists {
		if shared.SameName(p.Name, name) {
			return i
		}
	}
	return -1
}
