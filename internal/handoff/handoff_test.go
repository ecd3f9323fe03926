package handoff

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/repositories"
	"github.com/desertthunder/moodlist/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPlaylists struct {
	mock.Mock
}

func (m *MockPlaylists) PlaylistNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPlaylists) AddTrackToPlaylist(ctx context.Context, name string, song models.Song) ([]models.Playlist, error) {
	args := m.Called(ctx, name, song)
	return args.Get(0).([]models.Playlist), args.Error(1)
}

func track(id string) models.Track {
	return models.Track{ID: id, Name: "Song " + id, Artists: []string{"A", "B"}, URL: "https://open.spotify.com/track/" + id}
}

func newTestProtocol(t *testing.T, slot Slot) (*Protocol, *repositories.PlaylistRepository) {
	t.Helper()
	logger := shared.NewLogger(&bytes.Buffer{})
	repo := repositories.NewPlaylistRepository(repositories.NewMemoryStore(), logger)
	return NewProtocol(slot, repo, logger), repo
}

func TestProtocol(t *testing.T) {
	ctx := context.Background()

	t.Run("stage then commit", func(t *testing.T) {
		p, repo := newTestProtocol(t, NewChannelSlot())
		_, err := repo.CreatePlaylist(ctx, "Chill")
		require.NoError(t, err)

		record, err := p.Stage(ctx, track("t1"), "")
		require.NoError(t, err)
		assert.Equal(t, "A, B", record.Artist)

		state, err := p.State(ctx)
		require.NoError(t, err)
		assert.Equal(t, Staged, state)

		playlists, err := p.Commit(ctx, "chill")
		require.NoError(t, err)
		require.Len(t, playlists[0].Songs, 1)
		assert.Equal(t, models.Song{
			TrackID: "t1",
			Title:   "Song t1",
			Artist:  "A, B",
			URL:     "https://open.spotify.com/track/t1",
		}, playlists[0].Songs[0])

		state, err = p.State(ctx)
		require.NoError(t, err)
		assert.Equal(t, Empty, state)
	})

	t.Run("note becomes description", func(t *testing.T) {
		p, repo := newTestProtocol(t, NewChannelSlot())
		_, _ = repo.CreatePlaylist(ctx, "Chill")

		_, err := p.Stage(ctx, track("t1"), "sunday mornings")
		require.NoError(t, err)
		playlists, err := p.Commit(ctx, "Chill")
		require.NoError(t, err)
		assert.Equal(t, "sunday mornings", playlists[0].Songs[0].Description)
	})

	t.Run("restaging replaces the record", func(t *testing.T) {
		p, repo := newTestProtocol(t, NewChannelSlot())
		_, _ = repo.CreatePlaylist(ctx, "Chill")

		_, _ = p.Stage(ctx, track("t1"), "")
		_, _ = p.Stage(ctx, track("t2"), "")

		playlists, err := p.Commit(ctx, "Chill")
		require.NoError(t, err)
		require.Len(t, playlists[0].Songs, 1)
		assert.Equal(t, "t2", playlists[0].Songs[0].TrackID)
	})

	t.Run("review lists playlist names", func(t *testing.T) {
		p, repo := newTestProtocol(t, NewChannelSlot())
		_, _ = repo.CreatePlaylist(ctx, "Chill")
		_, _ = repo.CreatePlaylist(ctx, "Focus")
		_, _ = p.Stage(ctx, track("t1"), "")

		review, err := p.Review(ctx)
		require.NoError(t, err)
		assert.Equal(t, "t1", review.Track.ID)
		assert.Equal(t, []string{"Chill", "Focus"}, review.Playlists)

		state, _ := p.State(ctx)
		assert.Equal(t, Staged, state, "review must not consume the record")
	})

	t.Run("no selection", func(t *testing.T) {
		p, repo := newTestProtocol(t, NewChannelSlot())
		_, _ = repo.CreatePlaylist(ctx, "Chill")

		_, err := p.Review(ctx)
		assert.ErrorIs(t, err, shared.ErrNoSelection)

		_, err = p.Commit(ctx, "Chill")
		assert.ErrorIs(t, err, shared.ErrNoSelection)

		playlists, _ := repo.Playlists(ctx)
		assert.Empty(t, playlists[0].Songs)
	})

	t.Run("unknown playlist keeps record staged", func(t *testing.T) {
		p, repo := newTestProtocol(t, NewChannelSlot())
		_, _ = repo.CreatePlaylist(ctx, "Chill")
		_, _ = p.Stage(ctx, track("t1"), "")

		_, err := p.Commit(ctx, "Rock")
		assert.ErrorIs(t, err, shared.ErrPlaylistNotFound)

		state, _ := p.State(ctx)
		assert.Equal(t, Staged, state)

		_, err = p.Commit(ctx, "Chill")
		assert.NoError(t, err)
	})

	t.Run("cancel", func(t *testing.T) {
		p, repo := newTestProtocol(t, NewChannelSlot())
		_, _ = repo.CreatePlaylist(ctx, "Chill")
		_, _ = p.Stage(ctx, track("t1"), "")

		require.NoError(t, p.Cancel(ctx))
		require.NoError(t, p.Cancel(ctx))

		state, _ := p.State(ctx)
		assert.Equal(t, Empty, state)

		playlists, _ := repo.Playlists(ctx)
		assert.Empty(t, playlists[0].Songs)
	})

	t.Run("store failure keeps record staged", func(t *testing.T) {
		repo := new(MockPlaylists)
		boom := errors.New("disk full")
		repo.On("AddTrackToPlaylist", ctx, "Chill", mock.AnythingOfType("models.Song")).
			Return([]models.Playlist(nil), boom)

		p := NewProtocol(NewChannelSlot(), repo, shared.NewLogger(&bytes.Buffer{}))
		_, _ = p.Stage(ctx, track("t1"), "")

		_, err := p.Commit(ctx, "Chill")
		assert.ErrorIs(t, err, boom)

		state, _ := p.State(ctx)
		assert.Equal(t, Staged, state)
		repo.AssertExpectations(t)
	})

	t.Run("across processes through redis", func(t *testing.T) {
		_, client := setupRedis(t)
		logger := shared.NewLogger(&bytes.Buffer{})
		repo := repositories.NewPlaylistRepository(repositories.NewMemoryStore(), logger)
		_, _ = repo.CreatePlaylist(ctx, "Chill")

		stager := NewProtocol(NewRedisSlot(client, "sess", time.Minute, logger), repo, logger)
		_, err := stager.Stage(ctx, track("t1"), "note")
		require.NoError(t, err)

		committer := NewProtocol(NewRedisSlot(client, "sess", time.Minute, logger), repo, logger)
		playlists, err := committer.Commit(ctx, "Chill")
		require.NoError(t, err)
		assert.Equal(t, "t1", playlists[0].Songs[0].TrackID)

		state, err := stager.State(ctx)
		require.NoError(t, err)
		assert.Equal(t, Empty, state)
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "staged", Staged.String())
}
