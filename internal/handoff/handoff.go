package handoff

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/shared"
)

// State of the handoff slot.
type State int

const (
	Empty State = iota
	Staged
)

func (s State) String() string {
	if s == Staged {
		return "staged"
	}
	return "empty"
}

// Playlists is the subset of the playlist repository the protocol needs.
type Playlists interface {
	PlaylistNames(ctx context.Context) ([]string, error)
	AddTrackToPlaylist(ctx context.Context, playlistName string, song models.Song) ([]models.Playlist, error)
}

// Review is what the commit view shows: the staged record and the names it may go to.
type Review struct {
	Track     models.SelectedTrack `json:"track"`
	Playlists []string             `json:"playlists"`
}

// Protocol moves a selected track from search to a playlist.
type Protocol struct {
	slot   Slot
	repo   Playlists
	logger *log.Logger
}

// NewProtocol creates a Protocol over slot and repo.
func NewProtocol(slot Slot, repo Playlists, logger *log.Logger) *Protocol {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Protocol{slot: slot, repo: repo, logger: logger}
}

// Stage records track with the user's note, replacing anything already staged.
func (p *Protocol) Stage(ctx context.Context, track models.Track, note string) (models.SelectedTrack, error) {
	record := models.NewSelectedTrack(track, note)
	if err := p.slot.Stage(ctx, record); err != nil {
		return models.SelectedTrack{}, err
	}
	p.logger.Debug("track staged", "track_id", record.ID)
	return record, nil
}

// Selection returns the staged record or [shared.ErrNoSelection].
func (p *Protocol) Selection(ctx context.Context) (models.SelectedTrack, error) {
	record, err := p.slot.Read(ctx)
	if err != nil {
		return models.SelectedTrack{}, err
	}
	if record == nil {
		return models.SelectedTrack{}, shared.ErrNoSelection
	}
	return *record, nil
}

// Review returns the staged record and the current playlist names.
func (p *Protocol) Review(ctx context.Context) (Review, error) {
	record, err := p.Selection(ctx)
	if err != nil {
		return Review{}, err
	}

	names, err := p.repo.PlaylistNames(ctx)
	if err != nil {
		return Review{}, err
	}
	return Review{Track: record, Playlists: names}, nil
}

// Commit appends the staged record to playlistName and clears the slot.
//
// The name must match an existing playlist ignoring case. On any failure the
// record stays staged so the user can pick again.
func (p *Protocol) Commit(ctx context.Context, playlistName string) ([]models.Playlist, error) {
	record, err := p.Selection(ctx)
	if err != nil {
		return nil, err
	}

	playlists, err := p.repo.AddTrackToPlaylist(ctx, playlistName, record.Song())
	if err != nil {
		return playlists, err
	}

	if err := p.slot.Clear(ctx); err != nil {
		return playlists, err
	}

	p.logger.Info("track added to playlist", "track", record.Name, "playlist", playlistName)
	return playlists, nil
}

// Cancel discards the staged record. Cancelling an empty slot is not an error.
func (p *Protocol) Cancel(ctx context.Context) error {
	return p.slot.Clear(ctx)
}

// State reports whether a record is staged.
func (p *Protocol) State(ctx context.Context) (State, error) {
	record, err := p.slot.Read(ctx)
	if err != nil {
		return Empty, err
	}
	if record == nil {
		return Empty, nil
	}
	return Staged, nil
}
