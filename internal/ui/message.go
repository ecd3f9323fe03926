package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodlist/internal/handoff"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/services"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchCompleted MsgKind = iota
	MsgSelectionStaged
	MsgSelectionCommitted
	MsgSelectionCancelled
	MsgPlaylistsLoaded
	MsgStatus
)

type searchData struct {
	mood   models.Mood
	result services.SearchResult
}

type stagedData struct {
	review handoff.Review
	err    error
}

type playlistsData struct {
	playlists []models.Playlist
	status    string
	err       error
}

// searchCompletedMsg is the constructor for [MsgSearchCompleted]
func searchCompletedMsg(mood models.Mood, result services.SearchResult) Msg {
	return Msg{kind: MsgSearchCompleted, data: searchData{mood, result}}
}

// selectionStagedMsg is the constructor for [MsgSelectionStaged]
func selectionStagedMsg(review handoff.Review, err error) Msg {
	return Msg{kind: MsgSelectionStaged, data: stagedData{review, err}}
}

// selectionCommittedMsg is the constructor for [MsgSelectionCommitted]
func selectionCommittedMsg(playlists []models.Playlist, status string, err error) Msg {
	return Msg{kind: MsgSelectionCommitted, data: playlistsData{playlists, status, err}}
}

// selectionCancelledMsg is the constructor for [MsgSelectionCancelled]
func selectionCancelledMsg(err error) Msg {
	return Msg{kind: MsgSelectionCancelled, data: err}
}

// playlistsLoadedMsg is the constructor for [MsgPlaylistsLoaded]
func playlistsLoadedMsg(playlists []models.Playlist, status string, err error) Msg {
	return Msg{kind: MsgPlaylistsLoaded, data: playlistsData{playlists, status, err}}
}

// statusMsg is the constructor for [MsgStatus]
func statusMsg(text string, err error) Msg {
	return Msg{kind: MsgStatus, data: playlistsData{status: text, err: err}}
}
