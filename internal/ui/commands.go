package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodlist/internal/handoff"
	"github.com/desertthunder/moodlist/internal/models"
)

func (m *Model) runSearch(mood models.Mood) tea.Cmd {
	return func() tea.Msg {
		return searchCompletedMsg(mood, m.searcher.SearchGenre(m.ctx, mood.Genre))
	}
}

func (m *Model) stage(track models.Track, note string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.handoff.Stage(m.ctx, track, note); err != nil {
			return selectionStagedMsg(handoff.Review{}, err)
		}
		review, err := m.handoff.Review(m.ctx)
		return selectionStagedMsg(review, err)
	}
}

func (m *Model) commit(playlistName string) tea.Cmd {
	title := m.review.Track.Name
	return func() tea.Msg {
		playlists, err := m.handoff.Commit(m.ctx, playlistName)
		return selectionCommittedMsg(playlists, fmt.Sprintf("Added %q to %s.", title, playlistName), err)
	}
}

func (m *Model) cancelSelection() tea.Cmd {
	return func() tea.Msg {
		return selectionCancelledMsg(m.handoff.Cancel(m.ctx))
	}
}

func (m *Model) loadPlaylists(status string) tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.repo.Playlists(m.ctx)
		return playlistsLoadedMsg(playlists, status, err)
	}
}

func (m *Model) createPlaylist(name string) tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.repo.CreatePlaylist(m.ctx, name)
		return playlistsLoadedMsg(playlists, fmt.Sprintf("Created playlist %s.", name), err)
	}
}

func (m *Model) removePlaylist(id, name string) tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.repo.RemovePlaylist(m.ctx, id)
		return playlistsLoadedMsg(playlists, fmt.Sprintf("Deleted playlist %s.", name), err)
	}
}

func (m *Model) moveSong(id string, index, direction int) tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.repo.MoveSong(m.ctx, id, index, direction)
		return playlistsLoadedMsg(playlists, "", err)
	}
}

func (m *Model) removeSong(id string, index int, title string) tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.repo.RemoveTrackFromPlaylist(m.ctx, id, index)
		return playlistsLoadedMsg(playlists, fmt.Sprintf("Removed %q.", title), err)
	}
}

func (m *Model) open(url string) tea.Cmd {
	return func() tea.Msg {
		if err := m.openURL(url); err != nil {
			return statusMsg("", err)
		}
		return statusMsg("Opened in browser.", nil)
	}
}
