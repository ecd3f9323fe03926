package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	var keys []key.Binding

	switch m.view {
	case MoodView:
		body = m.moodList.View()
		keys = []key.Binding{m.keys.enter, m.keys.playlists, m.keys.quit}
	case ResultsView:
		body = m.renderResults()
		keys = []key.Binding{withHelp(m.keys.enter, "add to playlist"), m.keys.open, m.keys.back, m.keys.playlists, m.keys.quit}
	case NoteView:
		body = m.renderNote()
		keys = []key.Binding{withHelp(m.keys.enter, "continue"), m.keys.back}
	case CommitView:
		body = m.renderCommit()
		keys = []key.Binding{withHelp(m.keys.enter, "add"), m.keys.create, m.keys.cancel, m.keys.quit}
	case PlaylistsView:
		body = m.renderPlaylists()
		keys = []key.Binding{m.keys.up, m.keys.down, withHelp(m.keys.enter, "open"), m.keys.create, withHelp(m.keys.remove, "delete"), m.keys.back, m.keys.quit}
	case SongsView:
		body = m.renderSongs()
		keys = []key.Binding{m.keys.up, m.keys.down, m.keys.moveUp, m.keys.moveDown, m.keys.remove, m.keys.open, m.keys.back}
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")

	if m.naming {
		b.WriteString("\n" + m.nameInput.View() + "\n")
		keys = []key.Binding{withHelp(m.keys.enter, "create"), m.keys.back}
	}

	if line := m.renderStatus(); line != "" {
		b.WriteString("\n" + line + "\n")
	}

	if m.confirm != nil {
		b.WriteString("\n" + styles.warn.Render(m.confirm.prompt+" (y/n)") + "\n")
		keys = []key.Binding{m.keys.yes, m.keys.no}
	}

	b.WriteString("\n" + m.help.ShortHelpView(keys))
	return b.String()
}

func withHelp(b key.Binding, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(b.Keys()...), key.WithHelp(b.Help().Key, desc))
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return styles.err.Render(m.err.Error())
	case m.status != "":
		return styles.ok.Render(m.status)
	default:
		return ""
	}
}

func (m *Model) renderResults() string {
	if len(m.search.Tracks) == 0 {
		return styles.title.Render(fmt.Sprintf("%s (%s)", m.mood.Label, m.mood.Genre))
	}
	return m.trackList.View()
}

func (m *Model) renderNote() string {
	title := styles.title.Render("Add a note")
	track := fmt.Sprintf("%s by %s", m.selected.Name, m.selected.ArtistLine())
	return fmt.Sprintf("%s\n%s\n\n%s", title, track, m.noteInput.View())
}

func (m *Model) renderCommit() string {
	t := m.review.Track
	var b strings.Builder

	b.WriteString(styles.title.Render("Add to playlist") + "\n")
	fmt.Fprintf(&b, "%s by %s\n", t.Name, t.Artist)
	if t.Description != "" {
		b.WriteString(styles.help.Render(t.Description) + "\n")
	}
	b.WriteString(styles.muted.Render(t.URL) + "\n\n")

	if len(m.review.Playlists) == 0 {
		b.WriteString("No playlists yet. Press n to create one.")
		return b.String()
	}
	b.WriteString(m.nameList.View())
	return b.String()
}

func (m *Model) renderPlaylists() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("My Playlists") + "\n")

	if len(m.playlists) == 0 {
		b.WriteString("No playlists yet.")
		return b.String()
	}

	for i, p := range m.playlists {
		line := fmt.Sprintf("%s (%d songs)", p.Name, len(p.Songs))
		if i == m.playlistCursor {
			b.WriteString(styles.selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (m *Model) renderSongs() string {
	p, ok := m.currentPlaylist()
	if !ok {
		return "No playlists yet."
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(p.Name) + "\n")

	if len(p.Songs) == 0 {
		b.WriteString("No songs in this playlist.")
		return b.String()
	}

	for i, s := range p.Songs {
		arrows := ""
		if i > 0 {
			arrows += "↑"
		}
		if i < len(p.Songs)-1 {
			arrows += "↓"
		}

		line := fmt.Sprintf("%d. %s by %s %s", i+1, s.Title, s.Artist, styles.muted.Render(arrows))
		if i == m.songCursor {
			b.WriteString(styles.selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
		if s.Description != "" {
			b.WriteString("     " + styles.help.Render(s.Description) + "\n")
		}
		b.WriteString("     " + styles.muted.Render(s.URL) + "\n")
	}
	return b.String()
}
