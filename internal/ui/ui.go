package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodlist/internal/handoff"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/repositories"
	"github.com/desertthunder/moodlist/internal/services"
	"github.com/desertthunder/moodlist/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MoodView ViewState = iota
	ResultsView
	NoteView
	CommitView
	PlaylistsView
	SongsView
)

// Playlists is the repository surface the TUI drives.
type Playlists interface {
	Playlists(ctx context.Context) ([]models.Playlist, error)
	CreatePlaylist(ctx context.Context, name string) ([]models.Playlist, error)
	MoveSong(ctx context.Context, playlistID string, index, direction int) ([]models.Playlist, error)
	RemoveTrackFromPlaylist(ctx context.Context, playlistID string, index int) ([]models.Playlist, error)
	RemovePlaylist(ctx context.Context, playlistID string) ([]models.Playlist, error)
}

// confirmation is a pending destructive action waiting for y/n.
type confirmation struct {
	prompt string
	action tea.Cmd
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	repo     Playlists
	handoff  *handoff.Protocol
	searcher services.Searcher
	openURL  func(string) error

	width  int
	height int

	moodList  list.Model
	trackList list.Model
	nameList  list.Model
	noteInput textinput.Model
	nameInput textinput.Model
	naming    bool

	mood      models.Mood
	search    services.SearchResult
	searching bool
	selected  models.Track
	review    handoff.Review

	playlists      []models.Playlist
	playlistCursor int
	songCursor     int

	confirm *confirmation
	status  string
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, repo Playlists, protocol *handoff.Protocol, searcher services.Searcher) *Model {
	note := textinput.New()
	note.Placeholder = "Add a note..."
	note.CharLimit = 280

	name := textinput.New()
	name.Placeholder = "Playlist name"
	name.CharLimit = 100

	m := &Model{
		ctx:       ctx,
		view:      MoodView,
		repo:      repo,
		handoff:   protocol,
		searcher:  searcher,
		openURL:   shared.OpenBrowser,
		width:     80,
		height:    24,
		noteInput: note,
		nameInput: name,
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.moodList = newList("How are you feeling?", moodItems(services.Moods()), m.listWidth(), m.listHeight())
	m.trackList = newList("", nil, m.listWidth(), m.listHeight())
	m.nameList = newList("", nil, m.listWidth(), m.listHeight())
	return m
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// Init loads the stored playlists so the playlists view is ready.
func (m *Model) Init() tea.Cmd {
	return m.loadPlaylists("")
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.moodList, &m.trackList, &m.nameList} {
			l.SetSize(m.listWidth(), m.listHeight())
		}
		return m, nil

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirm != nil {
			return m.handleConfirmKeys(msg)
		}
		if m.naming {
			return m.handleNameKeys(msg)
		}

		switch m.view {
		case MoodView:
			return m.handleMoodKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case NoteView:
			return m.handleNoteKeys(msg)
		case CommitView:
			return m.handleCommitKeys(msg)
		case PlaylistsView:
			return m.handlePlaylistsKeys(msg)
		case SongsView:
			return m.handleSongsKeys(msg)
		}
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSearchCompleted:
		data := msg.data.(searchData)
		m.searching = false
		m.mood = data.mood
		m.search = data.result
		m.trackList = newList(fmt.Sprintf("%s (%s)", data.mood.Label, data.mood.Genre), trackItems(data.result.Tracks), m.listWidth(), m.listHeight())
		m.setStatus("", nil)
		switch {
		case !data.result.OK():
			m.err = errors.New(data.result.Message)
		case len(data.result.Tracks) == 0:
			m.status = services.MsgNoTracks
		}
		m.view = ResultsView

	case MsgSelectionStaged:
		data := msg.data.(stagedData)
		if data.err != nil {
			m.setStatus("", data.err)
			return m, nil
		}
		m.review = data.review
		m.nameList = newList("Add to playlist", nameItems(data.review.Playlists), m.listWidth(), m.listHeight())
		m.setStatus("", nil)
		m.view = CommitView

	case MsgSelectionCommitted:
		data := msg.data.(playlistsData)
		if data.err != nil {
			m.setStatus("", data.err)
			return m, nil
		}
		m.playlists = data.playlists
		m.review = handoff.Review{}
		m.playlistCursor = 0
		m.setStatus(data.status, nil)
		m.view = PlaylistsView

	case MsgSelectionCancelled:
		if err, _ := msg.data.(error); err != nil {
			m.setStatus("", err)
			return m, nil
		}
		m.review = handoff.Review{}
		m.setStatus("Selection cancelled.", nil)
		m.view = ResultsView

	case MsgPlaylistsLoaded:
		data := msg.data.(playlistsData)
		if data.err != nil {
			m.setStatus("", data.err)
			return m, nil
		}
		m.playlists = data.playlists
		m.clampCursors()
		if m.view == CommitView {
			m.review.Playlists = playlistNames(m.playlists)
			m.nameList = newList("Add to playlist", nameItems(m.review.Playlists), m.listWidth(), m.listHeight())
			if n := len(m.review.Playlists); n > 0 {
				m.nameList.Select(n - 1)
			}
		}
		if data.status != "" {
			m.setStatus(data.status, nil)
		}

	case MsgStatus:
		data := msg.data.(playlistsData)
		m.setStatus(data.status, data.err)
	}

	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		action := m.confirm.action
		m.confirm = nil
		return m, action
	case key.Matches(msg, m.keys.no):
		m.confirm = nil
		m.setStatus("Cancelled.", nil)
	}
	return m, nil
}

func (m *Model) handleNameKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.naming = false
		m.nameInput.Blur()
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.setStatus("", fmt.Errorf("%w: playlist name cannot be empty", shared.ErrInvalidInput))
			return m, nil
		}
		m.naming = false
		m.nameInput.Blur()
		return m, m.createPlaylist(name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) handleMoodKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		item, ok := m.moodList.SelectedItem().(moodItem)
		if !ok || m.searching {
			return m, nil
		}
		m.searching = true
		m.setStatus(fmt.Sprintf("Searching for %s...", item.mood.Genre), nil)
		return m, m.runSearch(item.mood)
	case key.Matches(msg, m.keys.playlists):
		m.view = PlaylistsView
		return m, m.loadPlaylists("")
	}

	var cmd tea.Cmd
	m.moodList, cmd = m.moodList.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.setStatus("", nil)
		m.view = MoodView
		return m, nil
	case key.Matches(msg, m.keys.playlists):
		m.view = PlaylistsView
		return m, m.loadPlaylists("")
	case key.Matches(msg, m.keys.open):
		if item, ok := m.trackList.SelectedItem().(trackItem); ok {
			return m, m.open(item.track.URL)
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		item, ok := m.trackList.SelectedItem().(trackItem)
		if !ok {
			return m, nil
		}
		m.selected = item.track
		m.noteInput.SetValue("")
		m.setStatus("", nil)
		m.view = NoteView
		return m, m.noteInput.Focus()
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleNoteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.noteInput.Blur()
		m.view = ResultsView
		return m, nil
	case tea.KeyEnter:
		m.noteInput.Blur()
		return m, m.stage(m.selected, strings.TrimSpace(m.noteInput.Value()))
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m *Model) handleCommitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.cancel), key.Matches(msg, m.keys.back):
		return m, m.cancelSelection()
	case key.Matches(msg, m.keys.create):
		return m, m.startNaming()
	case key.Matches(msg, m.keys.enter):
		item, ok := m.nameList.SelectedItem().(nameItem)
		if !ok {
			m.setStatus("", fmt.Errorf("%w: create a playlist first", shared.ErrPlaylistNotFound))
			return m, nil
		}
		return m, m.commit(string(item))
	}

	var cmd tea.Cmd
	m.nameList, cmd = m.nameList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.setStatus("", nil)
		m.view = MoodView
	case key.Matches(msg, m.keys.up):
		if m.playlistCursor > 0 {
			m.playlistCursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.playlistCursor < len(m.playlists)-1 {
			m.playlistCursor++
		}
	case key.Matches(msg, m.keys.create):
		return m, m.startNaming()
	case key.Matches(msg, m.keys.enter):
		if len(m.playlists) > 0 {
			m.songCursor = 0
			m.setStatus("", nil)
			m.view = SongsView
		}
	case key.Matches(msg, m.keys.remove):
		if p, ok := m.currentPlaylist(); ok {
			m.confirm = &confirmation{
				prompt: fmt.Sprintf("Delete playlist %q?", p.Name),
				action: m.removePlaylist(p.ID, p.Name),
			}
		}
	}
	return m, nil
}

func (m *Model) handleSongsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, ok := m.currentPlaylist()
	if !ok {
		m.view = PlaylistsView
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.setStatus("", nil)
		m.view = PlaylistsView
	case key.Matches(msg, m.keys.moveUp):
		if m.songCursor > 0 {
			m.songCursor--
			return m, m.moveSong(p.ID, m.songCursor+1, repositories.MoveUp)
		}
	case key.Matches(msg, m.keys.moveDown):
		if m.songCursor < len(p.Songs)-1 {
			m.songCursor++
			return m, m.moveSong(p.ID, m.songCursor-1, repositories.MoveDown)
		}
	case key.Matches(msg, m.keys.up):
		if m.songCursor > 0 {
			m.songCursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.songCursor < len(p.Songs)-1 {
			m.songCursor++
		}
	case key.Matches(msg, m.keys.open):
		if m.songCursor < len(p.Songs) {
			return m, m.open(p.Songs[m.songCursor].URL)
		}
	case key.Matches(msg, m.keys.remove):
		if m.songCursor < len(p.Songs) {
			song := p.Songs[m.songCursor]
			m.confirm = &confirmation{
				prompt: fmt.Sprintf("Remove %q from %s?", song.Title, p.Name),
				action: m.removeSong(p.ID, m.songCursor, song.Title),
			}
		}
	}
	return m, nil
}

func (m *Model) startNaming() tea.Cmd {
	m.naming = true
	m.nameInput.SetValue("")
	return m.nameInput.Focus()
}

func (m *Model) currentPlaylist() (models.Playlist, bool) {
	if m.playlistCursor < 0 || m.playlistCursor >= len(m.playlists) {
		return models.Playlist{}, false
	}
	return m.playlists[m.playlistCursor], true
}

func (m *Model) clampCursors() {
	m.playlistCursor = clamp(m.playlistCursor, len(m.playlists))
	if p, ok := m.currentPlaylist(); ok {
		m.songCursor = clamp(m.songCursor, len(p.Songs))
	} else {
		m.songCursor = 0
	}
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m *Model) setStatus(status string, err error) {
	m.status = status
	m.err = err
}

func (m *Model) listWidth() int  { return max(m.width-4, 20) }
func (m *Model) listHeight() int { return max(m.height-8, 10) }

func playlistNames(playlists []models.Playlist) []string {
	names := make([]string, len(playlists))
	for i, p := range playlists {
		names[i] = p.Name
	}
	return names
}
