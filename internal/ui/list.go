package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/moodlist/internal/models"
)

var (
	_ list.Item = moodItem{}
	_ list.Item = trackItem{}
	_ list.Item = nameItem("")
)

// moodItem wraps [models.Mood] to implement [list.Item].
type moodItem struct {
	mood models.Mood
}

func (i moodItem) FilterValue() string { return i.mood.Label }
func (i moodItem) Title() string       { return i.mood.Label }
func (i moodItem) Description() string { return i.mood.Genre }

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string       { return i.track.Name }
func (i trackItem) Description() string {
	return fmt.Sprintf("by %s", i.track.ArtistLine())
}

// nameItem is a playlist name offered by the commit view.
type nameItem string

func (i nameItem) FilterValue() string { return string(i) }
func (i nameItem) Title() string       { return string(i) }
func (i nameItem) Description() string { return "" }

func newList(title string, items []list.Item, width, height int) list.Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, width, height)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return l
}

func moodItems(moods []models.Mood) []list.Item {
	items := make([]list.Item, len(moods))
	for i, m := range moods {
		items[i] = moodItem{mood: m}
	}
	return items
}

func trackItems(tracks []models.Track) []list.Item {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}
	return items
}

func nameItems(names []string) []list.Item {
	items := make([]list.Item, len(names))
	for i, n := range names {
		items[i] = nameItem(n)
	}
	return items
}
