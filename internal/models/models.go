package models

import "strings"

// Playlist is a user-named, ordered list of songs.
type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

// Song is a copy of a track taken at add time; it is never refreshed from the source.
type Song struct {
	TrackID     string `json:"trackId"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// SelectedTrack is the record staged for the "add to playlist" handoff.
type SelectedTrack struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Track is a single remote search result.
type Track struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
	URL     string   `json:"url"`
}

// Mood maps a button label to the genre it searches.
type Mood struct {
	Label string `json:"label"`
	Genre string `json:"genre"`
}

// NewPlaylist returns an empty playlist. Songs is non-nil so it encodes as [].
func NewPlaylist(id, name string) Playlist {
	return Playlist{ID: id, Name: name, Songs: []Song{}}
}

// Clone returns a deep copy so callers can mutate songs without aliasing.
func (p Playlist) Clone() Playlist {
	songs := make([]Song, len(p.Songs))
	copy(songs, p.Songs)
	return Playlist{ID: p.ID, Name: p.Name, Songs: songs}
}

// ArtistLine joins artist names the way they are displayed and stored.
func (t Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}

// NewSelectedTrack stages a search result together with the user's note.
func NewSelectedTrack(t Track, note string) SelectedTrack {
	return SelectedTrack{
		ID:          t.ID,
		Name:        t.Name,
		Artist:      t.ArtistLine(),
		URL:         t.URL,
		Description: note,
	}
}

// Song converts the staged record into the song appended to a playlist.
func (s SelectedTrack) Song() Song {
	return Song{
		TrackID:     s.ID,
		Title:       s.Name,
		Artist:      s.Artist,
		URL:         s.URL,
		Description: s.Description,
	}
}

// ClonePlaylists deep-copies a collection.
func ClonePlaylists(playlists []Playlist) []Playlist {
	out := make([]Playlist, len(playlists))
	for i, p := range playlists {
		out[i] = p.Clone()
	}
	return out
}
