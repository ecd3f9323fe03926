package models

import (
	"encoding/json"
	"testing"
)

func TestTrack(t *testing.T) {
	t.Run("ArtistLine", func(t *testing.T) {
		tc := []struct {
			name    string
			artists []string
			want    string
		}{
			{name: "single", artists: []string{"Daft Punk"}, want: "Daft Punk"},
			{name: "multiple", artists: []string{"Simon", "Garfunkel"}, want: "Simon, Garfunkel"},
			{name: "none", artists: nil, want: ""},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := (Track{Artists: tt.artists}).ArtistLine(); got != tt.want {
					t.Errorf("ArtistLine() = %q, want %q", got, tt.want)
				}
			})
		}
	})

	t.Run("NewSelectedTrack", func(t *testing.T) {
		track := Track{ID: "t1", Name: "Song X", Artists: []string{"Artist Y", "Artist Z"}, URL: "https://open.spotify.com/track/t1"}

		selected := NewSelectedTrack(track, "late night")
		if selected.ID != "t1" || selected.Name != "Song X" {
			t.Errorf("unexpected identity fields: %+v", selected)
		}
		if selected.Artist != "Artist Y, Artist Z" {
			t.Errorf("expected joined artists, got %q", selected.Artist)
		}
		if selected.Description != "late night" {
			t.Errorf("expected note to become description, got %q", selected.Description)
		}
	})
}

func TestSelectedTrackSong(t *testing.T) {
	selected := SelectedTrack{ID: "t1", Name: "Song X", Artist: "Artist Y", URL: "http://x"}
	song := selected.Song()

	want := Song{TrackID: "t1", Title: "Song X", Artist: "Artist Y", URL: "http://x", Description: ""}
	if song != want {
		t.Errorf("Song() = %+v, want %+v", song, want)
	}
}

func TestPlaylist(t *testing.T) {
	t.Run("NewPlaylist encodes empty songs array", func(t *testing.T) {
		data, err := json.Marshal(NewPlaylist("id-1", "Chill"))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != `{"id":"id-1","name":"Chill","songs":[]}` {
			t.Errorf("unexpected encoding: %s", data)
		}
	})

	t.Run("Clone does not alias songs", func(t *testing.T) {
		original := Playlist{ID: "p", Name: "n", Songs: []Song{{Title: "A"}, {Title: "B"}}}
		clone := original.Clone()
		clone.Songs[0].Title = "changed"

		if original.Songs[0].Title != "A" {
			t.Error("mutating the clone changed the original")
		}
	})

	t.Run("ClonePlaylists", func(t *testing.T) {
		original := []Playlist{{ID: "p", Songs: []Song{{Title: "A"}}}}
		clone := ClonePlaylists(original)
		clone[0].Songs[0].Title = "changed"

		if original[0].Songs[0].Title != "A" {
			t.Error("mutating the cloned collection changed the original")
		}
	})
}

func TestStoredFieldNames(t *testing.T) {
	song := Song{TrackID: "t1", Title: "T", Artist: "A", URL: "U"}
	data, err := json.Marshal(song)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"trackId":"t1","title":"T","artist":"A","url":"U","description":""}`
	if string(data) != want {
		t.Errorf("song encoding = %s, want %s", data, want)
	}

	selected, err := json.Marshal(SelectedTrack{ID: "t1", Name: "N", Artist: "A", URL: "U"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(selected) != `{"id":"t1","name":"N","artist":"A","url":"U"}` {
		t.Errorf("selected track should omit empty description, got %s", selected)
	}
}
