package repositories

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/shared"
)

func newTestRepo(t *testing.T) (*PlaylistRepository, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewPlaylistRepository(store, shared.NewLogger(&bytes.Buffer{})), store
}

func song(id string) models.Song {
	return models.Song{TrackID: id, Title: "Title " + id, Artist: "Artist " + id, URL: "https://open.spotify.com/track/" + id}
}

// seedPlaylist creates a playlist and fills it with songs, returning its id.
func seedPlaylist(t *testing.T, repo *PlaylistRepository, name string, trackIDs ...string) string {
	t.Helper()
	ctx := context.Background()

	playlists, err := repo.CreatePlaylist(ctx, name)
	if err != nil {
		t.Fatalf("failed to create playlist: %v", err)
	}
	id := playlists[len(playlists)-1].ID

	for _, trackID := range trackIDs {
		if _, err := repo.AddTrackToPlaylist(ctx, name, song(trackID)); err != nil {
			t.Fatalf("failed to add track: %v", err)
		}
	}
	return id
}

func trackIDs(t *testing.T, repo *PlaylistRepository, playlistID string) []string {
	t.Helper()
	p, err := repo.Get(context.Background(), playlistID)
	if err != nil {
		t.Fatalf("failed to get playlist: %v", err)
	}
	ids := make([]string, len(p.Songs))
	for i, s := range p.Songs {
		ids[i] = s.TrackID
	}
	return ids
}

func TestPlaylistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatePlaylist", func(t *testing.T) {
		t.Run("on empty store", func(t *testing.T) {
			repo, _ := newTestRepo(t)

			playlists, err := repo.CreatePlaylist(ctx, "Chill")
			if err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
			if len(playlists) != 1 {
				t.Fatalf("expected 1 playlist, got %d", len(playlists))
			}
			if playlists[0].Name != "Chill" || len(playlists[0].Songs) != 0 || playlists[0].ID == "" {
				t.Errorf("unexpected playlist: %+v", playlists[0])
			}
		})

		t.Run("duplicate name differing in case", func(t *testing.T) {
			repo, store := newTestRepo(t)
			if _, err := repo.CreatePlaylist(ctx, "Chill"); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
			before := store.Raw()

			_, err := repo.CreatePlaylist(ctx, "chill")
			if !errors.Is(err, shared.ErrDuplicateName) {
				t.Fatalf("expected ErrDuplicateName, got %v", err)
			}

			playlists, _ := repo.Playlists(ctx)
			if len(playlists) != 1 {
				t.Errorf("expected collection size 1, got %d", len(playlists))
			}
			if !bytes.Equal(before, store.Raw()) {
				t.Error("rejected create should not write")
			}
		})

		t.Run("name is not trimmed", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			if _, err := repo.CreatePlaylist(ctx, "Chill"); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}

			playlists, err := repo.CreatePlaylist(ctx, " Chill ")
			if err != nil {
				t.Fatalf("padded name should be distinct: %v", err)
			}
			if playlists[1].Name != " Chill " {
				t.Errorf("expected name kept verbatim, got %q", playlists[1].Name)
			}
		})

		t.Run("empty name", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			if _, err := repo.CreatePlaylist(ctx, ""); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("ids are unique", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			first := seedPlaylist(t, repo, "One")
			if _, err := repo.RemovePlaylist(ctx, first); err != nil {
				t.Fatalf("failed to remove: %v", err)
			}
			second := seedPlaylist(t, repo, "One")
			if first == second {
				t.Error("id reused after deletion")
			}
		})
	})

	t.Run("AddTrackToPlaylist", func(t *testing.T) {
		t.Run("matches name ignoring case", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill")

			if _, err := repo.AddTrackToPlaylist(ctx, "CHILL", song("t1")); err != nil {
				t.Fatalf("failed to add: %v", err)
			}
			if got := trackIDs(t, repo, id); !reflect.DeepEqual(got, []string{"t1"}) {
				t.Errorf("expected [t1], got %v", got)
			}
		})

		t.Run("appends to the end and allows duplicates", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill", "a", "b", "a")

			if got := trackIDs(t, repo, id); !reflect.DeepEqual(got, []string{"a", "b", "a"}) {
				t.Errorf("expected [a b a], got %v", got)
			}
		})

		t.Run("copies fields verbatim", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill")
			s := models.Song{TrackID: "t1", Title: "Song X", Artist: "Artist Y", URL: "http://x", Description: "note"}

			if _, err := repo.AddTrackToPlaylist(ctx, "Chill", s); err != nil {
				t.Fatalf("failed to add: %v", err)
			}
			p, _ := repo.Get(ctx, id)
			if p.Songs[0] != s {
				t.Errorf("stored %+v, want %+v", p.Songs[0], s)
			}
		})

		t.Run("first match wins", func(t *testing.T) {
			repo, store := newTestRepo(t)
			store.SetRaw([]byte(`[{"id":"1","name":"Mix","songs":[]},{"id":"2","name":"MIX","songs":[]}]`))

			if _, err := repo.AddTrackToPlaylist(ctx, "mix", song("t")); err != nil {
				t.Fatalf("failed to add: %v", err)
			}
			if got := trackIDs(t, repo, "1"); len(got) != 1 {
				t.Errorf("expected first playlist to receive the track, got %v", got)
			}
			if got := trackIDs(t, repo, "2"); len(got) != 0 {
				t.Errorf("expected second playlist untouched, got %v", got)
			}
		})

		t.Run("playlist not found", func(t *testing.T) {
			repo, store := newTestRepo(t)
			seedPlaylist(t, repo, "Chill")
			before := store.Raw()

			_, err := repo.AddTrackToPlaylist(ctx, "Rock", song("t1"))
			if !errors.Is(err, shared.ErrPlaylistNotFound) {
				t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
			}
			if !bytes.Equal(before, store.Raw()) {
				t.Error("failed add should not write")
			}
		})
	})

	t.Run("MoveSong", func(t *testing.T) {
		t.Run("swaps neighbours", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill", "a", "b", "c")

			if _, err := repo.MoveSong(ctx, id, 0, MoveDown); err != nil {
				t.Fatalf("failed to move: %v", err)
			}
			if got := trackIDs(t, repo, id); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
				t.Errorf("expected [b a c], got %v", got)
			}

			if _, err := repo.MoveSong(ctx, id, 2, MoveUp); err != nil {
				t.Fatalf("failed to move: %v", err)
			}
			if got := trackIDs(t, repo, id); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
				t.Errorf("expected [b c a], got %v", got)
			}
		})

		t.Run("ends are no-ops", func(t *testing.T) {
			repo, store := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill", "a", "b", "c")
			before := store.Raw()

			if _, err := repo.MoveSong(ctx, id, 0, MoveUp); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := repo.MoveSong(ctx, id, 2, MoveDown); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !bytes.Equal(before, store.Raw()) {
				t.Error("moving past either end changed the stored collection")
			}
		})

		t.Run("swap is its own inverse", func(t *testing.T) {
			repo, store := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill", "a", "b", "c", "d")
			before := store.Raw()

			for i := 0; i < 3; i++ {
				if _, err := repo.MoveSong(ctx, id, i, MoveDown); err != nil {
					t.Fatalf("failed to move: %v", err)
				}
				if _, err := repo.MoveSong(ctx, id, i+1, MoveUp); err != nil {
					t.Fatalf("failed to move: %v", err)
				}
				if !bytes.Equal(before, store.Raw()) {
					t.Fatalf("down then up at %d did not restore the sequence", i)
				}
			}
		})

		t.Run("ignored inputs", func(t *testing.T) {
			repo, store := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill", "a", "b")
			before := store.Raw()

			cases := []struct {
				name      string
				id        string
				index     int
				direction int
			}{
				{"unknown playlist", "missing", 0, MoveDown},
				{"negative index", id, -1, MoveDown},
				{"index past end", id, 5, MoveUp},
				{"zero direction", id, 0, 0},
				{"large direction", id, 0, 2},
			}
			for _, c := range cases {
				playlists, err := repo.MoveSong(ctx, c.id, c.index, c.direction)
				if err != nil {
					t.Errorf("%s: unexpected error %v", c.name, err)
				}
				if len(playlists) != 1 {
					t.Errorf("%s: expected collection view to be returned", c.name)
				}
			}
			if !bytes.Equal(before, store.Raw()) {
				t.Error("ignored moves changed the stored collection")
			}
		})
	})

	t.Run("RemoveTrackFromPlaylist", func(t *testing.T) {
		t.Run("removes middle song", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill", "A", "B", "C")

			if _, err := repo.RemoveTrackFromPlaylist(ctx, id, 1); err != nil {
				t.Fatalf("failed to remove: %v", err)
			}
			if got := trackIDs(t, repo, id); !reflect.DeepEqual(got, []string{"A", "C"}) {
				t.Errorf("expected [A C], got %v", got)
			}
		})

		t.Run("removes only the indexed duplicate", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill", "A", "B", "A")

			if _, err := repo.RemoveTrackFromPlaylist(ctx, id, 2); err != nil {
				t.Fatalf("failed to remove: %v", err)
			}
			if got := trackIDs(t, repo, id); !reflect.DeepEqual(got, []string{"A", "B"}) {
				t.Errorf("expected [A B], got %v", got)
			}
		})

		t.Run("out of range and unknown ids are no-ops", func(t *testing.T) {
			repo, store := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill", "A")
			before := store.Raw()

			for _, idx := range []int{-1, 1, 99} {
				if _, err := repo.RemoveTrackFromPlaylist(ctx, id, idx); err != nil {
					t.Errorf("index %d: unexpected error %v", idx, err)
				}
			}
			if _, err := repo.RemoveTrackFromPlaylist(ctx, "missing", 0); err != nil {
				t.Errorf("unknown id: unexpected error %v", err)
			}
			if !bytes.Equal(before, store.Raw()) {
				t.Error("no-op removals changed the stored collection")
			}
		})
	})

	t.Run("RemovePlaylist", func(t *testing.T) {
		t.Run("removes by id keeping order", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			seedPlaylist(t, repo, "One")
			two := seedPlaylist(t, repo, "Two")
			seedPlaylist(t, repo, "Three")

			playlists, err := repo.RemovePlaylist(ctx, two)
			if err != nil {
				t.Fatalf("failed to remove: %v", err)
			}

			names, _ := repo.PlaylistNames(ctx)
			if !reflect.DeepEqual(names, []string{"One", "Three"}) {
				t.Errorf("expected [One Three], got %v", names)
			}
			if len(playlists) != 2 {
				t.Errorf("expected returned view of 2 playlists, got %d", len(playlists))
			}
		})

		t.Run("unknown id is a no-op", func(t *testing.T) {
			repo, store := newTestRepo(t)
			seedPlaylist(t, repo, "One")
			before := store.Raw()

			if _, err := repo.RemovePlaylist(ctx, "missing"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(before, store.Raw()) {
				t.Error("removing an unknown id changed the stored collection")
			}
		})

		t.Run("name can be reused", func(t *testing.T) {
			repo, _ := newTestRepo(t)
			id := seedPlaylist(t, repo, "Chill")
			if _, err := repo.RemovePlaylist(ctx, id); err != nil {
				t.Fatalf("failed to remove: %v", err)
			}
			if _, err := repo.CreatePlaylist(ctx, "chill"); err != nil {
				t.Errorf("expected name to be free after deletion: %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		repo, _ := newTestRepo(t)
		id := seedPlaylist(t, repo, "Chill", "a")

		p, err := repo.Get(ctx, id)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if p.Name != "Chill" {
			t.Errorf("expected Chill, got %s", p.Name)
		}

		if _, err := repo.Get(ctx, "missing"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("reads through the store on every call", func(t *testing.T) {
		repo, store := newTestRepo(t)
		seedPlaylist(t, repo, "Chill")

		store.SetRaw([]byte(`[{"id":"x","name":"Replaced","songs":[]}]`))

		names, err := repo.PlaylistNames(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(names, []string{"Replaced"}) {
			t.Errorf("expected repository to see external write, got %v", names)
		}
	})

	t.Run("works over SQLite", func(t *testing.T) {
		repo := NewPlaylistRepository(NewSQLiteStore(setupTestDB(t)), shared.NewLogger(&bytes.Buffer{}))
		id := seedPlaylist(t, repo, "Chill", "A", "B", "C")

		if _, err := repo.RemoveTrackFromPlaylist(ctx, id, 1); err != nil {
			t.Fatalf("failed to remove: %v", err)
		}
		if got := trackIDs(t, repo, id); !reflect.DeepEqual(got, []string{"A", "C"}) {
			t.Errorf("expected [A C], got %v", got)
		}
	})
}
