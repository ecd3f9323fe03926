// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/services"
)

// MockSearcher is a test double for [services.Searcher]. It returns Result for
// every genre, or ResultFor when that is set, and records the genres it saw.
type MockSearcher struct {
	Result    services.SearchResult
	ResultFor func(genre string) services.SearchResult

	mu     sync.Mutex
	genres []string
}

func (m *MockSearcher) SearchGenre(ctx context.Context, genre string) services.SearchResult {
	m.mu.Lock()
	m.genres = append(m.genres, genre)
	m.mu.Unlock()

	if m.ResultFor != nil {
		return m.ResultFor(genre)
	}
	return m.Result
}

// Genres returns the genres searched so far.
func (m *MockSearcher) Genres() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.genres...)
}

// NewMockSearcher returns a searcher that answers every query with tracks.
func NewMockSearcher(tracks ...models.Track) *MockSearcher {
	if tracks == nil {
		tracks = []models.Track{}
	}
	return &MockSearcher{Result: services.SearchResult{Tracks: tracks, Status: services.StatusOK}}
}

// SampleTracks returns n distinct tracks with ids t1..tn.
func SampleTracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		id := "t" + string(rune('1'+i))
		tracks[i] = models.Track{
			ID:      id,
			Name:    "Song " + id,
			Artists: []string{"Artist " + id},
			URL:     "https://open.spotify.com/track/" + id,
		}
	}
	return tracks
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
