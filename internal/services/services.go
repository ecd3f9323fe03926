package services

import (
	"context"

	"github.com/desertthunder/moodlist/internal/models"
)

// SearchStatus classifies the outcome of a remote search.
type SearchStatus int

const (
	StatusOK SearchStatus = iota
	StatusNoToken
	StatusUnauthorized
	StatusRequestFailed
	StatusNetworkError
)

func (s SearchStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoToken:
		return "no_token"
	case StatusUnauthorized:
		return "unauthorized"
	case StatusRequestFailed:
		return "request_failed"
	case StatusNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s SearchStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SearchResult is what a genre search yields. Failures carry an empty track
// list and a message fit for display; they are never returned as errors.
type SearchResult struct {
	Tracks  []models.Track `json:"tracks"`
	Status  SearchStatus   `json:"status"`
	Message string         `json:"message,omitempty"`
}

// OK reports whether the search reached the service and decoded.
func (r SearchResult) OK() bool {
	return r.Status == StatusOK
}

// Searcher finds tracks for a genre.
type Searcher interface {
	SearchGenre(ctx context.Context, genre string) SearchResult
}
