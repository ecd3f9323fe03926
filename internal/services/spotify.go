// Spotify Web API search client.
//
// Response types follow https://developer.spotify.com/documentation/web-api/reference/search
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyBaseURL = "https://api.spotify.com/v1"
	// DefaultSearchLimit is the number of tracks requested per search.
	DefaultSearchLimit = 30
)

// Messages shown to the user for failed searches.
const (
	MsgNoToken      = "No Spotify access token found. Please authorize first."
	MsgUnauthorized = "Authorization failed. Please log in again to Spotify."
	MsgNetworkError = "Network or fetch error."
	MsgNoTracks     = "No tracks found."
)

// SpotifyArtist is the part of an artist object search results carry.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyTrack is a track object from search results.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	ExternalURLs externalURLs    `json:"external_urls"`
}

// Track converts the API object to the domain track.
func (t SpotifyTrack) Track() models.Track {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}
	return models.Track{ID: t.ID, Name: t.Name, Artists: artists, URL: t.ExternalURLs.Spotify}
}

// SpotifySearchResponse is the envelope of a type=track search.
type SpotifySearchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
		Total int            `json:"total"`
	} `json:"tracks"`
}

// SpotifyConfig configures a [SpotifyService].
type SpotifyConfig struct {
	AccessToken string
	// BaseURL overrides the API root; empty means the public API.
	BaseURL string
	// Limit is the page size; zero means [DefaultSearchLimit].
	Limit int
	// RateLimit is the allowed requests per second; zero or less disables pacing.
	RateLimit float64
	Logger    *log.Logger
}

// SpotifyService searches the Spotify catalogue by genre.
type SpotifyService struct {
	token      string
	baseURL    string
	limit      int
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     *log.Logger
}

// NewSpotifyService creates a search client. An empty token is accepted; every
// search then reports [StatusNoToken] without touching the network.
func NewSpotifyService(cfg SpotifyConfig) *SpotifyService {
	s := &SpotifyService{
		token:   cfg.AccessToken,
		baseURL: cfg.BaseURL,
		limit:   cfg.Limit,
		logger:  cfg.Logger,
	}

	if s.baseURL == "" {
		s.baseURL = spotifyBaseURL
	}
	if s.limit <= 0 {
		s.limit = DefaultSearchLimit
	}
	if s.logger == nil {
		s.logger = shared.NewLogger(nil)
	}

	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	} else {
		s.limiter = rate.NewLimiter(rate.Inf, 1)
	}

	if s.token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.token, TokenType: "Bearer"})
		s.httpClient = oauth2.NewClient(context.Background(), src)
	}
	return s
}

// HasToken reports whether a token is configured.
func (s *SpotifyService) HasToken() bool {
	return s.token != ""
}

// SearchURL builds the search request URL for genre.
func (s *SpotifyService) SearchURL(genre string) string {
	q := url.Values{}
	q.Set("q", "genre:"+genre)
	q.Set("type", "track")
	q.Set("limit", strconv.Itoa(s.limit))
	return s.baseURL + "/search?" + q.Encode()
}

// SearchGenre implements [Searcher].
func (s *SpotifyService) SearchGenre(ctx context.Context, genre string) SearchResult {
	if !s.HasToken() {
		return SearchResult{Tracks: []models.Track{}, Status: StatusNoToken, Message: MsgNoToken}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		s.logger.Warn("search cancelled while waiting for rate limiter", "genre", genre, "error", err)
		return networkError()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.SearchURL(genre), nil)
	if err != nil {
		s.logger.Error("failed to build search request", "genre", genre, "error", err)
		return networkError()
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("search request failed", "genre", genre, "error", err)
		return networkError()
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return SearchResult{Tracks: []models.Track{}, Status: StatusUnauthorized, Message: MsgUnauthorized}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		s.logger.Warn("search rejected", "genre", genre, "status", resp.StatusCode)
		return SearchResult{
			Tracks:  []models.Track{},
			Status:  StatusRequestFailed,
			Message: fmt.Sprintf("Search failed with HTTP status %d.", resp.StatusCode),
		}
	}

	var body SpotifySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		s.logger.Warn("failed to decode search response", "genre", genre, "error", err)
		return networkError()
	}

	tracks := make([]models.Track, len(body.Tracks.Items))
	for i, item := range body.Tracks.Items {
		tracks[i] = item.Track()
	}

	s.logger.Debug("search complete", "genre", genre, "tracks", len(tracks))
	return SearchResult{Tracks: tracks, Status: StatusOK}
}

func networkError() SearchResult {
	return SearchResult{Tracks: []models.Track{}, Status: StatusNetworkError, Message: MsgNetworkError}
}
