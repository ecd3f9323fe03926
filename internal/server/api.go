package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlist/internal/handoff"
	"github.com/desertthunder/moodlist/internal/models"
	"github.com/desertthunder/moodlist/internal/services"
	"github.com/desertthunder/moodlist/internal/shared"
)

// PlaylistStore is the playlist repository surface the API exposes.
type PlaylistStore interface {
	Playlists(ctx context.Context) ([]models.Playlist, error)
	CreatePlaylist(ctx context.Context, name string) ([]models.Playlist, error)
	MoveSong(ctx context.Context, playlistID string, index, direction int) ([]models.Playlist, error)
	RemoveTrackFromPlaylist(ctx context.Context, playlistID string, index int) ([]models.Playlist, error)
	RemovePlaylist(ctx context.Context, playlistID string) ([]models.Playlist, error)
}

// API serves the playlist, search and selection endpoints as JSON.
type API struct {
	playlists PlaylistStore
	handoff   *handoff.Protocol
	searcher  services.Searcher
	logger    *log.Logger
}

// NewAPI creates the JSON API.
func NewAPI(playlists PlaylistStore, protocol *handoff.Protocol, searcher services.Searcher, logger *log.Logger) *API {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &API{playlists: playlists, handoff: protocol, searcher: searcher, logger: logger}
}

// Register mounts every endpoint on r.
func (a *API) Register(r Router) {
	r.HandleFunc(http.MethodGet, "/health", a.health)

	r.HandleFunc(http.MethodGet, "/playlists", a.listPlaylists)
	r.HandleFunc(http.MethodPost, "/playlists", a.createPlaylist)
	r.HandleFunc(http.MethodDelete, "/playlists/{id}", a.deletePlaylist)
	r.HandleFunc(http.MethodPost, "/playlists/{id}/songs/{index}/move", a.moveSong)
	r.HandleFunc(http.MethodDelete, "/playlists/{id}/songs/{index}", a.removeSong)

	r.HandleFunc(http.MethodGet, "/moods", a.listMoods)
	r.HandleFunc(http.MethodGet, "/search", a.search)

	r.HandleFunc(http.MethodGet, "/selection", a.reviewSelection)
	r.HandleFunc(http.MethodPut, "/selection", a.stageSelection)
	r.HandleFunc(http.MethodDelete, "/selection", a.cancelSelection)
	r.HandleFunc(http.MethodPost, "/selection/commit", a.commitSelection)
}

// NewRouter builds a router with logging and panic recovery around the API.
func NewRouter(api *API, logger *log.Logger) *BasicRouter {
	r := NewBasicRouter()
	r.Use(RecoverMiddleware(logger), LoggingMiddleware(logger))
	api.Register(r)
	return r
}

type errorBody struct {
	Error string `json:"error"`
	// Redirect names the endpoint that resolves the error, if any.
	Redirect string `json:"redirect,omitempty"`
}

type playlistsBody struct {
	Playlists []models.Playlist `json:"playlists"`
}

type createPlaylistRequest struct {
	Name string `json:"name"`
}

type moveSongRequest struct {
	Direction string `json:"direction"`
}

type stageRequest struct {
	Track models.Track `json:"track"`
	Note  string       `json:"note"`
}

type commitRequest struct {
	Playlist string `json:"playlist"`
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) listPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := a.playlists.Playlists(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlistsBody{Playlists: playlists})
}

func (a *API) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		a.writeError(w, fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput))
		return
	}

	playlists, err := a.playlists.CreatePlaylist(r.Context(), name)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlistsBody{Playlists: playlists})
}

func (a *API) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	playlists, err := a.playlists.RemovePlaylist(r.Context(), r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlistsBody{Playlists: playlists})
}

func (a *API) moveSong(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	var req moveSongRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	direction, err := ParseDirection(req.Direction)
	if err != nil {
		a.writeError(w, err)
		return
	}

	playlists, err := a.playlists.MoveSong(r.Context(), r.PathValue("id"), index, direction)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlistsBody{Playlists: playlists})
}

func (a *API) removeSong(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	playlists, err := a.playlists.RemoveTrackFromPlaylist(r.Context(), r.PathValue("id"), index)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlistsBody{Playlists: playlists})
}

func (a *API) listMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"moods": services.Moods()})
}

// search accepts either ?mood=<label> or ?genre=<genre>.
func (a *API) search(w http.ResponseWriter, r *http.Request) {
	genre := strings.TrimSpace(r.URL.Query().Get("genre"))
	if label := r.URL.Query().Get("mood"); label != "" {
		mood, ok := services.MoodByLabel(label)
		if !ok {
			a.writeError(w, fmt.Errorf("%w: unknown mood %q", shared.ErrInvalidArgument, label))
			return
		}
		genre = mood.Genre
	}
	if genre == "" {
		a.writeError(w, fmt.Errorf("%w: mood or genre is required", shared.ErrMissingArgument))
		return
	}

	result := a.searcher.SearchGenre(r.Context(), genre)
	if result.OK() && len(result.Tracks) == 0 {
		result.Message = services.MsgNoTracks
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) reviewSelection(w http.ResponseWriter, r *http.Request) {
	review, err := a.handoff.Review(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (a *API) stageSelection(w http.ResponseWriter, r *http.Request) {
	var req stageRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}
	if req.Track.ID == "" {
		a.writeError(w, fmt.Errorf("%w: track.id is required", shared.ErrInvalidInput))
		return
	}

	record, err := a.handoff.Stage(r.Context(), req.Track, strings.TrimSpace(req.Note))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (a *API) cancelSelection(w http.ResponseWriter, r *http.Request) {
	if err := a.handoff.Cancel(r.Context()); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) commitSelection(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if err := decodeBody(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	playlists, err := a.handoff.Commit(r.Context(), req.Playlist)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlistsBody{Playlists: playlists})
}

// ParseDirection maps "up"/"down" (or -1/1) to a move direction.
func ParseDirection(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "-1":
		return -1, nil
	case "down", "1", "+1":
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: direction must be up or down, got %q", shared.ErrInvalidArgument, s)
	}
}

func pathIndex(r *http.Request) (int, error) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: index must be an integer, got %q", shared.ErrInvalidArgument, raw)
	}
	return index, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrDuplicateName), errors.Is(err, shared.ErrNoSelection):
		return http.StatusConflict
	case errors.Is(err, shared.ErrPlaylistNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrMissingArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed", "error", err)
	}
	body := errorBody{Error: err.Error()}
	if errors.Is(err, shared.ErrNoSelection) {
		body.Redirect = "/search"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
