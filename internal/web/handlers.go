package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/moodbridge/go-mood-bridge/internal/emotion"
	"github.com/moodbridge/go-mood-bridge/internal/moods"
	"github.com/moodbridge/go-mood-bridge/internal/recommend"
)

// Handlers contains the HTTP handlers for the playlist API.
type Handlers struct {
	model       *emotion.Model
	recommender *recommend.Recommender
	moodGroups  []moods.Group
}

// NewHandlers creates a new Handlers instance. A nil recommender puts the
// playlist and mood endpoints into degraded mode.
func NewHandlers(model *emotion.Model, recommender *recommend.Recommender, moodGroups []moods.Group) *Handlers {
	return &Handlers{
		model:       model,
		recommender: recommender,
		moodGroups:  moodGroups,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type emotionResponse struct {
	Label   string  `json:"label"`
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
}

type pathResponse struct {
	Start  string   `json:"start"`
	Target string   `json:"target"`
	Path   []string `json:"path"`
}

type trackResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	SpotifyID string `json:"spotify_id,omitempty"`
}

type entryResponse struct {
	Track    trackResponse `json:"track"`
	Target   []float64     `json:"target"`
	Distance float64       `json:"distance"`
}

type playlistResponse struct {
	ID      string          `json:"id"`
	Start   string          `json:"start"`
	Target  string          `json:"target"`
	Path    []string        `json:"path"`
	Entries []entryResponse `json:"entries"`
	Partial bool            `json:"partial"`
}

type moodGroupResponse struct {
	Name    string  `json:"name"`
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
	Size    int     `json:"size"`
}

type createPlaylistRequest struct {
	Start  string `json:"start"`
	Target string `json:"target"`
	Length int    `json:"length"`
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Emotions handles GET /api/emotions: the known labels with their affect
// coordinates, in model declaration order.
func (h *Handlers) Emotions(w http.ResponseWriter, r *http.Request) {
	labels := h.model.Labels()
	out := make([]emotionResponse, 0, len(labels))
	for _, label := range labels {
		p, err := h.model.Affect(label)
		if err != nil {
			continue
		}
		out = append(out, emotionResponse{Label: label, Valence: p.Valence, Arousal: p.Arousal})
	}
	respondJSON(w, http.StatusOK, out)
}

// Path handles GET /api/path?start=&target=: the emotion transition path
// without generating a playlist.
func (h *Handlers) Path(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	target := r.URL.Query().Get("target")
	if start == "" || target == "" {
		respondError(w, http.StatusBadRequest, "start and target query parameters are required")
		return
	}

	path, err := h.model.FindPath(start, target)
	if err != nil {
		h.respondPathError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, pathResponse{
		Start:  emotion.Normalize(start),
		Target: emotion.Normalize(target),
		Path:   path,
	})
}

// Moods handles GET /api/moods: the catalog's mood group summary.
func (h *Handlers) Moods(w http.ResponseWriter, r *http.Request) {
	if h.recommender == nil {
		respondError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	out := make([]moodGroupResponse, 0, len(h.moodGroups))
	for _, g := range h.moodGroups {
		out = append(out, moodGroupResponse{
			Name:    g.Name,
			Valence: g.Valence,
			Arousal: g.Arousal,
			Size:    len(g.Tracks),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// CreatePlaylist handles POST /api/playlists: plan the emotion path and
// select tracks for it. An empty entry list with a length-1 path means no
// transition was needed.
func (h *Handlers) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	if h.recommender == nil {
		respondError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.Target) == "" {
		respondError(w, http.StatusBadRequest, "start and target are required")
		return
	}
	if req.Length < 1 {
		respondError(w, http.StatusBadRequest, "length must be at least 1")
		return
	}

	playlist, err := h.recommender.BuildPlaylist(req.Start, req.Target, req.Length)
	if err != nil {
		h.respondPathError(w, err)
		return
	}

	entries := make([]entryResponse, 0, len(playlist.Entries))
	for _, e := range playlist.Entries {
		entries = append(entries, entryResponse{
			Track: trackResponse{
				ID:        e.Track.ID,
				Title:     e.Track.Title,
				Artist:    e.Track.Artist,
				SpotifyID: e.Track.SpotifyID,
			},
			Target:   e.Target,
			Distance: e.Distance,
		})
	}

	respondJSON(w, http.StatusOK, playlistResponse{
		ID:      playlist.ID.String(),
		Start:   playlist.Start,
		Target:  playlist.Target,
		Path:    playlist.Path,
		Entries: entries,
		Partial: playlist.Partial,
	})
}

// respondPathError maps engine errors onto HTTP statuses: an unknown label
// is the caller's input to fix, a missing path is a graph configuration
// defect on our side.
func (h *Handlers) respondPathError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, emotion.ErrUnknownEmotion):
		respondError(w, http.StatusUnprocessableEntity, "unknown emotion label")
	case errors.Is(err, emotion.ErrNoPath):
		log.Printf("transition graph defect: %v", err)
		respondError(w, http.StatusInternalServerError, "no transition path found")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
