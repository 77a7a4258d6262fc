// Package api exposes the progression engine and song library over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RyanBlaney/chord-scout/configs"
	"github.com/RyanBlaney/chord-scout/internal/library"
	"github.com/RyanBlaney/chord-scout/pkg/logging"
	"github.com/RyanBlaney/chord-scout/pkg/progression"
	"github.com/RyanBlaney/chord-scout/pkg/theory"
)

// Handler holds the services behind the HTTP endpoints.
type Handler struct {
	Store   *library.Store
	Search  configs.SearchConfig
	Related configs.RelatedConfig
	logger  logging.Logger
}

// NewHandler builds a handler around an open library store.
func NewHandler(store *library.Store, cfg *configs.Config, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Handler{
		Store:   store,
		Search:  cfg.Search,
		Related: cfg.Related,
		logger:  logger.WithFields(logging.Fields{"component": "api"}),
	}
}

// RegisterRoutes mounts all endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Post("/api/search", h.SearchProgressions)
	r.Post("/api/related", h.RelatedSongs)
	r.Post("/api/analyze", h.AnalyzeProgression)

	r.Get("/api/songs", h.ListSongs)
	r.Post("/api/songs", h.CreateSong)
	r.Get("/api/songs/{id}", h.GetSong)
	r.Delete("/api/songs/{id}", h.DeleteSong)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	count, err := h.Store.Count()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"songs":  count,
	})
}

// SearchRequest is the body of POST /api/search. Unset option fields fall
// back to the server's configured search defaults.
type SearchRequest struct {
	Chords             []string `json:"chords"`
	ExactMatch         *bool    `json:"exact_match,omitempty"`
	CaseSensitive      *bool    `json:"case_sensitive,omitempty"`
	AllowTransposition *bool    `json:"allow_transposition,omitempty"`
	MaxSubsliceLength  *int     `json:"max_subslice_length,omitempty"`
}

// SearchResponse carries scored matches plus summary statistics.
type SearchResponse struct {
	Results []progression.ScoredMatch `json:"results"`
	Stats   progression.ResultStats   `json:"stats"`
}

func (h *Handler) SearchProgressions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Chords) == 0 {
		h.writeErrorMessage(w, http.StatusBadRequest, "chords must not be empty")
		return
	}

	opts := h.searchOptions(req)

	corpus, err := h.Store.ListSongs()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	results, err := progression.SearchSymbolsInCorpus(req.Chords, corpus, opts)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	h.logger.Debug("progression search", logging.Fields{
		"chords":  len(req.Chords),
		"corpus":  len(corpus),
		"results": len(results),
	})

	h.writeJSON(w, http.StatusOK, SearchResponse{
		Results: results,
		Stats:   progression.SummarizeMatches(results),
	})
}

// RelatedRequest is the body of POST /api/related. The target is either a
// stored song referenced by ID or an inline song document.
type RelatedRequest struct {
	SongID        string                `json:"song_id,omitempty"`
	Song          *library.SongDocument `json:"song,omitempty"`
	MinSimilarity *float64              `json:"min_similarity,omitempty"`
	MaxResults    *int                  `json:"max_results,omitempty"`
}

// RelatedResponse carries ranked related songs plus summary statistics.
type RelatedResponse struct {
	Results []progression.RelatedSong `json:"results"`
	Stats   progression.ResultStats   `json:"stats"`
}

func (h *Handler) RelatedSongs(w http.ResponseWriter, r *http.Request) {
	var req RelatedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var target progression.Song
	switch {
	case req.SongID != "":
		song, err := h.Store.GetSong(req.SongID)
		if err != nil {
			h.writeError(w, http.StatusNotFound, err)
			return
		}
		target = song
	case req.Song != nil:
		target = req.Song.ToSong()
	default:
		h.writeErrorMessage(w, http.StatusBadRequest, "song_id or song is required")
		return
	}

	opts := progression.RelatedOptions{
		MinSimilarity:   h.Related.MinSimilarity,
		MaxResults:      h.Related.MaxResults,
		SameArtistBonus: h.Related.SameArtistBonus,
		SameGenreBonus:  h.Related.SameGenreBonus,
	}
	if req.MinSimilarity != nil {
		opts.MinSimilarity = *req.MinSimilarity
	}
	if req.MaxResults != nil {
		opts.MaxResults = *req.MaxResults
	}

	corpus, err := h.Store.ListSongs()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	results := progression.FindRelatedSongs(target, corpus, opts)

	h.writeJSON(w, http.StatusOK, RelatedResponse{
		Results: results,
		Stats:   progression.SummarizeRelated(results),
	})
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Chords []string `json:"chords"`
	Key    string   `json:"key,omitempty"`
}

// AnalyzeResponse reports the parsed progression, its detected (or given)
// key and the Nashville degrees relative to that key.
type AnalyzeResponse struct {
	Chords  []theory.Chord `json:"chords"`
	Key     string         `json:"key"`
	Degrees []string       `json:"degrees"`
}

func (h *Handler) AnalyzeProgression(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Chords) == 0 {
		h.writeErrorMessage(w, http.StatusBadRequest, "chords must not be empty")
		return
	}

	chords := make([]theory.Chord, 0, len(req.Chords))
	for _, symbol := range req.Chords {
		chord, err := theory.ParseChord(symbol)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
		chords = append(chords, chord)
	}

	var songKey theory.Note
	if req.Key != "" {
		parsed, err := theory.ParseNote(req.Key)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
		songKey = parsed
	} else {
		songKey = theory.DetectKey(chords)
	}

	h.writeJSON(w, http.StatusOK, AnalyzeResponse{
		Chords:  chords,
		Key:     songKey.String(),
		Degrees: theory.ProgressionToDegrees(chords, songKey),
	})
}

func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.Store.ListSongs()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	docs := make([]library.SongDocument, 0, len(songs))
	for _, song := range songs {
		docs = append(docs, library.DocumentFromSong(song))
	}
	h.writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) CreateSong(w http.ResponseWriter, r *http.Request) {
	var doc library.SongDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if doc.Title == "" {
		h.writeErrorMessage(w, http.StatusBadRequest, "title is required")
		return
	}

	id, err := h.Store.SaveSong(doc.ToSong())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.logger.Info("song saved", logging.Fields{"id": id, "title": doc.Title})
	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) GetSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	song, err := h.Store.GetSong(id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	h.writeJSON(w, http.StatusOK, library.DocumentFromSong(song))
}

func (h *Handler) DeleteSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.Store.GetSong(id); err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	if err := h.Store.DeleteSong(id); err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) searchOptions(req SearchRequest) progression.SearchOptions {
	opts := progression.SearchOptions{
		ExactMatch:         h.Search.ExactMatch,
		CaseSensitive:      h.Search.CaseSensitive,
		AllowTransposition: h.Search.AllowTransposition,
		MaxSubsliceLength:  h.Search.MaxSubsliceLength,
	}
	if req.ExactMatch != nil {
		opts.ExactMatch = *req.ExactMatch
	}
	if req.CaseSensitive != nil {
		opts.CaseSensitive = *req.CaseSensitive
	}
	if req.AllowTransposition != nil {
		opts.AllowTransposition = *req.AllowTransposition
	}
	if req.MaxSubsliceLength != nil {
		opts.MaxSubsliceLength = *req.MaxSubsliceLength
	}
	return opts
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(err, "failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.logger.Error(err, "request failed", logging.Fields{"status": status})
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
