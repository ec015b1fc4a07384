// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TriyankSingh07/Movies-Recommendation/internal/catalog"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/config"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/logging"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/recommend"
)

// Handler bundles the dependencies the HTTP endpoints need.
type Handler struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	service *recommend.Service
	store   *recommend.Store

	// now is swappable in tests for the greeting endpoint.
	now func() time.Time
}

// NewHandler creates a Handler with all dependencies wired.
func NewHandler(cfg *config.Config, cat *catalog.Catalog, svc *recommend.Service, store *recommend.Store) *Handler {
	return &Handler{
		cfg:     cfg,
		catalog: cat,
		service: svc,
		store:   store,
		now:     time.Now,
	}
}

// StartRecommendationRequest is the body of POST /api/v1/recommendations.
// Count 0 means "use the configured default"; an explicit negative count is
// rejected.
type StartRecommendationRequest struct {
	Title string `json:"title" validate:"required"`
	Count int    `json:"count" validate:"omitempty,min=1,max=100"`
}

// StartRecommendation handles POST /api/v1/recommendations.
func (h *Handler) StartRecommendation(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req StartRecommendationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Count < 0 {
		respondError(w, http.StatusBadRequest, "INVALID_COUNT", "count must be a positive integer", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	count := req.Count
	if count == 0 {
		count = h.cfg.API.DefaultCount
	}
	if count > h.cfg.API.MaxCount {
		count = h.cfg.API.MaxCount
	}

	sess, err := h.service.Start(r.Context(), req.Title, count)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrNotFound):
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie title not found in catalog", nil)
		case errors.Is(err, recommend.ErrInvalidCount):
			respondError(w, http.StatusBadRequest, "INVALID_COUNT", "count must be a positive integer", nil)
		default:
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build recommendations", err)
		}
		return
	}

	h.store.Put(sess)

	logging.Info().
		Str("session_id", sess.ID).
		Str("title", sanitizeLogValue(req.Title)).
		Int("count", count).
		Msg("Recommendation session created")

	respondSuccess(w, http.StatusCreated, sess.Snapshot(), started)
}

// ExpandRecommendationRequest is the body of the expand endpoint. Count 0
// means "use the configured default".
type ExpandRecommendationRequest struct {
	Count int `json:"count" validate:"omitempty,min=1,max=100"`
}

// ExpandRecommendation handles POST /api/v1/recommendations/{sessionID}/expand.
func (h *Handler) ExpandRecommendation(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	sessionID := chi.URLParam(r, "sessionID")
	sess, ok := h.store.Get(sessionID)
	if !ok {
		respondError(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Unknown or expired session", nil)
		return
	}

	var req ExpandRecommendationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Count < 0 {
		respondError(w, http.StatusBadRequest, "INVALID_COUNT", "count must be a positive integer", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	count := req.Count
	if count == 0 {
		count = h.cfg.API.DefaultCount
	}
	if count > h.cfg.API.MaxCount {
		count = h.cfg.API.MaxCount
	}

	if err := h.service.Expand(r.Context(), sess, count); err != nil {
		switch {
		case errors.Is(err, recommend.ErrInvalidCount):
			respondError(w, http.StatusBadRequest, "INVALID_COUNT", "count must be a positive integer", nil)
		case errors.Is(err, recommend.ErrNotFound):
			// The catalog is immutable, so a session whose query title no
			// longer resolves indicates corrupted state.
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Session references unknown title", err)
		default:
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to expand recommendations", err)
		}
		return
	}

	respondSuccess(w, http.StatusOK, sess.Snapshot(), started)
}

// MovieList is the payload of GET /api/v1/movies.
type MovieList struct {
	Titles []string `json:"titles"`
	Total  int      `json:"total"`
	Offset int      `json:"offset"`
}

// Movies handles GET /api/v1/movies. Supports offset/limit paging over the
// ordered title list; the full catalog is small enough that the default
// returns everything.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	titles := h.catalog.Titles()
	total := len(titles)

	offset := getIntParam(r, "offset", 0)
	limit := getIntParam(r, "limit", total)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if limit < 0 || end > total {
		end = total
	}

	respondSuccess(w, http.StatusOK, &MovieList{
		Titles: titles[offset:end],
		Total:  total,
		Offset: offset,
	}, started)
}

// GreetingPayload is the payload of GET /api/v1/greeting.
type GreetingPayload struct {
	Greeting string `json:"greeting"`
	Message  string `json:"message"`
}

// Greeting handles GET /api/v1/greeting?name=X with a time-of-day greeting.
// Morning before noon, afternoon before 18:00, evening otherwise.
func (h *Handler) Greeting(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var greeting string
	switch hour := h.now().Hour(); {
	case hour < 12:
		greeting = "Good morning"
	case hour < 18:
		greeting = "Good afternoon"
	default:
		greeting = "Good evening"
	}

	message := greeting
	if name := r.URL.Query().Get("name"); name != "" {
		message = greeting + ", " + name + " :)"
	}

	respondSuccess(w, http.StatusOK, &GreetingPayload{
		Greeting: greeting,
		Message:  message,
	}, started)
}

// HealthLive handles GET /api/v1/health/live. The process is alive if it
// can answer at all.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready. Ready means the catalog is
// loaded and non-empty; enrichment is best-effort and does not gate
// readiness.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	started := time.Now()

	if h.catalog == nil || h.catalog.Len() == 0 {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Catalog not loaded", nil)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status":        "ready",
		"catalog_items": h.catalog.Len(),
	}, started)
}
