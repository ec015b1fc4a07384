// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/TriyankSingh07/Movies-Recommendation/internal/catalog"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/config"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/logging"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/models"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/recommend"
)

// staticEnricher produces records from catalog data alone; API tests do not
// exercise TMDB.
type staticEnricher struct{}

func (staticEnricher) Enrich(_ context.Context, item catalog.Item) models.Record {
	rating := 7.0
	return models.Record{Title: item.Title, Rating: &rating}
}

type testEnv struct {
	handler *Handler
	server  http.Handler
	store   *recommend.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat, err := catalog.New([]catalog.Entry{
		{Title: "Apex", MovieID: 101},
		{Title: "Beacon", MovieID: 102},
		{Title: "Cinder", MovieID: 103},
		{Title: "Drift", MovieID: 104},
		{Title: "Ember", MovieID: 105},
		{Title: "Fjord", MovieID: 106},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	sim, err := catalog.NewSimilarityIndex([][]float64{
		{1.0, 0.9, 0.9, 0.1, 0.5, 0.5},
		{0.9, 1.0, 0.3, 0.2, 0.1, 0.0},
		{0.9, 0.3, 1.0, 0.4, 0.2, 0.1},
		{0.1, 0.2, 0.4, 1.0, 0.6, 0.3},
		{0.5, 0.1, 0.2, 0.6, 1.0, 0.7},
		{0.5, 0.0, 0.1, 0.3, 0.7, 1.0},
	}, cat)
	if err != nil {
		t.Fatalf("catalog.NewSimilarityIndex: %v", err)
	}

	cfg := &config.Config{
		API: config.APIConfig{
			DefaultCount:    2,
			MaxCount:        100,
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	}

	svc := recommend.NewService(
		recommend.NewRanker(cat, sim),
		staticEnricher{},
		2,
		logging.NewTestLogger(io.Discard),
	)
	store := recommend.NewStore(time.Minute, time.Minute)
	t.Cleanup(store.Close)

	handler := NewHandler(cfg, cat, svc, store)
	return &testEnv{
		handler: handler,
		server:  NewRouter(cfg, handler),
		store:   store,
	}
}

func (env *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

// decodeResponse unpacks the envelope and re-decodes data into out.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) *models.APIResponse {
	t.Helper()

	var envelope models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v (body %s)", err, rec.Body.String())
	}
	if out != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		if err != nil {
			t.Fatalf("re-marshal data: %v", err)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("unmarshal data: %v", err)
		}
	}
	return &envelope
}

func TestStartRecommendation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/recommendations", `{"title": "Apex", "count": 2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var sess recommend.Session
	envelope := decodeResponse(t, rec, &sess)
	if envelope.Status != "success" {
		t.Errorf("envelope status = %q, want success", envelope.Status)
	}
	if sess.ID == "" {
		t.Error("session_id is empty")
	}
	if sess.QueryTitle != "Apex" {
		t.Errorf("query_title = %q, want Apex", sess.QueryTitle)
	}
	if len(sess.Records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(sess.Records))
	}
	if sess.Records[0].Title != "Beacon" || sess.Records[1].Title != "Cinder" {
		t.Errorf("records = %v, want [Beacon Cinder]", sess.Records)
	}
	if !sess.CanExpand {
		t.Error("can_expand = false with candidates remaining")
	}

	if _, ok := env.store.Get(sess.ID); !ok {
		t.Error("session not registered in store")
	}
}

func TestStartRecommendationDefaultCount(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/recommendations", `{"title": "Apex"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var sess recommend.Session
	decodeResponse(t, rec, &sess)
	if len(sess.Records) != 2 {
		t.Errorf("len(records) = %d, want configured default 2", len(sess.Records))
	}
}

func TestStartRecommendationErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown title", `{"title": "No Such Movie"}`, http.StatusNotFound, "NOT_FOUND"},
		{"missing title", `{"count": 5}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"negative count", `{"title": "Apex", "count": -1}`, http.StatusBadRequest, "INVALID_COUNT"},
		{"count too large", `{"title": "Apex", "count": 5000}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed body", `{"title": `, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/recommendations", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			envelope := decodeResponse(t, rec, nil)
			if envelope.Error == nil || envelope.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", envelope.Error, tt.wantCode)
			}
		})
	}
}

func TestExpandRecommendation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/recommendations", `{"title": "Apex", "count": 2}`)
	var sess recommend.Session
	decodeResponse(t, rec, &sess)

	rec = env.do(t, http.MethodPost, "/api/v1/recommendations/"+sess.ID+"/expand", `{"count": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var grown recommend.Session
	decodeResponse(t, rec, &grown)
	if len(grown.Records) != 4 {
		t.Fatalf("len(records) = %d, want 4", len(grown.Records))
	}
	want := []string{"Beacon", "Cinder", "Ember", "Fjord"}
	for i, title := range want {
		if grown.Records[i].Title != title {
			t.Errorf("records[%d] = %q, want %q", i, grown.Records[i].Title, title)
		}
	}
}

func TestExpandClampsToMaxCount(t *testing.T) {
	env := newTestEnv(t)
	env.handler.cfg.API.MaxCount = 3

	rec := env.do(t, http.MethodPost, "/api/v1/recommendations", `{"title": "Apex", "count": 1}`)
	var sess recommend.Session
	decodeResponse(t, rec, &sess)
	if len(sess.Records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(sess.Records))
	}

	// An expand count over the configured maximum is clamped, same as
	// on session start.
	rec = env.do(t, http.MethodPost, "/api/v1/recommendations/"+sess.ID+"/expand", `{"count": 100}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var grown recommend.Session
	decodeResponse(t, rec, &grown)
	if len(grown.Records) != 4 {
		t.Errorf("len(records) = %d, want 1 existing + 3 clamped", len(grown.Records))
	}
}

func TestExpandExhaustedSessionIsStable(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/recommendations", `{"title": "Apex", "count": 100}`)
	var sess recommend.Session
	decodeResponse(t, rec, &sess)
	if len(sess.Records) != 5 {
		t.Fatalf("len(records) = %d, want all 5 candidates", len(sess.Records))
	}
	if sess.CanExpand {
		t.Error("can_expand = true after surfacing every candidate")
	}

	rec = env.do(t, http.MethodPost, "/api/v1/recommendations/"+sess.ID+"/expand", `{"count": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var grown recommend.Session
	decodeResponse(t, rec, &grown)
	if len(grown.Records) != 5 || grown.CanExpand {
		t.Errorf("exhausted session changed: %d records, can_expand=%v", len(grown.Records), grown.CanExpand)
	}
}

func TestExpandUnknownSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/recommendations/not-a-session/expand", `{"count": 2}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	envelope := decodeResponse(t, rec, nil)
	if envelope.Error == nil || envelope.Error.Code != "SESSION_NOT_FOUND" {
		t.Errorf("error = %+v, want SESSION_NOT_FOUND", envelope.Error)
	}
}

func TestMovies(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/movies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var list MovieList
	decodeResponse(t, rec, &list)
	if list.Total != 6 || len(list.Titles) != 6 {
		t.Errorf("total = %d, titles = %d, want 6 each", list.Total, len(list.Titles))
	}
	if list.Titles[0] != "Apex" || list.Titles[5] != "Fjord" {
		t.Errorf("titles out of catalog order: %v", list.Titles)
	}
}

func TestMoviesPaging(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/movies?offset=2&limit=2", "")
	var list MovieList
	decodeResponse(t, rec, &list)
	if len(list.Titles) != 2 || list.Titles[0] != "Cinder" || list.Titles[1] != "Drift" {
		t.Errorf("page = %v, want [Cinder Drift]", list.Titles)
	}
	if list.Offset != 2 || list.Total != 6 {
		t.Errorf("offset = %d total = %d, want 2 and 6", list.Offset, list.Total)
	}

	// Offset past the end yields an empty page, not an error.
	rec = env.do(t, http.MethodGet, "/api/v1/movies?offset=50", "")
	decodeResponse(t, rec, &list)
	if len(list.Titles) != 0 {
		t.Errorf("past-end page = %v, want empty", list.Titles)
	}
}

func TestGreeting(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		hour int
		want string
	}{
		{8, "Good morning"},
		{12, "Good afternoon"},
		{17, "Good afternoon"},
		{18, "Good evening"},
		{23, "Good evening"},
	}

	for _, tt := range tests {
		env.handler.now = func() time.Time {
			return time.Date(2026, 8, 29, tt.hour, 0, 0, 0, time.UTC)
		}

		rec := env.do(t, http.MethodGet, "/api/v1/greeting?name=Sam", "")
		var payload GreetingPayload
		decodeResponse(t, rec, &payload)
		if payload.Greeting != tt.want {
			t.Errorf("hour %d: greeting = %q, want %q", tt.hour, payload.Greeting, tt.want)
		}
		if payload.Message != tt.want+", Sam :)" {
			t.Errorf("hour %d: message = %q", tt.hour, payload.Message)
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, http.MethodGet, "/api/v1/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/v1/health/ready", ""); rec.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", rec.Code)
	}
}

func TestRequestIDHeaderPresent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/movies", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}
}
