// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/TriyankSingh07/Movies-Recommendation/internal/config"
)

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cbc := NewCircuitBreakerClient(NewClient(&config.TMDBConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: time.Second,
	}))

	// Ten straight failures clear the minimum request count and push
	// the failure rate past the trip threshold.
	for i := 0; i < 10; i++ {
		_, err := cbc.GetMovieDetails(context.Background(), 603)
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("request %d: got %v, want StatusError", i, err)
		}
	}
	if got := hits.Load(); got != 10 {
		t.Fatalf("upstream hits = %d, want 10", got)
	}

	// With the circuit open the breaker rejects calls without touching
	// the upstream, and the enricher buckets them as breaker_open.
	_, err := cbc.GetMovieDetails(context.Background(), 603)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("open-state call: got %v, want gobreaker.ErrOpenState", err)
	}
	if got := hits.Load(); got != 10 {
		t.Errorf("open-state call reached the upstream: hits = %d, want 10", got)
	}
	if !breakerRejected(err) {
		t.Error("breakerRejected = false for an open-state rejection")
	}
	if got := failureReason(err); got != "breaker_open" {
		t.Errorf("failureReason = %q, want breaker_open", got)
	}
}

func TestCircuitBreakerStaysClosedBelowMinimumRequests(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cbc := NewCircuitBreakerClient(NewClient(&config.TMDBConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: time.Second,
	}))

	// Nine failures stay under the ten-request minimum, so the next
	// call still goes out on the wire.
	for i := 0; i < 9; i++ {
		if _, err := cbc.GetMovieDetails(context.Background(), 603); errors.Is(err, gobreaker.ErrOpenState) {
			t.Fatalf("request %d: breaker opened early", i)
		}
	}
	if _, err := cbc.GetMovieDetails(context.Background(), 603); errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatal("tenth request rejected before it could be attempted")
	}
	if got := hits.Load(); got != 10 {
		t.Errorf("upstream hits = %d, want 10", got)
	}
}
