// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

// Package tmdb talks to The Movie Database API to decorate recommendations
// with poster images and ratings. Lookups here are strictly best-effort:
// the Enricher absorbs every failure mode, including an open circuit
// breaker, and falls back to a degraded record so ranked results are never
// withheld because metadata was unavailable.
package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/TriyankSingh07/Movies-Recommendation/internal/config"
)

// MovieDetails is the subset of the TMDB movie response the service uses.
// VoteAverage is a pointer so an absent field is distinguishable from a
// genuine 0.0 average.
type MovieDetails struct {
	ID          int      `json:"id"`
	PosterPath  string   `json:"poster_path"`
	VoteAverage *float64 `json:"vote_average"`
}

// DetailsFetcher retrieves movie details by TMDB ID. The circuit breaker
// wrapper and the plain client both satisfy it.
type DetailsFetcher interface {
	GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error)
}

// Client is a thin TMDB API client. One instance is shared by all
// enrichment workers; *http.Client is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a TMDB client from configuration. The HTTP timeout is
// the per-lookup bound; callers add no further deadline.
func NewClient(cfg *config.TMDBConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// GetMovieDetails fetches /movie/{id} from TMDB.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, movieID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("movie details request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: readBodyForError(resp.Body)}
	}

	var details MovieDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &details, nil
}

// StatusError reports a non-200 TMDB response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("movie details request failed with status %d: %s", e.Code, e.Body)
}

// DecodeError reports an unparseable TMDB response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "failed to decode movie details response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// readBodyForError reads up to 512 bytes of a response body for error
// messages without risking unbounded memory on a broken upstream.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return "<unreadable body>"
	}
	return string(body)
}
