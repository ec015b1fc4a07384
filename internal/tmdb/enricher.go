// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package tmdb

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/TriyankSingh07/Movies-Recommendation/internal/catalog"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/metrics"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/models"
)

// Enricher turns catalog items into presentable records using TMDB
// metadata. It never returns an error: any failure, including timeouts
// and an open circuit, yields a degraded record carrying the title only.
type Enricher struct {
	fetcher       DetailsFetcher
	imageBaseURL  string
	detailBaseURL string
	timeout       time.Duration
	logger        zerolog.Logger
}

// NewEnricher wires an Enricher. timeout bounds each individual lookup in
// addition to whatever deadline the request context carries.
func NewEnricher(fetcher DetailsFetcher, imageBaseURL, detailBaseURL string, timeout time.Duration, logger zerolog.Logger) *Enricher {
	return &Enricher{
		fetcher:       fetcher,
		imageBaseURL:  imageBaseURL,
		detailBaseURL: detailBaseURL,
		timeout:       timeout,
		logger:        logger,
	}
}

// Enrich resolves a catalog item into a record. On any lookup failure it
// logs, counts the failure by reason, and returns the degraded fallback.
func (e *Enricher) Enrich(ctx context.Context, item catalog.Item) models.Record {
	start := time.Now()

	lookupCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	details, err := e.fetcher.GetMovieDetails(lookupCtx, item.MovieID)

	metrics.EnrichmentDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		reason := failureReason(err)
		metrics.EnrichmentRequests.WithLabelValues("degraded").Inc()
		metrics.EnrichmentFailures.WithLabelValues(reason).Inc()
		e.logger.Warn().
			Err(err).
			Str("title", item.Title).
			Int("movie_id", item.MovieID).
			Str("reason", reason).
			Msg("Enrichment failed, serving degraded record")
		return models.Record{Title: item.Title, Degraded: true}
	}

	metrics.EnrichmentRequests.WithLabelValues("success").Inc()

	rec := models.Record{Title: item.Title}

	if details.PosterPath != "" {
		poster := e.imageBaseURL + "/" + trimLeadingSlash(details.PosterPath)
		rec.PosterURL = &poster
	}

	// The detail URL depends only on the catalog's movie ID, not on
	// whatever the response body happens to echo back.
	detail := e.detailBaseURL + "/" + strconv.Itoa(item.MovieID)
	rec.DetailURL = &detail

	rec.Rating = details.VoteAverage

	return rec
}

// failureReason buckets an enrichment error for the failure counter.
func failureReason(err error) string {
	switch {
	case breakerRejected(err):
		return "breaker_open"
	case isStatusError(err):
		return "status"
	case isDecodeError(err):
		return "decode"
	default:
		return "transport"
	}
}

func isStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

func isDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// trimLeadingSlash strips one leading slash. TMDB poster paths arrive as
// "/abc.jpg" and the image base URL carries no trailing slash.
func trimLeadingSlash(s string) string {
	if len(s) > 0 && s[0] == '/' {
		return s[1:]
	}
	return s
}
