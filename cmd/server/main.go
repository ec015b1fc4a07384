// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

// Package main is the entry point for the Movies-Recommendation server.
//
// The service answers "people who liked X also liked ..." queries over a
// fixed movie catalog using a precomputed pairwise similarity matrix. Both
// artifacts are produced offline and loaded read-only at startup; the
// server itself does no training or scoring beyond ranking rows of the
// matrix. Recommendations are decorated with TMDB poster art and ratings
// on a best-effort basis.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config file (Koanf v2)
//  2. Catalog: Load and cross-validate the catalog and similarity artifacts
//  3. TMDB Client: Metadata enrichment, optionally behind a circuit breaker
//  4. Session Store: In-memory recommendation sessions with TTL sweeping
//  5. HTTP Server: REST API (Chi) with Prometheus metrics at /metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables
//   - Config file (CONFIG_PATH or config.yaml)
//   - Built-in defaults
//
// Key environment variables:
//   - CATALOG_PATH: catalog artifact (JSON array of {title, movie_id})
//   - SIMILARITY_PATH: similarity matrix artifact (JSON N x N array)
//   - TMDB_API_KEY: API key for metadata enrichment
//   - HTTP_PORT: listen port (default 8501)
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops the session store janitor
//
// # Example Usage
//
//	export CATALOG_PATH=/data/movies.json
//	export SIMILARITY_PATH=/data/similarity.json
//	export TMDB_API_KEY=your-tmdb-api-key
//	./movies-recommendation
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TriyankSingh07/Movies-Recommendation/internal/api"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/catalog"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/config"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/logging"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/metrics"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/recommend"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/tmdb"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("catalog_path", cfg.Catalog.Path).
		Str("similarity_path", cfg.Catalog.SimilarityPath).
		Bool("tmdb_circuit_breaker", cfg.TMDB.CircuitBreaker).
		Msg("Configuration loaded")

	// Load the immutable artifacts. Any integrity problem is fatal: the
	// service must not rank against inconsistent data.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalog")
	}
	sim, err := catalog.LoadSimilarity(cfg.Catalog.SimilarityPath, cat)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.SimilarityPath).Msg("Failed to load similarity matrix")
	}
	metrics.CatalogItems.Set(float64(cat.Len()))
	logging.Info().Int("items", cat.Len()).Msg("Catalog loaded")

	// TMDB enrichment, optionally behind a circuit breaker.
	var fetcher tmdb.DetailsFetcher = tmdb.NewClient(&cfg.TMDB)
	if cfg.TMDB.CircuitBreaker {
		fetcher = tmdb.NewCircuitBreakerClient(tmdb.NewClient(&cfg.TMDB))
	}
	if cfg.TMDB.APIKey == "" {
		logging.Warn().Msg("TMDB_API_KEY not set, all recommendations will be served degraded")
	}
	enricher := tmdb.NewEnricher(fetcher, cfg.TMDB.ImageBaseURL, cfg.TMDB.DetailBaseURL, cfg.TMDB.Timeout, logging.Logger())

	service := recommend.NewService(
		recommend.NewRanker(cat, sim),
		enricher,
		cfg.Enrich.Concurrency,
		logging.Logger(),
	)

	store := recommend.NewStore(cfg.Session.TTL, cfg.Session.CleanupInterval)
	defer store.Close()

	handler := api.NewHandler(cfg, cat, service, store)
	router := api.NewRouter(cfg, handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}
