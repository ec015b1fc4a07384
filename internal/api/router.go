// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

// Package api provides the HTTP surface of the recommendation service
// using the Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TriyankSingh07/Movies-Recommendation/internal/config"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/middleware"
)

// NewRouter assembles the full route tree with the global middleware stack.
func NewRouter(cfg *config.Config, handler *Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.API.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health endpoints stay outside the rate limit so orchestrator probes
	// are never rejected.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", handler.HealthLive)
		r.Get("/ready", handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.API.RateLimitReqs, cfg.API.RateLimitWindow))
		r.Use(middleware.PrometheusMetrics)

		r.Get("/movies", handler.Movies)
		r.Get("/greeting", handler.Greeting)

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/", handler.StartRecommendation)
			r.Post("/{sessionID}/expand", handler.ExpandRecommendation)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
