// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

// Package middleware provides HTTP middleware shared across the API:
// Prometheus request instrumentation and per-request ID propagation.
// Cross-cutting concerns handled by third-party middleware (CORS, rate
// limiting, panic recovery) are wired in the router from the go-chi
// ecosystem instead.
package middleware
