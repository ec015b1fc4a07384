// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package recommend

import "errors"

// Sentinel errors surfaced at the package boundary. Enrichment failures
// are deliberately absent: they degrade individual records and never
// propagate as errors.
var (
	// ErrNotFound indicates the query title is not in the catalog.
	ErrNotFound = errors.New("movie not found in catalog")

	// ErrInvalidCount indicates a non-positive recommendation count.
	// Rank treats count <= 0 as an error rather than an empty result.
	ErrInvalidCount = errors.New("recommendation count must be positive")
)
