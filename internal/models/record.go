// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package models

import "strconv"

// Record is a single enriched recommendation. It is derived per request
// from a catalog item plus TMDB metadata and is never persisted.
//
// The pointer fields distinguish "metadata absent" (nil, serialized as
// JSON null) from a present value. A degraded record - produced when the
// metadata lookup fails in any way - carries the title only: PosterURL and
// DetailURL are nil and Rating is nil (rendered as "unknown" upstream).
type Record struct {
	// Title is the catalog display title of the recommended movie.
	Title string `json:"title"`

	// PosterURL is the full poster image URL, or nil when TMDB supplied
	// no usable poster path or the lookup failed.
	PosterURL *string `json:"poster_url"`

	// DetailURL is the canonical TMDB movie page, or nil on a degraded
	// record.
	DetailURL *string `json:"detail_url"`

	// Rating is the TMDB vote average, or nil when unknown.
	Rating *float64 `json:"rating"`

	// Degraded reports that enrichment failed and the record fell back
	// to catalog data only.
	Degraded bool `json:"degraded,omitempty"`
}

// RatingText returns the rating formatted for display, with "unknown"
// standing in for an absent value. TMDB vote averages carry one decimal
// place.
func (r *Record) RatingText() string {
	if r.Rating == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*r.Rating, 'f', 1, 64)
}
