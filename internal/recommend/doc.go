// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

// Package recommend is the core of the service: given a query movie it
// ranks every other catalog item by precomputed similarity and assembles
// an expandable, enriched recommendation session.
//
// The package is built from three parts:
//
//   - Ranker: a pure function over the catalog and similarity index.
//     Ranking is fully deterministic - descending score with ties broken
//     by ascending catalog position - so repeated calls always agree and
//     any ranking is a prefix of every longer ranking for the same query.
//
//   - Service: orchestrates the Ranker and an Enricher to build Sessions.
//     Enrichment fans out across a bounded worker pool; order is restored
//     by writing each result into its slot of a preallocated slice.
//
//   - Store: an in-memory, TTL-swept map of live sessions keyed by id,
//     letting the stateless HTTP layer resume a session for "show more".
//
// Sessions only grow. Expansion re-ranks to the larger count, enriches
// only the newly exposed candidates, and appends - previously returned
// records are never re-fetched or reordered, even if their enrichment was
// degraded.
package recommend
