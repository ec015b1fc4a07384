// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package recommend

import (
	"sort"
	"time"

	"github.com/TriyankSingh07/Movies-Recommendation/internal/catalog"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/metrics"
)

// Ranker ranks catalog items by similarity to a query item. It reads from
// the immutable catalog and similarity index only; Rank is a pure function
// of its inputs and is safe for concurrent use without locking.
type Ranker struct {
	cat *catalog.Catalog
	sim *catalog.SimilarityIndex
}

// candidate pairs a catalog position with its similarity to the query.
type candidate struct {
	position int
	score    float64
}

// NewRanker creates a Ranker over a validated catalog and similarity index.
// The two are assumed to be dimension-aligned; catalog.LoadSimilarity
// enforces that at startup.
func NewRanker(cat *catalog.Catalog, sim *catalog.SimilarityIndex) *Ranker {
	return &Ranker{cat: cat, sim: sim}
}

// Rank returns the min(count, N-1) items most similar to the movie with
// the given title, excluding the movie itself, ordered by descending
// similarity score. Equal scores are broken by ascending catalog position,
// which makes the ranking a stable total order: rank(title, k) is always
// the k-item prefix of rank(title, k+m).
//
// Returns ErrNotFound for an unknown title and ErrInvalidCount for
// count <= 0.
func (r *Ranker) Rank(title string, count int) ([]catalog.Item, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	query, ok := r.cat.ByTitle(title)
	if !ok {
		return nil, ErrNotFound
	}

	start := time.Now()

	row, ok := r.sim.Row(query.Position)
	if !ok {
		// Cannot happen with a validated index; keep the invariant loud.
		return nil, ErrNotFound
	}

	candidates := make([]candidate, 0, len(row)-1)
	for pos, score := range row {
		if pos == query.Position {
			continue
		}
		candidates = append(candidates, candidate{position: pos, score: score})
	}

	// Descending score, ties by ascending position. The explicit
	// tie-break keeps output reproducible regardless of sort stability.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].position < candidates[j].position
	})

	if count < len(candidates) {
		candidates = candidates[:count]
	}

	items := make([]catalog.Item, len(candidates))
	for i, c := range candidates {
		item, _ := r.cat.ByPosition(c.position)
		items[i] = item
	}

	metrics.RankDuration.Observe(time.Since(start).Seconds())

	return items, nil
}

// CatalogSize returns N, the number of catalog items. The maximum number
// of candidates for any query is N-1.
func (r *Ranker) CatalogSize() int {
	return r.cat.Len()
}
