// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package catalog

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// SimilarityIndex is the immutable N x N matrix of pairwise similarity
// scores over catalog positions. Scores are an opaque ordering key: higher
// means more similar, and no assumption is made about their range or sign.
// The diagonal is not meaningful and is never surfaced as a recommendation.
type SimilarityIndex struct {
	rows [][]float64
}

// LoadSimilarity reads a similarity matrix artifact (a JSON array of N
// equal-length numeric arrays) and validates it against the catalog's
// dimensions. Any mismatch is an IntegrityError.
func LoadSimilarity(path string, cat *Catalog) (*SimilarityIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening similarity artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	var rows [][]float64
	if err := json.NewDecoder(f).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding similarity artifact %s: %w", path, err)
	}

	return NewSimilarityIndex(rows, cat)
}

// NewSimilarityIndex validates a decoded matrix against the catalog:
// the matrix must be square with one row and one column per catalog item.
func NewSimilarityIndex(rows [][]float64, cat *Catalog) (*SimilarityIndex, error) {
	n := cat.Len()
	if len(rows) != n {
		return nil, &IntegrityError{
			Reason: fmt.Sprintf("similarity matrix has %d rows for %d catalog items", len(rows), n),
		}
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, &IntegrityError{
				Reason: fmt.Sprintf("similarity row %d has %d columns, want %d", i, len(row), n),
			}
		}
	}

	return &SimilarityIndex{rows: rows}, nil
}

// Len returns the matrix dimension N.
func (s *SimilarityIndex) Len() int {
	return len(s.rows)
}

// Row returns the similarity scores between the item at pos and every
// catalog position, including the meaningless self cell. The returned
// slice is shared, read-only state; callers must not modify it.
func (s *SimilarityIndex) Row(pos int) ([]float64, bool) {
	if pos < 0 || pos >= len(s.rows) {
		return nil, false
	}
	return s.rows[pos], true
}
