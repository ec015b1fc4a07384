// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

// Package catalog loads the two precomputed artifacts the service consumes:
// the movie catalog and the pairwise similarity matrix. Both are read fully
// into memory at startup, validated against each other, and treated as
// immutable for the remainder of the process lifetime. Because no writer
// ever touches them after load, concurrent readers need no locking.
//
// Validation failures are fatal: a catalog/matrix that disagree on N, or a
// catalog with duplicate titles, would silently mis-rank every request, so
// the service refuses to start instead.
package catalog

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Item is a recommendable catalog entry with a stable position index.
// Position is the row/column offset into the similarity matrix; it is
// assigned once at load from the artifact's array order and never changes.
type Item struct {
	// Position is the row/column index into the similarity matrix.
	Position int `json:"position"`

	// Title is the display title. Titles are unique within a catalog.
	Title string `json:"title"`

	// MovieID is the TMDB identifier used for metadata enrichment.
	MovieID int `json:"movie_id"`
}

// IntegrityError reports a structural problem in the loaded artifacts.
// It is fatal at startup; the service must not serve requests from
// inconsistent data.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return "catalog integrity: " + e.Reason
}

// Catalog is the immutable position-indexed movie catalog.
type Catalog struct {
	items   []Item
	byTitle map[string]int
}

// Entry is the artifact representation of a single movie.
// Array order in the artifact defines positions.
type Entry struct {
	Title   string `json:"title"`
	MovieID int    `json:"movie_id"`
}

// Load reads and validates a catalog artifact. The artifact is a JSON array
// of {title, movie_id} objects; the array index of each entry becomes its
// position. Duplicate or empty titles are an IntegrityError.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding catalog artifact %s: %w", path, err)
	}

	return New(entries)
}

// New builds a Catalog from decoded artifact entries, assigning positions
// in order and validating the title uniqueness invariant.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, &IntegrityError{Reason: "catalog is empty"}
	}

	items := make([]Item, len(entries))
	byTitle := make(map[string]int, len(entries))

	for i, e := range entries {
		if e.Title == "" {
			return nil, &IntegrityError{Reason: fmt.Sprintf("entry at position %d has an empty title", i)}
		}
		if prev, dup := byTitle[e.Title]; dup {
			return nil, &IntegrityError{Reason: fmt.Sprintf("duplicate title %q at positions %d and %d", e.Title, prev, i)}
		}
		items[i] = Item{Position: i, Title: e.Title, MovieID: e.MovieID}
		byTitle[e.Title] = i
	}

	return &Catalog{items: items, byTitle: byTitle}, nil
}

// Len returns the number of catalog items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// ByTitle looks up an item by its display title.
func (c *Catalog) ByTitle(title string) (Item, bool) {
	pos, ok := c.byTitle[title]
	if !ok {
		return Item{}, false
	}
	return c.items[pos], true
}

// ByPosition returns the item at the given position.
func (c *Catalog) ByPosition(pos int) (Item, bool) {
	if pos < 0 || pos >= len(c.items) {
		return Item{}, false
	}
	return c.items[pos], true
}

// Titles returns all display titles in position order. The returned slice
// is a copy; callers may not reach the catalog's internal state through it.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.items))
	for i := range c.items {
		titles[i] = c.items[i].Title
	}
	return titles
}
