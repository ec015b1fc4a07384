// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package recommend

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/TriyankSingh07/Movies-Recommendation/internal/catalog"
	"github.com/TriyankSingh07/Movies-Recommendation/internal/models"
)

// Enricher resolves a catalog item into a presentable record. An Enricher
// must never fail: if upstream metadata cannot be fetched it returns a
// degraded record carrying the title alone.
type Enricher interface {
	Enrich(ctx context.Context, item catalog.Item) models.Record
}

// Session is a grow-only recommendation result set for a single query.
// Records only ever gains entries; expansion never reorders or replaces
// what a client has already seen.
type Session struct {
	// mu serializes expansion and snapshotting. The store hands the
	// same session to every request carrying its ID, so concurrent
	// expands must not interleave.
	mu sync.Mutex

	// ID is the opaque handle clients use to expand the session.
	ID string `json:"session_id"`

	// QueryTitle is the catalog title the session was started from.
	QueryTitle string `json:"query_title"`

	// Records holds the enriched recommendations in rank order.
	Records []models.Record `json:"records"`

	// CanExpand reports whether the session can still grow. It turns
	// false once all N-1 candidates have been surfaced.
	CanExpand bool `json:"can_expand"`
}

// Snapshot returns a detached copy safe to read and serialize while
// other requests keep expanding the original.
func (s *Session) Snapshot() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]models.Record, len(s.Records))
	copy(records, s.Records)
	return &Session{
		ID:         s.ID,
		QueryTitle: s.QueryTitle,
		Records:    records,
		CanExpand:  s.CanExpand,
	}
}

// Service builds and expands recommendation sessions. Ranking is
// synchronous; enrichment fans out across a bounded pool of workers so a
// slow metadata upstream delays a request by at most one batch.
type Service struct {
	ranker      *Ranker
	enricher    Enricher
	concurrency int
	logger      zerolog.Logger
}

// NewService wires a Service. concurrency bounds the number of in-flight
// enrichment calls per batch; values below 1 are coerced to 1.
func NewService(ranker *Ranker, enricher Enricher, concurrency int, logger zerolog.Logger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		ranker:      ranker,
		enricher:    enricher,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Start ranks the top count candidates for title, enriches them, and
// returns a new session. Returns ErrNotFound or ErrInvalidCount from the
// underlying rank.
func (s *Service) Start(ctx context.Context, title string, count int) (*Session, error) {
	items, err := s.ranker.Rank(title, count)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:         uuid.NewString(),
		QueryTitle: title,
		Records:    s.enrichBatch(ctx, items),
		CanExpand:  len(items) < s.maxCandidates(),
	}

	s.logger.Debug().
		Str("session_id", sess.ID).
		Str("query_title", title).
		Int("records", len(sess.Records)).
		Bool("can_expand", sess.CanExpand).
		Msg("Recommendation session started")

	return sess, nil
}

// Expand grows sess by up to additional records. Only the newly surfaced
// candidates are enriched; existing records are never touched. Expanding
// a session that has already surfaced every candidate is a no-op.
// Safe for concurrent calls on the same session. Returns
// ErrInvalidCount for additional <= 0.
func (s *Service) Expand(ctx context.Context, sess *Session, additional int) error {
	if additional <= 0 {
		return ErrInvalidCount
	}

	// Holding the lock across rank and enrichment keeps Records a
	// prefix of the full ranking when two requests expand the same
	// session at once.
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.CanExpand {
		return nil
	}

	want := len(sess.Records) + additional
	items, err := s.ranker.Rank(sess.QueryTitle, want)
	if err != nil {
		return err
	}

	// The prefix property guarantees items[:len(sess.Records)] matches
	// what the session already holds, so only the tail is new.
	fresh := items[len(sess.Records):]
	if len(fresh) > 0 {
		sess.Records = append(sess.Records, s.enrichBatch(ctx, fresh)...)
	}
	sess.CanExpand = len(sess.Records) < s.maxCandidates()

	s.logger.Debug().
		Str("session_id", sess.ID).
		Int("added", len(fresh)).
		Int("records", len(sess.Records)).
		Bool("can_expand", sess.CanExpand).
		Msg("Recommendation session expanded")

	return nil
}

// enrichBatch enriches items with at most s.concurrency calls in flight,
// preserving rank order by writing each result into its own slot.
func (s *Service) enrichBatch(ctx context.Context, items []catalog.Item) []models.Record {
	records := make([]models.Record, len(items))
	if len(items) == 0 {
		return records
	}

	workers := s.concurrency
	if workers > len(items) {
		workers = len(items)
	}

	var wg sync.WaitGroup
	indexes := make(chan int)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				records[i] = s.enricher.Enrich(ctx, items[i])
			}
		}()
	}

	for i := range items {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return records
}

func (s *Service) maxCandidates() int {
	return s.ranker.CatalogSize() - 1
}
