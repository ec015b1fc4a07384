// Movies-Recommendation - Similarity-Based Movie Recommendation Service
// Copyright 2026 Triyank Singh (TriyankSingh07)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TriyankSingh07/Movies-Recommendation

package recommend

import (
	"sync"
	"time"

	"github.com/TriyankSingh07/Movies-Recommendation/internal/metrics"
)

// storeEntry tracks a session and when it was last touched.
type storeEntry struct {
	session    *Session
	lastAccess time.Time
}

// Store keeps live sessions in memory and evicts the ones that sit idle
// longer than the TTL. Every Get refreshes the idle clock.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*storeEntry
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a Store sweeping expired sessions every cleanupInterval.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*storeEntry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.cleanupLoop(cleanupInterval)
	return s
}

// Put registers a session under its ID.
func (s *Store) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = &storeEntry{session: sess, lastAccess: time.Now()}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}

// Get returns the live session with the given ID and refreshes its idle
// timer. The second return is false for unknown or expired sessions.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(entry.lastAccess) > s.ttl {
		delete(s.sessions, id)
		metrics.SessionsExpired.Inc()
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
		return nil, false
	}
	entry.lastAccess = time.Now()
	return entry.session, true
}

// Len returns the number of sessions currently held, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background sweeper. Safe to call more than once.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) evictExpired() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.sessions {
		if now.Sub(entry.lastAccess) > s.ttl {
			delete(s.sessions, id)
			metrics.SessionsExpired.Inc()
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}
