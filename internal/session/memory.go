package session

import (
	"context"
	"sync"
	"time"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
)

type memoryEntry struct {
	profile models.Profile
	savedAt time.Time
}

// MemoryStore holds reports in process memory. A ttl of zero keeps them
// until the process exits; otherwise expired reports are swept in the
// background until Close.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	sweeper *sweeper
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return newMemoryStore(ttl, sweepInterval(ttl), time.Now)
}

func newMemoryStore(ttl, interval time.Duration, now func() time.Time) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
		sweeper: newSweeper(),
	}
	if ttl > 0 {
		s.sweeper.start(interval, func() { s.cleanupExpired() })
	}
	return s
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{profile: *p, savedAt: s.now()}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*models.Profile, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	if expired(entry.savedAt, s.ttl, s.now()) {
		s.mu.Lock()
		if current, ok := s.entries[sessionID]; ok && current.savedAt.Equal(entry.savedAt) {
			delete(s.entries, sessionID)
		}
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	p := entry.profile
	if p.Age != nil {
		age := *p.Age
		p.Age = &age
	}
	return &p, nil
}

// cleanupExpired drops every expired report and returns how many it removed.
func (s *MemoryStore) cleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if expired(entry.savedAt, s.ttl, now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) Close() error {
	s.sweeper.stop()
	return nil
}
