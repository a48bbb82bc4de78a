package attempts

import (
	"context"
	"sync"
	"time"

	"github.com/quizcraft/backend/internal/models"
)

// MemoryStore is a process-local Store for development and tests. Entries
// carry the same TTL as the Redis store, enforced lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	attempt   models.Attempt
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(_ context.Context, attempt *models.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[attempt.ID] = memoryEntry{
		attempt:   *attempt,
		expiresAt: time.Now().Add(AttemptTTL),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, attemptID string) (*models.Attempt, error) {
	s.mu.RLock()
	entry, ok := s.entries[attemptID]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	attempt := entry.attempt
	return &attempt, nil
}

func (s *MemoryStore) Delete(_ context.Context, attemptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, attemptID)
	return nil
}
