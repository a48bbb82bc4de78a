package ratings

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Tiered wraps a remote Store with a process-local cache. The remote is
// authoritative: reads go through it and refresh the cache, and the cache is
// only consulted when the remote errors. A failed remote write does NOT
// update the cache — the caller reports "rating not updated" and the next
// successful remote read wins.
type Tiered struct {
	remote Store

	mu    sync.RWMutex
	local map[string]int
}

func NewTiered(remote Store) *Tiered {
	return &Tiered{
		remote: remote,
		local:  make(map[string]int),
	}
}

func cacheKey(userID int64, examID, subjectID string) string {
	return fmt.Sprintf("%d:%s:%s", userID, examID, subjectKey(subjectID))
}

func (t *Tiered) Get(ctx context.Context, userID int64, examID, subjectID string) (int, error) {
	rating, err := t.remote.Get(ctx, userID, examID, subjectID)
	if err == nil {
		t.cache(userID, examID, subjectID, rating)
		return rating, nil
	}

	t.mu.RLock()
	cached, ok := t.local[cacheKey(userID, examID, subjectID)]
	t.mu.RUnlock()
	if ok {
		log.Printf("WARN: rating store read failed, serving cached value: %v", err)
		return cached, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (t *Tiered) Exists(ctx context.Context, userID int64, examID, subjectID string) (bool, error) {
	exists, err := t.remote.Exists(ctx, userID, examID, subjectID)
	if err == nil {
		return exists, nil
	}

	t.mu.RLock()
	_, cached := t.local[cacheKey(userID, examID, subjectID)]
	t.mu.RUnlock()
	if cached {
		// A cached value proves the key was created at some point.
		return true, nil
	}
	return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (t *Tiered) Set(ctx context.Context, userID int64, examID, subjectID string, rating int) error {
	if err := t.remote.Set(ctx, userID, examID, subjectID, rating); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	t.cache(userID, examID, subjectID, rating)
	return nil
}

func (t *Tiered) cache(userID int64, examID, subjectID string, rating int) {
	t.mu.Lock()
	t.local[cacheKey(userID, examID, subjectID)] = rating
	t.mu.Unlock()
}
