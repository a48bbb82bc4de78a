package ratings

import (
	"context"
	"errors"
	"testing"

	"github.com/quizcraft/backend/internal/assessment"
)

// flakyStore is an in-memory Store whose remote calls can be switched off.
type flakyStore struct {
	values map[string]int
	down   bool
}

var errDown = errors.New("connection refused")

func newFlakyStore() *flakyStore {
	return &flakyStore{values: make(map[string]int)}
}

func (f *flakyStore) Get(_ context.Context, userID int64, examID, subjectID string) (int, error) {
	if f.down {
		return 0, errDown
	}
	if v, ok := f.values[cacheKey(userID, examID, subjectID)]; ok {
		return v, nil
	}
	return assessment.DefaultRating, nil
}

func (f *flakyStore) Exists(_ context.Context, userID int64, examID, subjectID string) (bool, error) {
	if f.down {
		return false, errDown
	}
	_, ok := f.values[cacheKey(userID, examID, subjectID)]
	return ok, nil
}

func (f *flakyStore) Set(_ context.Context, userID int64, examID, subjectID string, rating int) error {
	if f.down {
		return errDown
	}
	f.values[cacheKey(userID, examID, subjectID)] = rating
	return nil
}

func TestTieredReadAfterWrite(t *testing.T) {
	remote := newFlakyStore()
	store := NewTiered(remote)
	ctx := context.Background()

	if err := store.Set(ctx, 1, "upsc", "history", 300); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, 1, "upsc", "history")
	if err != nil || got != 300 {
		t.Errorf("get after set = %d, %v; want 300", got, err)
	}
}

func TestTieredMissingKeyReturnsDefault(t *testing.T) {
	store := NewTiered(newFlakyStore())
	got, err := store.Get(context.Background(), 9, "upsc", "")
	if err != nil || got != assessment.DefaultRating {
		t.Errorf("get missing = %d, %v; want default %d", got, err, assessment.DefaultRating)
	}
}

func TestTieredServesCacheWhenRemoteDown(t *testing.T) {
	remote := newFlakyStore()
	store := NewTiered(remote)
	ctx := context.Background()

	if err := store.Set(ctx, 1, "upsc", "history", 340); err != nil {
		t.Fatalf("set: %v", err)
	}

	remote.down = true
	got, err := store.Get(ctx, 1, "upsc", "history")
	if err != nil || got != 340 {
		t.Errorf("cached get during outage = %d, %v; want 340", got, err)
	}

	exists, err := store.Exists(ctx, 1, "upsc", "history")
	if err != nil || !exists {
		t.Errorf("cached exists during outage = %v, %v; want true", exists, err)
	}
}

func TestTieredColdCacheOutageIsUnavailable(t *testing.T) {
	remote := newFlakyStore()
	remote.down = true
	store := NewTiered(remote)

	_, err := store.Get(context.Background(), 1, "upsc", "history")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("cold-cache outage error = %v, want ErrUnavailable", err)
	}
}

// A failed write must surface as recoverable and must not poison the cache:
// the remote value wins once it is reachable again.
func TestTieredFailedWriteDoesNotPoisonCache(t *testing.T) {
	remote := newFlakyStore()
	store := NewTiered(remote)
	ctx := context.Background()

	if err := store.Set(ctx, 1, "upsc", "history", 300); err != nil {
		t.Fatalf("set: %v", err)
	}

	remote.down = true
	if err := store.Set(ctx, 1, "upsc", "history", 340); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("write during outage = %v, want ErrUnavailable", err)
	}

	remote.down = false
	got, err := store.Get(ctx, 1, "upsc", "history")
	if err != nil || got != 300 {
		t.Errorf("get after reconnect = %d, %v; want the remote's 300", got, err)
	}
}
