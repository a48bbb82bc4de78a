package attempts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/quizcraft/backend/internal/models"
)

func newAttempt(n int) *models.Attempt {
	return &models.Attempt{
		ID:        uuid.NewString(),
		UserID:    1,
		ExamID:    "upsc",
		SubjectID: "history",
		Mode:      models.ModeAdaptive,
		Questions: make([]models.Question, n),
		Answers:   make([]models.Answer, n),
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	attempt := newAttempt(3)

	if err := store.Save(ctx, attempt); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != attempt.ID || len(got.Questions) != 3 {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if err := store.Delete(ctx, attempt.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, attempt.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
}

// Saved copies must not alias the caller's attempt: mutating the original
// after Save must not leak into the store.
func TestMemoryStoreCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	attempt := newAttempt(1)

	if err := store.Save(ctx, attempt); err != nil {
		t.Fatalf("save: %v", err)
	}
	attempt.Submitted = true

	got, err := store.Get(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Submitted {
		t.Error("stored attempt aliases the caller's struct")
	}
}

func TestRecordAnswer(t *testing.T) {
	attempt := newAttempt(2)
	selected := 1

	if err := RecordAnswer(attempt, 0, models.Answer{SelectedOption: &selected, TimeTakenSeconds: 20}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if attempt.Answers[0].SelectedOption == nil || *attempt.Answers[0].SelectedOption != 1 {
		t.Errorf("answer not recorded: %+v", attempt.Answers[0])
	}

	if err := RecordAnswer(attempt, 5, models.Answer{}); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if err := RecordAnswer(attempt, -1, models.Answer{}); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestSubmitExactlyOnce(t *testing.T) {
	attempt := newAttempt(2)

	if err := MarkSubmitted(attempt); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := MarkSubmitted(attempt); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("second submit = %v, want ErrAlreadySubmitted", err)
	}
	if err := RecordAnswer(attempt, 0, models.Answer{}); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("answer after submit = %v, want ErrAlreadySubmitted", err)
	}
}
