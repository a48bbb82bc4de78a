package attempts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quizcraft/backend/internal/models"
)

var (
	ErrNotFound         = errors.New("attempt not found")
	ErrAlreadySubmitted = errors.New("attempt already submitted")
)

// AttemptTTL bounds how long an unsubmitted attempt survives. An abandoned
// attempt simply expires; it never reaches the analyzer or the rating store.
const AttemptTTL = 3 * time.Hour

// Store keeps active attempts between quiz start and submission.
type Store interface {
	Save(ctx context.Context, attempt *models.Attempt) error
	Get(ctx context.Context, attemptID string) (*models.Attempt, error)
	Delete(ctx context.Context, attemptID string) error
}

// RecordAnswer mutates one answer slot on an unsubmitted attempt.
func RecordAnswer(attempt *models.Attempt, index int, answer models.Answer) error {
	if attempt.Submitted {
		return ErrAlreadySubmitted
	}
	if index < 0 || index >= len(attempt.Answers) {
		return fmt.Errorf("answer index %d out of range for %d questions", index, len(attempt.Questions))
	}
	attempt.Answers[index] = answer
	return nil
}

// MarkSubmitted flips the attempt to its immutable state, exactly once.
func MarkSubmitted(attempt *models.Attempt) error {
	if attempt.Submitted {
		return ErrAlreadySubmitted
	}
	attempt.Submitted = true
	return nil
}
