package ratings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quizcraft/backend/internal/assessment"
	"github.com/quizcraft/backend/internal/models"
)

// ErrUnavailable marks a rating store failure the caller can recover from:
// review still works, the rating just was not updated this time.
var ErrUnavailable = errors.New("rating store unavailable")

// GeneralSubject is the key used when a rating is scoped to an exam only.
const GeneralSubject = "general"

// Store holds the durable rating per (user, exam, subject). Get must return
// the default seed for missing keys; deletion is not part of the contract —
// ratings are only ever overwritten.
type Store interface {
	Get(ctx context.Context, userID int64, examID, subjectID string) (int, error)
	Exists(ctx context.Context, userID int64, examID, subjectID string) (bool, error)
	Set(ctx context.Context, userID int64, examID, subjectID string, rating int) error
}

func subjectKey(subjectID string) string {
	if subjectID == "" {
		return GeneralSubject
	}
	return subjectID
}

// ── Postgres Store ──────────────────────────────────────

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, userID int64, examID, subjectID string) (int, error) {
	var rating int
	err := s.db.QueryRowContext(ctx,
		`SELECT rating FROM user_ratings
		 WHERE user_id = $1 AND exam_id = $2 AND subject_id = $3`,
		userID, examID, subjectKey(subjectID),
	).Scan(&rating)
	if err == sql.ErrNoRows {
		return assessment.DefaultRating, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get rating: %w", err)
	}
	return rating, nil
}

func (s *SQLStore) Exists(ctx context.Context, userID int64, examID, subjectID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_ratings
		 WHERE user_id = $1 AND exam_id = $2 AND subject_id = $3)`,
		userID, examID, subjectKey(subjectID),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("rating exists: %w", err)
	}
	return exists, nil
}

func (s *SQLStore) Set(ctx context.Context, userID int64, examID, subjectID string, rating int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_ratings (user_id, exam_id, subject_id, rating)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, exam_id, subject_id)
		 DO UPDATE SET rating = EXCLUDED.rating, last_updated = NOW()`,
		userID, examID, subjectKey(subjectID), rating,
	)
	if err != nil {
		return fmt.Errorf("set rating: %w", err)
	}
	return nil
}

// ListForUser returns every stored rating for the user, for the dashboard.
func (s *SQLStore) ListForUser(ctx context.Context, userID int64) ([]models.UserRating, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, exam_id, subject_id, rating, last_updated
		 FROM user_ratings WHERE user_id = $1 ORDER BY exam_id, subject_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var out []models.UserRating
	for rows.Next() {
		var r models.UserRating
		if err := rows.Scan(&r.ID, &r.UserID, &r.ExamID, &r.SubjectID, &r.Rating, &r.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
