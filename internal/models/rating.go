package models

import "time"

type Category string

const (
	CategoryLow    Category = "low"
	CategoryMedium Category = "medium"
	CategoryBest   Category = "best"
)

// UserRating is the stored skill estimate for a (user, exam, subject) scope.
// The category is never stored — it is always recomputed from the rating.
type UserRating struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ExamID      string    `json:"exam_id"`
	SubjectID   string    `json:"subject_id"`
	Rating      int       `json:"rating"`
	LastUpdated time.Time `json:"last_updated"`
}

// ── API Request/Response Types ────────────────────────────

type RatingEntry struct {
	ExamID    string   `json:"exam_id"`
	SubjectID string   `json:"subject_id"`
	Rating    int      `json:"rating"`
	Category  Category `json:"category"`
}

type RatingListResponse struct {
	Ratings []RatingEntry `json:"ratings"`
}

// RatingBreakdown is a display-only projection for the dashboard. It is
// computed from recent attempt history and never written back to the
// rating store; the stored rating that drives question selection is a
// separate value.
type RatingBreakdown struct {
	Base             int `json:"base"`
	RecentPerformance int `json:"recent_performance"`
	AccuracyBonus    int `json:"accuracy_bonus"`
	StreakBonus      int `json:"streak_bonus"`
	ConsistencyBonus int `json:"consistency_bonus"`
	Penalties        int `json:"penalties"`
	Total            int `json:"total"`
}
