package models

import "time"

type AttemptMode string

const (
	ModeCalibration AttemptMode = "calibration"
	ModeAdaptive    AttemptMode = "adaptive"
)

// Answer is a learner's response to one question of an attempt. A nil
// SelectedOption means the question was left unanswered.
type Answer struct {
	SelectedOption   *int    `json:"selected_option"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
}

// Attempt is an in-flight quiz. Answers are mutable until the attempt is
// submitted, exactly once; after that the record is read-only.
type Attempt struct {
	ID        string      `json:"id"`
	UserID    int64       `json:"user_id"`
	ExamID    string      `json:"exam_id"`
	SubjectID string      `json:"subject_id"`
	Mode      AttemptMode `json:"mode"`
	Questions []Question  `json:"questions"`
	Answers   []Answer    `json:"answers"`
	Submitted bool        `json:"submitted"`
	StartedAt time.Time   `json:"started_at"`
}

// ── Derived Values ────────────────────────────────────────

type DifficultyBucket struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// PerformanceSummary is computed from a submitted attempt. Never mutated
// after creation.
type PerformanceSummary struct {
	CorrectCount    int                             `json:"correct_count"`
	TotalCount      int                             `json:"total_count"`
	PerDifficulty   map[Difficulty]DifficultyBucket `json:"per_difficulty"`
	TimePerQuestion []float64                       `json:"time_per_question"`
}

// AccuracyPercent returns correct/total as a 0-100 percentage.
// An empty attempt counts as 0.
func (p *PerformanceSummary) AccuracyPercent() float64 {
	if p.TotalCount == 0 {
		return 0
	}
	return float64(p.CorrectCount) / float64(p.TotalCount) * 100
}

// TopicStrength ranks a learner's accuracy within one topic of an attempt.
type TopicStrength struct {
	Topic   string `json:"topic"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

func (t TopicStrength) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total)
}

// ── API Request/Response Types ────────────────────────────

type StartQuizRequest struct {
	ExamID    string  `json:"exam_id"`
	SubjectID string  `json:"subject_id"`
	TopicID   *string `json:"topic_id,omitempty"`
	Count     int     `json:"count"`
}

type StartQuizResponse struct {
	AttemptID string         `json:"attempt_id"`
	Mode      AttemptMode    `json:"mode"`
	Questions []QuizQuestion `json:"questions"`
	Total     int            `json:"total"`
}

type RecordAnswerRequest struct {
	QuestionIndex    int     `json:"question_index"`
	SelectedOption   *int    `json:"selected_option"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
}

type SubmitQuizResponse struct {
	Summary        *PerformanceSummary `json:"summary"`
	TopicStrengths []TopicStrength     `json:"topic_strengths"`
	Rating         int                 `json:"rating"`
	RatingDelta    int                 `json:"rating_delta"`
	Category       Category            `json:"category"`
	RatingUpdated  bool                `json:"rating_updated"`
}
