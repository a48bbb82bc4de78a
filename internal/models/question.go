package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// ── Core Structs ───────────────────────────────────────

// Question is a bank entry. Immutable once authored; the engine only reads it.
type Question struct {
	ID                 int64      `json:"id"`
	ExamID             string     `json:"exam_id"`
	SubjectID          string     `json:"subject_id"`
	TopicID            *string    `json:"topic_id,omitempty"`
	Text               string     `json:"text"`
	Options            []string   `json:"options"`
	CorrectOptionIndex int        `json:"correct_option_index"`
	Explanation        string     `json:"explanation"`
	Difficulty         Difficulty `json:"difficulty"`
	TimesServed        int        `json:"times_served"`
	TimesCorrect       int        `json:"times_correct"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Topic returns the grouping key for per-topic stats: the topic when the
// question has one, otherwise the subject.
func (q Question) Topic() string {
	if q.TopicID != nil && *q.TopicID != "" {
		return *q.TopicID
	}
	return q.SubjectID
}

// ── Quiz Serving (answer data stripped) ───────────────

type QuizQuestion struct {
	ID         int64      `json:"id"`
	Text       string     `json:"text"`
	Options    []string   `json:"options"`
	Difficulty Difficulty `json:"difficulty"`
}

func (q Question) ToQuizQuestion() QuizQuestion {
	return QuizQuestion{
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options,
		Difficulty: q.Difficulty,
	}
}

// ── Admin Types ───────────────────────────────────────

type BankStats struct {
	TotalQuestions int                `json:"total_questions"`
	PerDifficulty  map[Difficulty]int `json:"per_difficulty"`
	PerExam        map[string]int     `json:"per_exam"`
}

type RecalibrationCandidate struct {
	QuestionID          int64      `json:"question_id"`
	LabeledDifficulty   Difficulty `json:"labeled_difficulty"`
	ActualAccuracy      float64    `json:"actual_accuracy"`
	SuggestedDifficulty Difficulty `json:"suggested_difficulty"`
	TimesServed         int        `json:"times_served"`
	TimesCorrect        int        `json:"times_correct"`
}

type RecalibrationReport struct {
	TotalEvaluated int                      `json:"total_evaluated"`
	Recalibrated   int                      `json:"recalibrated"`
	Details        []RecalibrationCandidate `json:"details"`
}
