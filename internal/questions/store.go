package questions

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/quizcraft/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Question Bank Access ────────────────────────────────

const questionCols = `id, exam_id, subject_id, topic_id, text, options,
		correct_option_index, explanation, difficulty, times_served, times_correct, created_at`

// GetQuestions returns the pool for an exam, optionally narrowed to a
// subject and topic. Ordering is deterministic (by id); any shuffling is the
// selector's job.
func (s *Store) GetQuestions(ctx context.Context, examID, subjectID string, topicID *string) ([]models.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE exam_id = $1`, questionCols)
	args := []interface{}{examID}

	if subjectID != "" {
		args = append(args, subjectID)
		query += fmt.Sprintf(` AND subject_id = $%d`, len(args))
	}
	if topicID != nil && *topicID != "" {
		args = append(args, *topicID)
		query += fmt.Sprintf(` AND topic_id = $%d`, len(args))
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

func (s *Store) GetQuestion(ctx context.Context, questionID int64) (*models.Question, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM questions WHERE id = $1`, questionCols),
		questionID,
	)
	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("question %d not found", questionID)
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	var q models.Question
	var options pq.StringArray
	err := row.Scan(&q.ID, &q.ExamID, &q.SubjectID, &q.TopicID, &q.Text, &options,
		&q.CorrectOptionIndex, &q.Explanation, &q.Difficulty,
		&q.TimesServed, &q.TimesCorrect, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	q.Options = options
	return &q, nil
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// ── Serving Counters ────────────────────────────────────

func (s *Store) IncrementServed(ctx context.Context, questionIDs []int64) error {
	if len(questionIDs) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE questions SET times_served = times_served + 1 WHERE id = ANY($1)`,
		pq.Array(questionIDs),
	)
	return err
}

func (s *Store) IncrementCorrect(ctx context.Context, questionIDs []int64) error {
	if len(questionIDs) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE questions SET times_correct = times_correct + 1 WHERE id = ANY($1)`,
		pq.Array(questionIDs),
	)
	return err
}

// ── Attempt History (summaries only; full attempts stay in the attempt store) ──

func (s *Store) SaveAttemptSummary(ctx context.Context, userID int64, examID, subjectID string, summary *models.PerformanceSummary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempt_summaries (user_id, exam_id, subject_id, correct_count, total_count)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, examID, subjectID, summary.CorrectCount, summary.TotalCount,
	)
	if err != nil {
		return fmt.Errorf("save attempt summary: %w", err)
	}
	return nil
}

// GetRecentSummaries returns the learner's latest attempt summaries,
// newest first, for the dashboard breakdown.
func (s *Store) GetRecentSummaries(ctx context.Context, userID int64, limit int) ([]models.PerformanceSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT correct_count, total_count FROM attempt_summaries
		 WHERE user_id = $1 ORDER BY submitted_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.PerformanceSummary
	for rows.Next() {
		var p models.PerformanceSummary
		if err := rows.Scan(&p.CorrectCount, &p.TotalCount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, p)
	}
	return summaries, rows.Err()
}

func (s *Store) DaysSinceLastAttempt(ctx context.Context, userID int64) (int, error) {
	var last time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT submitted_at FROM attempt_summaries
		 WHERE user_id = $1 ORDER BY submitted_at DESC LIMIT 1`,
		userID,
	).Scan(&last)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("last attempt: %w", err)
	}
	return int(time.Since(last).Hours() / 24), nil
}

// ── Admin: Bank Stats & Recalibration ───────────────────

func (s *Store) GetBankStats(ctx context.Context) (*models.BankStats, error) {
	stats := &models.BankStats{
		PerDifficulty: make(map[models.Difficulty]int),
		PerExam:       make(map[string]int),
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT exam_id, difficulty, COUNT(*) FROM questions GROUP BY exam_id, difficulty`)
	if err != nil {
		return nil, fmt.Errorf("bank stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var examID string
		var difficulty models.Difficulty
		var count int
		if err := rows.Scan(&examID, &difficulty, &count); err != nil {
			return nil, fmt.Errorf("scan bank stats: %w", err)
		}
		stats.TotalQuestions += count
		stats.PerDifficulty[difficulty] += count
		stats.PerExam[examID] += count
	}
	return stats, rows.Err()
}

// GetRecalibrationCandidates finds questions whose observed accuracy
// disagrees with their labeled difficulty, once they have enough responses
// to judge.
func (s *Store) GetRecalibrationCandidates(ctx context.Context, minResponses int) ([]models.RecalibrationCandidate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, difficulty, times_served, times_correct,
		        times_correct::float / times_served AS accuracy
		 FROM questions
		 WHERE times_served >= $1
		   AND (
		     (difficulty = 'easy'   AND times_correct::float / times_served < 0.50) OR
		     (difficulty = 'medium' AND (times_correct::float / times_served < 0.30 OR times_correct::float / times_served > 0.85)) OR
		     (difficulty = 'hard'   AND times_correct::float / times_served > 0.70)
		   )`,
		minResponses,
	)
	if err != nil {
		return nil, fmt.Errorf("recalibration candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.RecalibrationCandidate
	for rows.Next() {
		var c models.RecalibrationCandidate
		if err := rows.Scan(&c.QuestionID, &c.LabeledDifficulty, &c.TimesServed, &c.TimesCorrect, &c.ActualAccuracy); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		c.SuggestedDifficulty = suggestDifficulty(c.ActualAccuracy)
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// suggestDifficulty relabels a question from its observed accuracy: easy
// questions get answered correctly most of the time, hard ones rarely.
func suggestDifficulty(accuracy float64) models.Difficulty {
	if accuracy > 0.70 {
		return models.DifficultyEasy
	}
	if accuracy >= 0.40 {
		return models.DifficultyMedium
	}
	return models.DifficultyHard
}

func (s *Store) UpdateQuestionDifficulty(ctx context.Context, questionID int64, difficulty models.Difficulty) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE questions SET difficulty = $1 WHERE id = $2`,
		difficulty, questionID,
	)
	return err
}
