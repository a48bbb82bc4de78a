package questions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/quizcraft/backend/internal/assessment"
	"github.com/quizcraft/backend/internal/attempts"
	"github.com/quizcraft/backend/internal/models"
	"github.com/quizcraft/backend/internal/ratings"
)

const defaultQuizSize = 10

var ErrAttemptOwnership = errors.New("attempt belongs to another user")

type Service struct {
	store    *Store
	ratings  ratings.Store
	ratingIx *ratings.SQLStore
	attempts attempts.Store
	selector *assessment.Selector
	policy   assessment.RatingUpdatePolicy
}

func NewService(store *Store, ratingStore ratings.Store, ratingIx *ratings.SQLStore, attemptStore attempts.Store) *Service {
	policyName := os.Getenv("RATING_POLICY")
	if policyName == "" {
		policyName = "threshold"
	}
	log.Printf("Service: rating policy=%s", policyName)

	return &Service{
		store:    store,
		ratings:  ratingStore,
		ratingIx: ratingIx,
		attempts: attemptStore,
		selector: assessment.NewSelector(rand.New(rand.NewSource(time.Now().UnixNano()))),
		policy:   assessment.NewPolicy(policyName),
	}
}

// ── Quiz Lifecycle ──────────────────────────────────────

// StartQuiz serves the next quiz for a (user, exam, subject) scope. A scope
// with no stored rating gets the one-time calibration quiz; otherwise the
// current category drives the adaptive difficulty mix.
func (s *Service) StartQuiz(ctx context.Context, userID int64, req models.StartQuizRequest) (*models.StartQuizResponse, error) {
	pool, err := s.store.GetQuestions(ctx, req.ExamID, req.SubjectID, req.TopicID)
	if err != nil {
		return nil, fmt.Errorf("load question pool: %w", err)
	}

	mode := models.ModeAdaptive
	var selected []models.Question

	calibrated, err := s.ratings.Exists(ctx, userID, req.ExamID, req.SubjectID)
	if err != nil {
		// Can't tell whether the learner is calibrated; serve an adaptive
		// quiz at the default rating rather than blocking the quiz.
		log.Printf("WARN: rating lookup failed for user=%d exam=%s: %v", userID, req.ExamID, err)
		calibrated = true
	}

	if !calibrated {
		mode = models.ModeCalibration
		selected = s.selector.BuildCalibrationQuiz(pool)
	} else {
		rating, err := s.ratings.Get(ctx, userID, req.ExamID, req.SubjectID)
		if err != nil {
			log.Printf("WARN: rating read failed for user=%d exam=%s: %v", userID, req.ExamID, err)
			rating = assessment.DefaultRating
		}

		count := req.Count
		if count <= 0 {
			count = defaultQuizSize
		}
		selected = s.selector.BuildAdaptiveQuiz(pool, assessment.CategoryFromRating(rating), count)
	}

	attempt := &models.Attempt{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExamID:    req.ExamID,
		SubjectID: req.SubjectID,
		Mode:      mode,
		Questions: selected,
		Answers:   make([]models.Answer, len(selected)),
		StartedAt: time.Now().UTC(),
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}

	ids := make([]int64, len(selected))
	quizQuestions := make([]models.QuizQuestion, len(selected))
	for i, q := range selected {
		ids[i] = q.ID
		quizQuestions[i] = q.ToQuizQuestion()
	}
	if err := s.store.IncrementServed(ctx, ids); err != nil {
		log.Printf("WARN: failed to bump served counters: %v", err)
	}

	return &models.StartQuizResponse{
		AttemptID: attempt.ID,
		Mode:      mode,
		Questions: quizQuestions,
		Total:     len(quizQuestions),
	}, nil
}

// RecordAnswer stores one answer on the active attempt. No rating or
// analysis happens here; abandoning the attempt after this point still
// leaves the rating untouched.
func (s *Service) RecordAnswer(ctx context.Context, userID int64, attemptID string, req models.RecordAnswerRequest) error {
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return err
	}
	if attempt.UserID != userID {
		return ErrAttemptOwnership
	}

	answer := models.Answer{
		SelectedOption:   req.SelectedOption,
		TimeTakenSeconds: req.TimeTakenSeconds,
	}
	if err := attempts.RecordAnswer(attempt, req.QuestionIndex, answer); err != nil {
		return err
	}
	return s.attempts.Save(ctx, attempt)
}

// SubmitQuiz seals the attempt, analyzes it, and applies the rating update.
// A calibration submission seeds the rating from the assigned category; an
// adaptive submission applies the configured policy. A rating store outage
// degrades to "rating not updated" instead of blocking the review.
func (s *Service) SubmitQuiz(ctx context.Context, userID int64, attemptID string) (*models.SubmitQuizResponse, error) {
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptOwnership
	}
	if err := attempts.MarkSubmitted(attempt); err != nil {
		return nil, err
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("seal attempt: %w", err)
	}

	summary, err := assessment.AnalyzePerformance(attempt.Questions, attempt.Answers)
	if err != nil {
		return nil, err
	}
	strengths, err := assessment.TopicStrengths(attempt.Questions, attempt.Answers)
	if err != nil {
		return nil, err
	}

	s.bumpCorrectCounters(ctx, attempt)

	resp := &models.SubmitQuizResponse{
		Summary:        summary,
		TopicStrengths: strengths,
	}

	currentRating := assessment.DefaultRating
	if attempt.Mode == models.ModeAdaptive {
		currentRating, err = s.ratings.Get(ctx, userID, attempt.ExamID, attempt.SubjectID)
		if err != nil {
			log.Printf("WARN: rating read failed on submit, using default: %v", err)
			currentRating = assessment.DefaultRating
		}
	}

	newRating := nextRating(attempt.Mode, currentRating, summary, s.policy)
	resp.RatingDelta = newRating - currentRating

	if err := s.ratings.Set(ctx, userID, attempt.ExamID, attempt.SubjectID, newRating); err != nil {
		if !errors.Is(err, ratings.ErrUnavailable) {
			return nil, fmt.Errorf("store rating: %w", err)
		}
		log.Printf("WARN: rating not updated for user=%d exam=%s: %v", userID, attempt.ExamID, err)
		resp.Rating = currentRating
		resp.Category = assessment.CategoryFromRating(currentRating)
	} else {
		resp.Rating = newRating
		resp.Category = assessment.CategoryFromRating(newRating)
		resp.RatingUpdated = true
	}

	if err := s.store.SaveAttemptSummary(ctx, userID, attempt.ExamID, attempt.SubjectID, summary); err != nil {
		log.Printf("WARN: failed to record attempt summary: %v", err)
	}
	if err := s.attempts.Delete(ctx, attemptID); err != nil {
		log.Printf("WARN: failed to clear submitted attempt %s: %v", attemptID, err)
	}

	return resp, nil
}

// nextRating computes the stored rating after a submission. Calibration
// seeds from the assigned category (the one-time Calibrating→Adaptive
// transition); adaptive submissions apply the configured policy's delta.
func nextRating(mode models.AttemptMode, currentRating int, summary *models.PerformanceSummary, policy assessment.RatingUpdatePolicy) int {
	if mode == models.ModeCalibration {
		return assessment.SeedRating(assessment.CalibrationAssignment(summary.CorrectCount))
	}
	return currentRating + policy.Delta(currentRating, summary)
}

func (s *Service) bumpCorrectCounters(ctx context.Context, attempt *models.Attempt) {
	var correctIDs []int64
	for i, q := range attempt.Questions {
		a := attempt.Answers[i]
		if a.SelectedOption != nil && *a.SelectedOption == q.CorrectOptionIndex {
			correctIDs = append(correctIDs, q.ID)
		}
	}
	if err := s.store.IncrementCorrect(ctx, correctIDs); err != nil {
		log.Printf("WARN: failed to bump correct counters: %v", err)
	}
}

// ── Ratings & Dashboard ─────────────────────────────────

func (s *Service) GetRatings(ctx context.Context, userID int64) (*models.RatingListResponse, error) {
	stored, err := s.ratingIx.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &models.RatingListResponse{Ratings: []models.RatingEntry{}}
	for _, r := range stored {
		resp.Ratings = append(resp.Ratings, models.RatingEntry{
			ExamID:    r.ExamID,
			SubjectID: r.SubjectID,
			Rating:    r.Rating,
			Category:  assessment.CategoryFromRating(r.Rating),
		})
	}
	return resp, nil
}

// GetRatingBreakdown serves the dashboard's composite projection. Never
// written back to the rating store.
func (s *Service) GetRatingBreakdown(ctx context.Context, userID int64) (*models.RatingBreakdown, error) {
	recent, err := s.store.GetRecentSummaries(ctx, userID, 10)
	if err != nil {
		return nil, err
	}
	days, err := s.store.DaysSinceLastAttempt(ctx, userID)
	if err != nil {
		return nil, err
	}
	b := assessment.ComputeRatingBreakdown(recent, days)
	return &b, nil
}

// ── Admin ───────────────────────────────────────────────

func (s *Service) GetBankStats(ctx context.Context) (*models.BankStats, error) {
	return s.store.GetBankStats(ctx)
}

func (s *Service) RecalibrateDifficulty(ctx context.Context) (*models.RecalibrationReport, error) {
	candidates, err := s.store.GetRecalibrationCandidates(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("get recalibration candidates: %w", err)
	}

	recalibrated := 0
	for _, c := range candidates {
		if err := s.store.UpdateQuestionDifficulty(ctx, c.QuestionID, c.SuggestedDifficulty); err != nil {
			log.Printf("WARN: failed to recalibrate question %d: %v", c.QuestionID, err)
			continue
		}
		recalibrated++
	}

	return &models.RecalibrationReport{
		TotalEvaluated: len(candidates),
		Recalibrated:   recalibrated,
		Details:        candidates,
	}, nil
}

func (s *Service) GetQuestion(ctx context.Context, questionID int64) (*models.Question, error) {
	return s.store.GetQuestion(ctx, questionID)
}
