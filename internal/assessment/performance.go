package assessment

import (
	"fmt"
	"sort"

	"github.com/quizcraft/backend/internal/models"
)

// AnalyzePerformance computes the aggregate and per-difficulty stats for a
// submitted attempt. An unanswered question (nil selection) counts as
// incorrect but still lands in its difficulty bucket. Mismatched slice
// lengths and unknown difficulty tags are caller bugs and fail fast.
func AnalyzePerformance(questions []models.Question, answers []models.Answer) (*models.PerformanceSummary, error) {
	if len(questions) != len(answers) {
		return nil, fmt.Errorf("analyze performance: %d questions but %d answers", len(questions), len(answers))
	}

	summary := &models.PerformanceSummary{
		TotalCount:      len(questions),
		PerDifficulty:   make(map[models.Difficulty]models.DifficultyBucket, 3),
		TimePerQuestion: make([]float64, 0, len(answers)),
	}

	for i, q := range questions {
		if !models.ValidDifficulties[q.Difficulty] {
			return nil, fmt.Errorf("analyze performance: question %d has unknown difficulty %q", q.ID, q.Difficulty)
		}

		correct := answers[i].SelectedOption != nil && *answers[i].SelectedOption == q.CorrectOptionIndex
		if correct {
			summary.CorrectCount++
		}

		bucket := summary.PerDifficulty[q.Difficulty]
		bucket.Total++
		if correct {
			bucket.Correct++
		}
		summary.PerDifficulty[q.Difficulty] = bucket

		summary.TimePerQuestion = append(summary.TimePerQuestion, answers[i].TimeTakenSeconds)
	}

	return summary, nil
}

// TopicStrengths groups an attempt's results by topic (falling back to the
// question's subject) and ranks them by descending accuracy. Ties keep
// first-seen order so the ranking is deterministic.
func TopicStrengths(questions []models.Question, answers []models.Answer) ([]models.TopicStrength, error) {
	if len(questions) != len(answers) {
		return nil, fmt.Errorf("topic strengths: %d questions but %d answers", len(questions), len(answers))
	}

	index := make(map[string]int)
	var strengths []models.TopicStrength

	for i, q := range questions {
		topic := q.Topic()
		pos, ok := index[topic]
		if !ok {
			pos = len(strengths)
			index[topic] = pos
			strengths = append(strengths, models.TopicStrength{Topic: topic})
		}

		strengths[pos].Total++
		if answers[i].SelectedOption != nil && *answers[i].SelectedOption == q.CorrectOptionIndex {
			strengths[pos].Correct++
		}
	}

	sort.SliceStable(strengths, func(a, b int) bool {
		return strengths[a].Accuracy() > strengths[b].Accuracy()
	})
	return strengths, nil
}
