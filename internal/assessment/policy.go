package assessment

import (
	"math"

	"github.com/quizcraft/backend/internal/models"
)

// RatingUpdatePolicy computes the rating delta for a submitted adaptive
// attempt. Exactly one policy drives question selection per deployment;
// see NewPolicy.
type RatingUpdatePolicy interface {
	Delta(currentRating int, perf *models.PerformanceSummary) int
}

// NewPolicy resolves a policy name from config. The threshold policy is the
// default: its ±40 steps are scaled to the 200/500 category thresholds,
// so a couple of strong attempts move a learner across a band.
func NewPolicy(name string) RatingUpdatePolicy {
	if name == "elo" {
		return EloPolicy{}
	}
	return ThresholdPolicy{}
}

// ── Threshold-banded policy ─────────────────────────────

// ThresholdRatingChange maps an attempt's accuracy percentage to a banded
// rating delta. Monotonic in its input; ignores difficulty and attempt size.
func ThresholdRatingChange(percentageCorrect float64) int {
	switch {
	case percentageCorrect >= 85:
		return 40
	case percentageCorrect >= 70:
		return 20
	case percentageCorrect >= 50:
		return 0
	case percentageCorrect >= 30:
		return -20
	default:
		return -40
	}
}

type ThresholdPolicy struct{}

func (ThresholdPolicy) Delta(currentRating int, perf *models.PerformanceSummary) int {
	return ThresholdRatingChange(perf.AccuracyPercent())
}

// ── ELO-style policy ────────────────────────────────────

// kFactor returns the adjustment strength for a rating tier: high-rated
// learners move in smaller steps.
func kFactor(rating int) float64 {
	if rating > 1800 {
		return 16
	}
	if rating > 1400 {
		return 24
	}
	return 32
}

// expectedAccuracy is the accuracy a learner at the given rating tier is
// assumed to achieve; the delta is driven by the gap against it.
func expectedAccuracy(rating int) float64 {
	switch {
	case rating < 1000:
		return 0.45
	case rating < 1400:
		return 0.55
	case rating < 1800:
		return 0.65
	default:
		return 0.75
	}
}

func difficultyMultiplier(difficulty models.Difficulty) float64 {
	switch difficulty {
	case models.DifficultyEasy:
		return 0.7
	case models.DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}

// AdaptiveRatingChange computes the ELO-style delta for one attempt.
// Short attempts are discounted by the reliability multiplier; the result
// is rounded and clamped to [-50, 50].
func AdaptiveRatingChange(currentRating int, accuracyPercent float64, difficulty models.Difficulty, questionsAttempted int) int {
	performanceDiff := accuracyPercent/100 - expectedAccuracy(currentRating)

	reliability := float64(questionsAttempted) / 15
	if reliability > 1 {
		reliability = 1
	}

	delta := kFactor(currentRating) * performanceDiff * difficultyMultiplier(difficulty) * reliability

	rounded := int(math.Round(delta))
	if rounded > 50 {
		return 50
	}
	if rounded < -50 {
		return -50
	}
	return rounded
}

type EloPolicy struct{}

func (EloPolicy) Delta(currentRating int, perf *models.PerformanceSummary) int {
	return AdaptiveRatingChange(currentRating, perf.AccuracyPercent(), dominantDifficulty(perf), perf.TotalCount)
}

// dominantDifficulty picks the band with the most questions in the attempt,
// breaking ties toward the harder band, to stand in for the single
// difficulty argument of AdaptiveRatingChange on mixed quizzes.
func dominantDifficulty(perf *models.PerformanceSummary) models.Difficulty {
	dominant := models.DifficultyMedium
	best := -1
	for _, d := range []models.Difficulty{models.DifficultyHard, models.DifficultyMedium, models.DifficultyEasy} {
		if total := perf.PerDifficulty[d].Total; total > best {
			best = total
			dominant = d
		}
	}
	return dominant
}
