package assessment

import (
	"math"

	"github.com/quizcraft/backend/internal/models"
)

// ComputeRatingBreakdown builds the dashboard's composite rating projection
// from recent attempt summaries (newest first). This number is display-only:
// it is never written to the rating store and never drives question
// selection. Keep it that way — mixing it into the adaptive rating would
// double-count recent attempts.
func ComputeRatingBreakdown(recent []models.PerformanceSummary, daysSinceLastAttempt int) models.RatingBreakdown {
	const base = 1000

	if len(recent) > 10 {
		recent = recent[:10]
	}

	b := models.RatingBreakdown{Base: base}

	var accuracies []float64
	totalCorrect, totalAnswered := 0, 0
	for _, p := range recent {
		b.RecentPerformance += p.CorrectCount*10 - (p.TotalCount-p.CorrectCount)*5
		accuracies = append(accuracies, p.AccuracyPercent())
		totalCorrect += p.CorrectCount
		totalAnswered += p.TotalCount
	}

	if totalAnswered > 0 {
		overall := float64(totalCorrect) / float64(totalAnswered) * 100
		if overall >= 80 {
			b.AccuracyBonus = 100
		} else if overall >= 60 {
			b.AccuracyBonus = 50
		}
	}

	// Streak: consecutive recent quizzes at 50%+ accuracy.
	streak := 0
	for _, acc := range accuracies {
		if acc < 50 {
			break
		}
		streak++
	}
	b.StreakBonus = streak * 10
	if b.StreakBonus > 50 {
		b.StreakBonus = 50
	}

	if sd, ok := stddev(accuracies); ok {
		if sd <= 10 {
			b.ConsistencyBonus = 50
		} else if sd <= 20 {
			b.ConsistencyBonus = 25
		}
	}

	if daysSinceLastAttempt > 7 {
		b.Penalties = (daysSinceLastAttempt - 7) * 5
		if b.Penalties > 100 {
			b.Penalties = 100
		}
	}

	b.Total = b.Base + b.RecentPerformance + b.AccuracyBonus + b.StreakBonus + b.ConsistencyBonus - b.Penalties
	return b
}

// stddev reports the population standard deviation; ok is false below three
// samples, where consistency is meaningless.
func stddev(values []float64) (float64, bool) {
	if len(values) < 3 {
		return 0, false
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance), true
}
