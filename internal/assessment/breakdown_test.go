package assessment

import (
	"testing"

	"github.com/quizcraft/backend/internal/models"
)

func summaryWith(correct, total int) models.PerformanceSummary {
	return models.PerformanceSummary{CorrectCount: correct, TotalCount: total}
}

func TestComputeRatingBreakdownNoHistory(t *testing.T) {
	b := ComputeRatingBreakdown(nil, 0)
	if b.Total != 1000 {
		t.Errorf("empty history total = %d, want the 1000 base", b.Total)
	}
}

func TestComputeRatingBreakdownConsistentStrongRun(t *testing.T) {
	recent := []models.PerformanceSummary{
		summaryWith(8, 10),
		summaryWith(8, 10),
		summaryWith(9, 10),
	}

	b := ComputeRatingBreakdown(recent, 1)

	// Each quiz: correct*10 - wrong*5.
	wantRecent := (80 - 10) + (80 - 10) + (90 - 5)
	if b.RecentPerformance != wantRecent {
		t.Errorf("recent performance = %d, want %d", b.RecentPerformance, wantRecent)
	}
	if b.AccuracyBonus != 100 {
		t.Errorf("accuracy bonus = %d, want 100 at 83%% overall", b.AccuracyBonus)
	}
	if b.StreakBonus != 30 {
		t.Errorf("streak bonus = %d, want 30 for three 50%%+ quizzes", b.StreakBonus)
	}
	if b.ConsistencyBonus != 50 {
		t.Errorf("consistency bonus = %d, want 50 for tight accuracies", b.ConsistencyBonus)
	}
	if b.Penalties != 0 {
		t.Errorf("penalties = %d, want 0 for a recently active learner", b.Penalties)
	}
	if b.Total != 1000+wantRecent+100+30+50 {
		t.Errorf("total = %d does not add up", b.Total)
	}
}

func TestComputeRatingBreakdownInactivityPenalty(t *testing.T) {
	b := ComputeRatingBreakdown(nil, 12)
	if b.Penalties != 25 {
		t.Errorf("penalty = %d, want 25 for 5 days past the grace week", b.Penalties)
	}

	b = ComputeRatingBreakdown(nil, 365)
	if b.Penalties != 100 {
		t.Errorf("penalty = %d, want the 100 cap", b.Penalties)
	}
}

func TestComputeRatingBreakdownStreakStopsAtWeakQuiz(t *testing.T) {
	recent := []models.PerformanceSummary{
		summaryWith(6, 10),
		summaryWith(2, 10), // breaks the streak
		summaryWith(9, 10),
	}
	b := ComputeRatingBreakdown(recent, 1)
	if b.StreakBonus != 10 {
		t.Errorf("streak bonus = %d, want 10 (one quiz before the weak one)", b.StreakBonus)
	}
}
