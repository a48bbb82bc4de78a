package assessment

import (
	"math/rand"
	"testing"

	"github.com/quizcraft/backend/internal/models"
)

func testSelector() *Selector {
	return NewSelector(rand.New(rand.NewSource(42)))
}

// makePool builds a pool with the given number of questions per band,
// with unique IDs across bands.
func makePool(easy, medium, hard int) []models.Question {
	var pool []models.Question
	id := int64(1)
	add := func(n int, d models.Difficulty) {
		for i := 0; i < n; i++ {
			pool = append(pool, models.Question{
				ID:         id,
				ExamID:     "upsc",
				SubjectID:  "history",
				Difficulty: d,
			})
			id++
		}
	}
	add(easy, models.DifficultyEasy)
	add(medium, models.DifficultyMedium)
	add(hard, models.DifficultyHard)
	return pool
}

func countByBand(questions []models.Question) map[models.Difficulty]int {
	counts := make(map[models.Difficulty]int)
	for _, q := range questions {
		counts[q.Difficulty]++
	}
	return counts
}

func assertDistinct(t *testing.T, questions []models.Question) {
	t.Helper()
	seen := make(map[int64]bool)
	for _, q := range questions {
		if seen[q.ID] {
			t.Errorf("duplicate question id %d in selection", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestBuildCalibrationQuizBalanced(t *testing.T) {
	quiz := testSelector().BuildCalibrationQuiz(makePool(5, 5, 5))

	if len(quiz) != CalibrationSize {
		t.Fatalf("got %d questions, want %d", len(quiz), CalibrationSize)
	}
	assertDistinct(t, quiz)

	counts := countByBand(quiz)
	for band, n := range counts {
		if n != 3 {
			t.Errorf("band %s has %d questions, want 3", band, n)
		}
	}
}

func TestBuildCalibrationQuizBackfillsShortBand(t *testing.T) {
	// Only one easy question available: still 9 total, the easy one included.
	quiz := testSelector().BuildCalibrationQuiz(makePool(1, 10, 10))

	if len(quiz) != CalibrationSize {
		t.Fatalf("got %d questions, want %d", len(quiz), CalibrationSize)
	}
	assertDistinct(t, quiz)
	if countByBand(quiz)[models.DifficultyEasy] != 1 {
		t.Errorf("expected the single easy question to be selected")
	}
}

func TestBuildCalibrationQuizSmallPool(t *testing.T) {
	quiz := testSelector().BuildCalibrationQuiz(makePool(2, 1, 1))
	if len(quiz) != 4 {
		t.Errorf("got %d questions, want the whole 4-question pool", len(quiz))
	}
	assertDistinct(t, quiz)
}

func TestBuildCalibrationQuizEmptyPool(t *testing.T) {
	quiz := testSelector().BuildCalibrationQuiz(nil)
	if len(quiz) != 0 {
		t.Errorf("got %d questions from empty pool, want 0", len(quiz))
	}
}

func TestBuildAdaptiveQuizDistribution(t *testing.T) {
	// Well-supplied pool: counts must equal the rounding-repaired targets.
	tests := []struct {
		category models.Category
		total    int
		want     map[models.Difficulty]int
	}{
		{models.CategoryMedium, 10, map[models.Difficulty]int{
			models.DifficultyEasy: 4, models.DifficultyMedium: 4, models.DifficultyHard: 2,
		}},
		{models.CategoryLow, 10, map[models.Difficulty]int{
			models.DifficultyEasy: 7, models.DifficultyMedium: 3, models.DifficultyHard: 0,
		}},
		{models.CategoryBest, 10, map[models.Difficulty]int{
			models.DifficultyEasy: 1, models.DifficultyMedium: 3, models.DifficultyHard: 6,
		}},
	}

	for _, tt := range tests {
		quiz := testSelector().BuildAdaptiveQuiz(makePool(20, 20, 20), tt.category, tt.total)
		if len(quiz) != tt.total {
			t.Fatalf("%s: got %d questions, want %d", tt.category, len(quiz), tt.total)
		}
		assertDistinct(t, quiz)

		counts := countByBand(quiz)
		for band, want := range tt.want {
			if counts[band] != want {
				t.Errorf("%s: band %s has %d questions, want %d", tt.category, band, counts[band], want)
			}
		}
	}
}

func TestBuildAdaptiveQuizRoundingRepair(t *testing.T) {
	// Medium weights at total=9 round to 4+4+2 = 10; repair trims the hard
	// band first, so the result is {4, 4, 1}.
	quiz := testSelector().BuildAdaptiveQuiz(makePool(20, 20, 20), models.CategoryMedium, 9)
	if len(quiz) != 9 {
		t.Fatalf("got %d questions, want 9", len(quiz))
	}
	counts := countByBand(quiz)
	if counts[models.DifficultyEasy] != 4 || counts[models.DifficultyMedium] != 4 || counts[models.DifficultyHard] != 1 {
		t.Errorf("got distribution %v, want easy=4 medium=4 hard=1", counts)
	}
}

func TestBuildAdaptiveQuizGracefulScarcity(t *testing.T) {
	// A single-difficulty pool must never fail, even for Best.
	pool := makePool(12, 0, 0)
	quiz := testSelector().BuildAdaptiveQuiz(pool, models.CategoryBest, 10)

	if len(quiz) != 10 {
		t.Fatalf("got %d questions, want 10", len(quiz))
	}
	assertDistinct(t, quiz)
	for _, q := range quiz {
		if q.Difficulty != models.DifficultyEasy {
			t.Errorf("expected only easy questions, got %s", q.Difficulty)
		}
	}
}

func TestBuildAdaptiveQuizPoolSmallerThanTotal(t *testing.T) {
	quiz := testSelector().BuildAdaptiveQuiz(makePool(2, 2, 1), models.CategoryMedium, 10)
	if len(quiz) != 5 {
		t.Errorf("got %d questions, want the whole 5-question pool", len(quiz))
	}
	assertDistinct(t, quiz)
}

func TestBuildAdaptiveQuizDrawsFromPool(t *testing.T) {
	pool := makePool(5, 5, 5)
	inPool := make(map[int64]bool, len(pool))
	for _, q := range pool {
		inPool[q.ID] = true
	}

	quiz := testSelector().BuildAdaptiveQuiz(pool, models.CategoryMedium, 8)
	for _, q := range quiz {
		if !inPool[q.ID] {
			t.Errorf("question %d not in source pool", q.ID)
		}
	}
}

func TestTargetCountsSumToTotal(t *testing.T) {
	for _, category := range []models.Category{models.CategoryLow, models.CategoryMedium, models.CategoryBest} {
		for total := 1; total <= 30; total++ {
			counts := targetCounts(category, total)
			sum := counts[0] + counts[1] + counts[2]
			if sum != total {
				t.Errorf("targetCounts(%s, %d) sums to %d", category, total, sum)
			}
		}
	}
}
