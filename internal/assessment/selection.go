package assessment

import (
	"math"
	"math/rand"

	"github.com/quizcraft/backend/internal/models"
)

// CalibrationSize is the fixed size of the one-time calibration quiz:
// three questions per difficulty band.
const CalibrationSize = 9

const calibrationPerBand = 3

// difficultyOrder is the fixed Easy→Medium→Hard ordering used for weight
// tables and for rounding repair (repair walks it in reverse, hardest first).
var difficultyOrder = []models.Difficulty{
	models.DifficultyEasy,
	models.DifficultyMedium,
	models.DifficultyHard,
}

// categoryWeights is the target difficulty mix per category, as fractions
// of the requested quiz size, in Easy/Medium/Hard order.
var categoryWeights = map[models.Category][3]float64{
	models.CategoryLow:    {0.70, 0.30, 0.00},
	models.CategoryMedium: {0.40, 0.40, 0.20},
	models.CategoryBest:   {0.10, 0.30, 0.60},
}

// Selector draws quizzes from a question pool. The random source is injected
// so selection can be made deterministic in tests.
type Selector struct {
	rng *rand.Rand
}

func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// BuildCalibrationQuiz picks the 9-question calibration quiz: 3 per
// difficulty band, uniformly without replacement, backfilling from the whole
// pool when a band is under-supplied. The result is min(9, len(pool))
// questions, shuffled so bands are not visually grouped.
func (s *Selector) BuildCalibrationQuiz(pool []models.Question) []models.Question {
	byBand := partitionByDifficulty(pool)

	var picked []models.Question
	used := make(map[int64]bool)

	for _, d := range difficultyOrder {
		band := byBand[d]
		take := calibrationPerBand
		if take > len(band) {
			take = len(band)
		}
		for _, q := range s.sample(band, take) {
			picked = append(picked, q)
			used[q.ID] = true
		}
	}

	picked = s.backfill(picked, pool, used, CalibrationSize)
	s.shuffle(picked)
	return picked
}

// BuildAdaptiveQuiz selects min(total, len(pool)) questions approximating the
// category's difficulty mix. Shortages never fail: under-supplied bands are
// clamped to what the pool has and the shortfall is backfilled from the rest
// of the pool regardless of difficulty.
func (s *Selector) BuildAdaptiveQuiz(pool []models.Question, category models.Category, total int) []models.Question {
	if total <= 0 || len(pool) == 0 {
		return []models.Question{}
	}

	targets := targetCounts(category, total)
	byBand := partitionByDifficulty(pool)

	var picked []models.Question
	used := make(map[int64]bool)

	for i, d := range difficultyOrder {
		band := byBand[d]
		take := targets[i]
		if take > len(band) {
			take = len(band) // shortfall handled by backfill below
		}
		for _, q := range s.sample(band, take) {
			picked = append(picked, q)
			used[q.ID] = true
		}
	}

	picked = s.backfill(picked, pool, used, total)
	s.shuffle(picked)

	// Final safety clamp.
	if len(picked) > total {
		picked = picked[:total]
	}
	return picked
}

// targetCounts rounds the weight table to integer counts and repairs any
// rounding drift in fixed priority order Hard, Medium, Easy, one step at a
// time. Correcting the hard band first keeps the easy band from absorbing
// all the drift.
func targetCounts(category models.Category, total int) [3]int {
	weights, ok := categoryWeights[category]
	if !ok {
		weights = categoryWeights[models.CategoryMedium]
	}

	var counts [3]int
	sum := 0
	for i, w := range weights {
		counts[i] = int(math.Round(float64(total) * w))
		sum += counts[i]
	}

	repairOrder := []int{2, 1, 0} // Hard, Medium, Easy
	for i := 0; sum != total; i = (i + 1) % len(repairOrder) {
		idx := repairOrder[i]
		if sum < total {
			counts[idx]++
			sum++
		} else if counts[idx] > 0 {
			counts[idx]--
			sum--
		}
	}
	return counts
}

// backfill tops picked up to want questions, drawing unused questions
// uniformly from the pool. Runs out quietly when the pool is exhausted.
func (s *Selector) backfill(picked, pool []models.Question, used map[int64]bool, want int) []models.Question {
	shortfall := want - len(picked)
	if shortfall <= 0 {
		return picked
	}

	var remaining []models.Question
	for _, q := range pool {
		if !used[q.ID] {
			remaining = append(remaining, q)
		}
	}
	if shortfall > len(remaining) {
		shortfall = len(remaining)
	}

	for _, q := range s.sample(remaining, shortfall) {
		picked = append(picked, q)
		used[q.ID] = true
	}
	return picked
}

// sample draws n distinct questions uniformly at random via a partial
// Fisher-Yates over a copy of the slice.
func (s *Selector) sample(pool []models.Question, n int) []models.Question {
	if n >= len(pool) {
		out := make([]models.Question, len(pool))
		copy(out, pool)
		return out
	}
	scratch := make([]models.Question, len(pool))
	copy(scratch, pool)
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	return scratch[:n]
}

func (s *Selector) shuffle(questions []models.Question) {
	s.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

func partitionByDifficulty(pool []models.Question) map[models.Difficulty][]models.Question {
	byBand := make(map[models.Difficulty][]models.Question, 3)
	for _, q := range pool {
		byBand[q.Difficulty] = append(byBand[q.Difficulty], q)
	}
	return byBand
}
