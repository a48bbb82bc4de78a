package assessment

import "github.com/quizcraft/backend/internal/models"

// Rating scale constants. The calibration seeds are deliberately kept next to
// the category thresholds: each seed must land inside its own category band.
const (
	DefaultRating = 200 // a learner with no history reads as medium

	CategoryBestMin   = 500
	CategoryMediumMin = 200

	SeedRatingLow    = 100
	SeedRatingMedium = 300
	SeedRatingBest   = 600
)

// CategoryFromRating maps a rating to its coarse tier. Pure and total;
// categories are always re-derived from the rating, never cached.
func CategoryFromRating(rating int) models.Category {
	if rating >= CategoryBestMin {
		return models.CategoryBest
	}
	if rating >= CategoryMediumMin {
		return models.CategoryMedium
	}
	return models.CategoryLow
}

// CalibrationAssignment maps the correct count of the 9-question calibration
// quiz to the learner's starting category.
func CalibrationAssignment(correctCount int) models.Category {
	if correctCount >= 7 {
		return models.CategoryBest
	}
	if correctCount >= 4 {
		return models.CategoryMedium
	}
	return models.CategoryLow
}

// SeedRating returns the initial rating written to the store when
// calibration assigns the given category.
func SeedRating(category models.Category) int {
	switch category {
	case models.CategoryBest:
		return SeedRatingBest
	case models.CategoryMedium:
		return SeedRatingMedium
	default:
		return SeedRatingLow
	}
}
