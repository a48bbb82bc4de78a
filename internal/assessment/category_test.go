package assessment

import (
	"testing"

	"github.com/quizcraft/backend/internal/models"
)

func TestCategoryFromRating(t *testing.T) {
	tests := []struct {
		rating int
		want   models.Category
	}{
		{-100, models.CategoryLow},
		{0, models.CategoryLow},
		{199, models.CategoryLow},
		{200, models.CategoryMedium},
		{DefaultRating, models.CategoryMedium},
		{499, models.CategoryMedium},
		{500, models.CategoryBest},
		{2000, models.CategoryBest},
	}

	for _, tt := range tests {
		got := CategoryFromRating(tt.rating)
		if got != tt.want {
			t.Errorf("CategoryFromRating(%d) = %s, want %s", tt.rating, got, tt.want)
		}
	}
}

func TestCalibrationAssignment(t *testing.T) {
	tests := []struct {
		correct int
		want    models.Category
	}{
		{0, models.CategoryLow},
		{3, models.CategoryLow},
		{4, models.CategoryMedium},
		{6, models.CategoryMedium},
		{7, models.CategoryBest},
		{9, models.CategoryBest},
	}

	for _, tt := range tests {
		got := CalibrationAssignment(tt.correct)
		if got != tt.want {
			t.Errorf("CalibrationAssignment(%d) = %s, want %s", tt.correct, got, tt.want)
		}
	}
}

// Assignment must never go down as the correct count goes up.
func TestCalibrationAssignmentMonotonic(t *testing.T) {
	rank := map[models.Category]int{
		models.CategoryLow:    0,
		models.CategoryMedium: 1,
		models.CategoryBest:   2,
	}

	prev := rank[CalibrationAssignment(0)]
	for correct := 1; correct <= 9; correct++ {
		cur := rank[CalibrationAssignment(correct)]
		if cur < prev {
			t.Errorf("CalibrationAssignment(%d) ranks below CalibrationAssignment(%d)", correct, correct-1)
		}
		prev = cur
	}
}

// Each calibration seed must land inside its own category band.
func TestSeedRatingLandsInOwnBand(t *testing.T) {
	for _, c := range []models.Category{models.CategoryLow, models.CategoryMedium, models.CategoryBest} {
		seed := SeedRating(c)
		if got := CategoryFromRating(seed); got != c {
			t.Errorf("SeedRating(%s) = %d maps back to %s", c, seed, got)
		}
	}
}
