package recommend

import "trail-recommender/internal/domain"

// Categorize bins a final score.
func Categorize(score float64) domain.Category {
	switch {
	case score >= 80:
		return domain.VeryHighlyRecommended
	case score >= 65:
		return domain.Recommended
	case score >= 50:
		return domain.ModeratelyRecommended
	case score >= 35:
		return domain.BarelyRecommended
	}
	return domain.NotRecommended
}

// IsPositive reports whether a category counts as a recommendation.
func IsPositive(c domain.Category) bool {
	return c == domain.VeryHighlyRecommended || c == domain.Recommended
}
