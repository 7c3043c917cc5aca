package domain

// Category is the discrete recommendation label derived from a score.
type Category string

const (
	VeryHighlyRecommended Category = "very_highly_recommended"
	Recommended           Category = "recommended"
	ModeratelyRecommended Category = "moderately_recommended"
	BarelyRecommended     Category = "barely_recommended"
	NotRecommended        Category = "not_recommended"
)

// Categories lists the labels from best to worst.
var Categories = []Category{
	VeryHighlyRecommended,
	Recommended,
	ModeratelyRecommended,
	BarelyRecommended,
	NotRecommended,
}

// ScoredTrail is a trail record augmented with its computed scores.
type ScoredTrail struct {
	TrailRecord
	FuzzyScore    float64  `json:"fuzzy_score"`
	WeightedScore float64  `json:"weighted_score"`
	Score         float64  `json:"score"`
	Category      Category `json:"category"`
	Failed        bool     `json:"failed,omitempty"`
}

// MountainSummary is the per-mountain aggregate row.
type MountainSummary struct {
	MountainID    string   `json:"mountain_id"`
	MountainName  string   `json:"mountain_name"`
	MaxScore      float64  `json:"max_score"`
	MeanScore     float64  `json:"mean_score"`
	TrailCount    int      `json:"trail_count"`
	BestTrail     string   `json:"best_trail"`
	MinDifficulty float64  `json:"min_difficulty"`
	MaxDifficulty float64  `json:"max_difficulty"`
	MeanSafety    float64  `json:"mean_safety"`
	Elevation     float64  `json:"elevation"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	Category      Category `json:"category"`
}
