package recommend

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"trail-recommender/internal/domain"
)

// ScoreStats summarizes a set of scores. StdDev is the sample standard
// deviation and is 0 for fewer than two values.
type ScoreStats struct {
	Max    float64 `json:"max"`
	Min    float64 `json:"min"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Count  int     `json:"count"`
}

func Stats(values []float64) ScoreStats {
	if len(values) == 0 {
		return ScoreStats{}
	}
	s := ScoreStats{
		Max:   floats.Max(values),
		Min:   floats.Min(values),
		Count: len(values),
	}
	if len(values) == 1 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	return s
}

// MountainScoreStats computes statistics over the mountains' max scores.
func MountainScoreStats(ms []domain.MountainSummary) ScoreStats {
	vals := make([]float64, len(ms))
	for i, m := range ms {
		vals[i] = m.MaxScore
	}
	return Stats(vals)
}

// CategoryDistribution counts mountains per category. Every category is
// present in the result.
func CategoryDistribution(ms []domain.MountainSummary) map[domain.Category]int {
	out := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		out[c] = 0
	}
	for _, m := range ms {
		out[m.Category]++
	}
	return out
}
