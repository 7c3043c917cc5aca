// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// Supplementary weighted-average model.

package recommend

import (
	"fmt"
	"math"
	"sort"

	"trail-recommender/internal/domain"
)

// WeightSet maps criteria to their relative importance. Weights must be
// non-negative and sum to 1.0 (±0.001).
type WeightSet map[string]float64

// DefaultWeights returns the canonical weight distribution.
func DefaultWeights() WeightSet {
	return WeightSet{
		domain.Safety:                0.15,
		domain.IncidentSafety:        0.12,
		domain.Difficulty:            0.10,
		domain.WaterAvailability:     0.10,
		domain.FacilityQuality:       0.08,
		domain.ScenicBeauty:          0.08,
		domain.CampsiteQuality:       0.07,
		domain.LandscapeVariety:      0.07,
		domain.DurationHours:         0.06,
		domain.Elevation:             0.05,
		domain.WindShelter:           0.05,
		domain.CommunicationCoverage: 0.04,
		domain.RouteVariety:          0.03,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	var s float64
	for _, c := range w.names() {
		s += w[c]
	}
	return s
}

// Validate checks that weights sum to 1.0, none are negative and every key
// names a criterion.
func (w WeightSet) Validate() error {
	for _, c := range w.names() {
		if !domain.IsCriterion(c) {
			return fmt.Errorf("weight for unknown criterion %q", c)
		}
		if w[c] < 0 || math.IsNaN(w[c]) {
			return fmt.Errorf("invalid weight for %s: %f", c, w[c])
		}
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	return nil
}

// Score returns Σ normalized×weight over the criteria present on t. The sum
// is not renormalized when terms are missing. ok is false when no term could
// be computed.
func (w WeightSet) Score(t domain.TrailRecord) (float64, bool) {
	var total float64
	n := 0
	for _, c := range domain.Criteria {
		weight, has := w[c]
		if !has {
			continue
		}
		v, _ := t.Value(c)
		if math.IsNaN(v) {
			continue
		}
		total += Normalize(c, v) * weight
		n++
	}
	return total, n > 0
}

// Normalize maps a raw criterion value onto 0..100 where higher is better.
// Duration inverts (shorter is better) and elevation is scaled against the
// 5500 m ceiling; the 0..10 scales are multiplied out.
func Normalize(criterion string, v float64) float64 {
	switch criterion {
	case domain.DurationHours:
		return math.Max(0, 100-v)
	case domain.Elevation:
		return math.Min(100, v/5500*100)
	}
	return v / 10 * 100
}

func (w WeightSet) names() []string {
	out := make([]string, 0, len(w))
	for k := range w {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
