package recommend

// Blend ratios between the fuzzy and weighted scores.
const (
	FuzzyShare    = 0.7
	WeightedShare = 0.3
)

// Blend combines the two scores. Without a weighted score the fuzzy score is
// used alone. The result is clamped to [0,100].
func Blend(fuzzy, weighted float64, ok bool) float64 {
	s := fuzzy
	if ok {
		s = fuzzy*FuzzyShare + weighted*WeightedShare
	}
	switch {
	case s < 0:
		return 0
	case s > 100:
		return 100
	}
	return s
}
