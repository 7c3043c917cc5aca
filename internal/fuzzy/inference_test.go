package fuzzy

import (
	"errors"
	"math"
	"testing"

	"pgregory.net/rapid"

	"trail-recommender/internal/domain"
)

const tol = 1e-6

func baseInputs(overrides map[string]float64) map[string]float64 {
	in := make(map[string]float64, len(domain.Criteria))
	for _, c := range domain.Criteria {
		in[c] = domain.DefaultScale
	}
	in[domain.Elevation] = domain.DefaultElevation
	in[domain.DurationHours] = domain.DefaultDurationHours
	for k, v := range overrides {
		in[k] = v
	}
	return in
}

func TestInferReferenceScores(t *testing.T) {
	sys := DefaultSystem()
	cases := []struct {
		name string
		in   map[string]float64
		want float64
	}{
		{"defaults", baseInputs(nil), 50.0},
		{"safe scenic", baseInputs(map[string]float64{
			domain.Safety: 9, domain.IncidentSafety: 9, domain.ScenicBeauty: 9,
		}), 66.669999},
		{"dangerous with mid-band rest", baseInputs(map[string]float64{domain.Safety: 1}), 36.111111},
		{"easy safe", baseInputs(map[string]float64{domain.Difficulty: 3, domain.Safety: 8}), 50.0},
		{"hard", baseInputs(map[string]float64{domain.Difficulty: 8}), 50.0},
	}
	for _, tc := range cases {
		res, err := sys.Infer(tc.in)
		if err != nil {
			t.Fatalf("%s: Infer: %v", tc.name, err)
		}
		if math.Abs(res.Score-tc.want) > tol {
			t.Fatalf("%s: score = %.6f, want %.6f", tc.name, res.Score, tc.want)
		}
	}
}

func TestInferAllZero(t *testing.T) {
	in := make(map[string]float64, len(domain.Criteria))
	for _, c := range domain.Criteria {
		in[c] = 0
	}
	res, err := DefaultSystem().Infer(in)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if math.Abs(res.Score-20.830668) > tol {
		t.Fatalf("score = %.6f, want 20.830668", res.Score)
	}
	if res.Activations[VeryLow] != 1 || res.Activations[Low] != 1 || res.Activations[Medium] != 0 {
		t.Fatalf("unexpected activations %v", res.Activations)
	}
}

func TestFallbackFiresOnAnyMidBand(t *testing.T) {
	res, err := DefaultSystem().Infer(baseInputs(map[string]float64{domain.Safety: 1}))
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if res.Activations[VeryLow] != 1 {
		t.Fatalf("dangerous safety should fully activate very_low, got %v", res.Activations[VeryLow])
	}
	// The catch-all keeps medium at full strength because the other criteria
	// sit in their mid bands, pulling the centroid up to ~36.
	if res.Activations[Medium] != 1 {
		t.Fatalf("fallback should keep medium at 1, got %v", res.Activations[Medium])
	}
	last := res.Firings[len(res.Firings)-1]
	if !last.Fallback || last.Strength != 1 {
		t.Fatalf("expected fallback firing at full strength, got %+v", last)
	}
}

func TestInferMissingInput(t *testing.T) {
	in := baseInputs(nil)
	delete(in, domain.Safety)
	_, err := DefaultSystem().Infer(in)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	in = baseInputs(map[string]float64{domain.Safety: math.NaN()})
	_, err = DefaultSystem().Infer(in)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput for NaN, got %v", err)
	}
}

func TestInferNoActivation(t *testing.T) {
	rb := RuleBase{Rules: []Rule{{ID: "only_safe", Antecedent: Is(domain.Safety, "safe"), Consequent: High}}}
	sys, err := NewSystem(DefaultModel(), rb)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	res, err := sys.Infer(baseInputs(map[string]float64{domain.Safety: 0}))
	if !errors.Is(err, ErrNoActivation) {
		t.Fatalf("expected ErrNoActivation, got %v", err)
	}
	if len(res.Firings) != 1 || res.Firings[0].Strength != 0 {
		t.Fatalf("expected firings to be reported, got %+v", res.Firings)
	}
}

func TestCentroid(t *testing.T) {
	xs := []float64{0, 1, 2}
	got, err := Centroid(xs, []float64{1, 1, 1})
	if err != nil || math.Abs(got-1) > 1e-12 {
		t.Fatalf("rectangle centroid = %v, %v", got, err)
	}
	got, err = Centroid(xs, []float64{0, 1, 0})
	if err != nil || math.Abs(got-1) > 1e-12 {
		t.Fatalf("triangle centroid = %v, %v", got, err)
	}
	if _, err := Centroid(xs, []float64{0, 0, 0}); !errors.Is(err, ErrNoActivation) {
		t.Fatalf("expected ErrNoActivation, got %v", err)
	}
	if _, err := Centroid(xs, []float64{0, 0}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestNewSystemRejectsBadRules(t *testing.T) {
	cases := []Rule{
		{ID: "bad_criterion", Antecedent: Is("altitude", "high"), Consequent: High},
		{ID: "bad_label", Antecedent: Is(domain.Safety, "reckless"), Consequent: High},
		{ID: "bad_output", Antecedent: Is(domain.Safety, "safe"), Consequent: "superb"},
		{ID: "empty_and", Antecedent: And(), Consequent: High},
	}
	for _, r := range cases {
		if _, err := NewSystem(DefaultModel(), RuleBase{Rules: []Rule{r}}); err == nil {
			t.Fatalf("%s: expected validation error", r.ID)
		}
	}
	_, err := NewSystem(DefaultModel(), RuleBase{Rules: []Rule{{ID: "x", Antecedent: Is("altitude", "high"), Consequent: High}}})
	if !errors.Is(err, ErrUnknownCriterion) {
		t.Fatalf("expected ErrUnknownCriterion, got %v", err)
	}
}

func TestDefaultRuleBaseShape(t *testing.T) {
	rb := DefaultRuleBase()
	if len(rb.Rules) != 19 {
		t.Fatalf("expected 18 rules plus fallback, got %d", len(rb.Rules))
	}
	for i, r := range rb.Rules {
		if r.Fallback != (i == len(rb.Rules)-1) {
			t.Fatalf("only the last rule should be the fallback (rule %s)", r.ID)
		}
	}
	counts := map[string]int{}
	for _, r := range rb.Rules[:18] {
		counts[r.Consequent]++
	}
	want := map[string]int{VeryHigh: 2, High: 4, Medium: 4, Low: 4, VeryLow: 4}
	for k, v := range want {
		if counts[k] != v {
			t.Fatalf("consequent %s: %d rules, want %d", k, counts[k], v)
		}
	}
}

func TestInferScoreBounds(t *testing.T) {
	sys := DefaultSystem()
	rapid.Check(t, func(rt *rapid.T) {
		in := make(map[string]float64, len(domain.Criteria))
		for _, c := range domain.Criteria {
			in[c] = rapid.Float64Range(-20, 6000).Draw(rt, c)
		}
		res, err := sys.Infer(in)
		if errors.Is(err, ErrNoActivation) {
			return
		}
		if err != nil {
			rt.Fatalf("Infer: %v", err)
		}
		if res.Score < 0 || res.Score > 100 {
			rt.Fatalf("score %v outside [0,100]", res.Score)
		}
	})
}

func TestInferDeterministic(t *testing.T) {
	sys := DefaultSystem()
	in := baseInputs(map[string]float64{domain.ScenicBeauty: 7.3, domain.Difficulty: 6.1})
	a, err := sys.Infer(in)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	b, _ := sys.Infer(in)
	if a.Score != b.Score {
		t.Fatalf("repeated inference differs: %v vs %v", a.Score, b.Score)
	}
}

func TestOutputGridIsIntegerLattice(t *testing.T) {
	s := DefaultSystem()
	if len(s.grid) != 101 {
		t.Fatalf("expected 101 grid points, got %d", len(s.grid))
	}
	for i, x := range s.grid {
		if x != float64(i) {
			t.Fatalf("grid[%d] = %v, want %d", i, x, i)
		}
	}
	for label, curve := range s.curves {
		if len(curve) != len(s.grid) {
			t.Fatalf("curve %s sampled at %d points, want %d", label, len(curve), len(s.grid))
		}
	}
}
