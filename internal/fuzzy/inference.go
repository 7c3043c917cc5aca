package fuzzy

import (
	"fmt"
	"math"
)

// System couples a model with a validated rule base. It is immutable and
// safe for concurrent use.
type System struct {
	model  *Model
	rules  RuleBase
	grid   []float64
	curves map[string][]float64
}

// NewSystem validates rb against m and precomputes the sampled output sets.
func NewSystem(m *Model, rb RuleBase) (*System, error) {
	if m == nil {
		return nil, fmt.Errorf("nil model")
	}
	if err := rb.Validate(m); err != nil {
		return nil, err
	}
	out := m.Output()
	s := &System{model: m, rules: rb, curves: make(map[string][]float64, len(out.Sets))}
	// The aggregated output is sampled only on the integer lattice of the
	// universe. Points where a clipped set crosses its cut level are not
	// inserted, so centroids can drift by roughly 0.01 from an exact
	// integration and a score within that distance of a category boundary
	// may bin differently.
	for x := math.Ceil(out.Min); x <= out.Max; x++ {
		s.grid = append(s.grid, x)
	}
	for _, set := range out.Sets {
		curve := make([]float64, len(s.grid))
		for i, x := range s.grid {
			curve[i] = set.Shape.Degree(x)
		}
		s.curves[set.Label] = curve
	}
	return s, nil
}

// DefaultSystem is the canonical model with the canonical rules. It panics
// if either is inconsistent.
func DefaultSystem() *System {
	s, err := NewSystem(DefaultModel(), DefaultRuleBase())
	if err != nil {
		panic(fmt.Sprintf("fuzzy: default system: %v", err))
	}
	return s
}

func (s *System) Model() *Model { return s.model }

func (s *System) RuleBase() RuleBase { return s.rules }

func (s *System) RuleCount() int { return len(s.rules.Rules) }

// Firing is the strength one rule reached for one input.
type Firing struct {
	RuleID     string  `json:"rule_id"`
	Consequent string  `json:"consequent"`
	Strength   float64 `json:"strength"`
	Fallback   bool    `json:"fallback,omitempty"`
}

// Result holds the defuzzified score and the intermediate activations.
type Result struct {
	Score       float64            `json:"score"`
	Activations map[string]float64 `json:"activations"`
	Firings     []Firing           `json:"firings"`
}

// Infer runs Mamdani inference: min/max rule evaluation, min implication,
// max aggregation over the integer output grid and centroid defuzzification.
// Every input criterion of the model must be present and non-NaN.
// On ErrNoActivation the returned Result still carries the firings.
func (s *System) Infer(inputs map[string]float64) (Result, error) {
	for _, name := range s.model.order {
		v, ok := inputs[name]
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingInput, name)
		}
		if math.IsNaN(v) {
			return Result{}, fmt.Errorf("%w: %s is NaN", ErrMissingInput, name)
		}
	}

	degree := func(criterion, label string) (float64, error) {
		v, ok := inputs[criterion]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingInput, criterion)
		}
		return s.model.Degree(criterion, label, v)
	}

	res := Result{
		Activations: make(map[string]float64, len(s.curves)),
		Firings:     make([]Firing, 0, len(s.rules.Rules)),
	}
	for label := range s.curves {
		res.Activations[label] = 0
	}
	for _, r := range s.rules.Rules {
		strength, err := r.Antecedent.Eval(degree)
		if err != nil {
			return Result{}, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		res.Firings = append(res.Firings, Firing{
			RuleID:     r.ID,
			Consequent: r.Consequent,
			Strength:   strength,
			Fallback:   r.Fallback,
		})
		if strength > res.Activations[r.Consequent] {
			res.Activations[r.Consequent] = strength
		}
	}

	ys := make([]float64, len(s.grid))
	for label, curve := range s.curves {
		act := res.Activations[label]
		if act == 0 {
			continue
		}
		for i, mu := range curve {
			ys[i] = max(ys[i], min(act, mu))
		}
	}
	score, err := Centroid(s.grid, ys)
	if err != nil {
		return res, err
	}
	res.Score = score
	return res, nil
}

// Centroid integrates the piecewise-linear curve through (xs[i], ys[i])
// segment by segment. A curve with zero area yields ErrNoActivation.
func Centroid(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, fmt.Errorf("centroid: %d xs vs %d ys", len(xs), len(ys))
	}
	var moment, area float64
	for i := 1; i < len(xs); i++ {
		x1, x2 := xs[i-1], xs[i]
		y1, y2 := ys[i-1], ys[i]
		if (y1 == 0 && y2 == 0) || x1 == x2 {
			continue
		}
		var m, a float64
		switch {
		case y1 == y2:
			m = 0.5 * (x1 + x2)
			a = (x2 - x1) * y1
		case y1 == 0:
			m = 2.0/3.0*(x2-x1) + x1
			a = 0.5 * (x2 - x1) * y2
		case y2 == 0:
			m = 1.0/3.0*(x2-x1) + x1
			a = 0.5 * (x2 - x1) * y1
		default:
			m = (2.0/3.0*(x2-x1)*(y2+0.5*y1))/(y1+y2) + x1
			a = 0.5 * (x2 - x1) * (y1 + y2)
		}
		moment += m * a
		area += a
	}
	if area == 0 {
		return 0, ErrNoActivation
	}
	return moment / area, nil
}
