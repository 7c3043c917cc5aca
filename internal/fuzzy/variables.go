package fuzzy

import (
	"fmt"
	"math"
	"sort"

	"trail-recommender/internal/domain"
)

// Output labels of the score variable.
const (
	VeryLow  = "very_low"
	Low      = "low"
	Medium   = "medium"
	High     = "high"
	VeryHigh = "very_high"
)

// OutputLabels lists the score labels from worst to best.
var OutputLabels = []string{VeryLow, Low, Medium, High, VeryHigh}

// Set is a named fuzzy set.
type Set struct {
	Label string    `json:"label"`
	Shape Trapezoid `json:"shape"`
}

// Variable is a criterion with an inclusive universe and its fuzzy sets.
type Variable struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Sets []Set   `json:"sets"`
}

// Clamp pins x into the universe.
func (v Variable) Clamp(x float64) float64 {
	return math.Max(v.Min, math.Min(v.Max, x))
}

// Set looks up a fuzzy set by label.
func (v Variable) Set(label string) (Set, bool) {
	for _, s := range v.Sets {
		if s.Label == label {
			return s, true
		}
	}
	return Set{}, false
}

// Degree evaluates one label at the clamped input.
func (v Variable) Degree(label string, x float64) (float64, error) {
	s, ok := v.Set(label)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnknownLabel, v.Name, label)
	}
	if math.IsNaN(x) {
		return 0, fmt.Errorf("%w: %s is NaN", ErrMissingInput, v.Name)
	}
	return s.Shape.Degree(v.Clamp(x)), nil
}

// Degrees fuzzifies x against every set.
func (v Variable) Degrees(x float64) map[string]float64 {
	out := make(map[string]float64, len(v.Sets))
	cx := v.Clamp(x)
	for _, s := range v.Sets {
		out[s.Label] = s.Shape.Degree(cx)
	}
	return out
}

// Validate checks the variable is structurally usable.
func (v Variable) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("variable without name")
	}
	if !(v.Min < v.Max) {
		return fmt.Errorf("variable %s: empty universe [%g,%g]", v.Name, v.Min, v.Max)
	}
	if len(v.Sets) == 0 {
		return fmt.Errorf("variable %s: no fuzzy sets", v.Name)
	}
	seen := make(map[string]bool, len(v.Sets))
	for _, s := range v.Sets {
		if s.Label == "" {
			return fmt.Errorf("variable %s: set without label", v.Name)
		}
		if seen[s.Label] {
			return fmt.Errorf("variable %s: duplicate label %q", v.Name, s.Label)
		}
		seen[s.Label] = true
		if err := s.Shape.Validate(); err != nil {
			return fmt.Errorf("variable %s.%s: %w", v.Name, s.Label, err)
		}
		if s.Shape.D < v.Min || s.Shape.A > v.Max {
			return fmt.Errorf("variable %s.%s: shape %s outside universe", v.Name, s.Label, s.Shape)
		}
	}
	return nil
}

// Gaps returns the integer points of the universe where every set has zero
// membership. Shared breakpoints such as elevation 1500 show up here.
func (v Variable) Gaps() []float64 {
	var gaps []float64
	for x := math.Ceil(v.Min); x <= v.Max; x++ {
		covered := false
		for _, s := range v.Sets {
			if s.Shape.Degree(x) > 0 {
				covered = true
				break
			}
		}
		if !covered {
			gaps = append(gaps, x)
		}
	}
	return gaps
}

// Model is the immutable set of input criteria plus the output variable.
type Model struct {
	inputs map[string]Variable
	order  []string
	output Variable
}

// NewModel validates and indexes the variables.
func NewModel(output Variable, inputs ...Variable) (*Model, error) {
	if err := output.Validate(); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	m := &Model{inputs: make(map[string]Variable, len(inputs)), output: output}
	for _, in := range inputs {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		if _, dup := m.inputs[in.Name]; dup {
			return nil, fmt.Errorf("duplicate criterion %q", in.Name)
		}
		m.inputs[in.Name] = in
		m.order = append(m.order, in.Name)
	}
	return m, nil
}

// Degree returns the membership of value in criterion.label.
func (m *Model) Degree(criterion, label string, value float64) (float64, error) {
	v, ok := m.inputs[criterion]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCriterion, criterion)
	}
	return v.Degree(label, value)
}

// Variable returns an input criterion by name.
func (m *Model) Variable(name string) (Variable, bool) {
	v, ok := m.inputs[name]
	return v, ok
}

// Inputs returns the input criteria in declaration order.
func (m *Model) Inputs() []Variable {
	out := make([]Variable, 0, len(m.order))
	for _, n := range m.order {
		out = append(out, m.inputs[n])
	}
	return out
}

// Names returns the input criterion names sorted.
func (m *Model) Names() []string {
	out := append([]string(nil), m.order...)
	sort.Strings(out)
	return out
}

func (m *Model) Output() Variable { return m.output }

// DefaultModel builds the canonical thirteen-criterion model.
func DefaultModel() *Model {
	m, err := NewModel(
		Variable{Name: domain.ScoreCriterion, Min: 0, Max: 100, Sets: AutoPartition(0, 100, OutputLabels)},
		Variable{Name: domain.Elevation, Min: 0, Max: 5500, Sets: []Set{
			{"low", Trapezoid{0, 0, 1000, 1500}},
			{"mid", Trapezoid{1500, 2000, 3000, 3500}},
			{"high", Trapezoid{3500, 4000, 5500, 5500}},
		}},
		Variable{Name: domain.DurationHours, Min: 0, Max: 100, Sets: []Set{
			{"short", Trapezoid{0, 0, 10, 14}},
			{"medium", Trapezoid{12, 18, 30, 36}},
			{"long", Trapezoid{34, 40, 80, 100}},
			{"expedition", Trapezoid{90, 100, 101, 101}},
		}},
		scale(domain.Difficulty, "easy", "medium", "hard"),
		scale(domain.Safety, "dangerous", "fairly_safe", "safe"),
		scale(domain.FacilityQuality, "minimal", "adequate", "complete"),
		scale(domain.CampsiteQuality, "poor", "adequate", "good"),
		Variable{Name: domain.ScenicBeauty, Min: 0, Max: 10, Sets: []Set{
			{"plain", Trapezoid{0, 0, 2, 4}},
			{"beautiful", Trapezoid{3, 5, 6, 7}},
			{"exceptional", Trapezoid{6, 8, 10, 10}},
		}},
		scale(domain.LandscapeVariety, "monotonous", "fairly_varied", "highly_varied"),
		scale(domain.WindShelter, "exposed", "partly_sheltered", "sheltered"),
		Variable{Name: domain.WaterAvailability, Min: 0, Max: 10, Sets: []Set{
			{"scarce", Trapezoid{0, 0, 1, 3}},
			{"limited", Trapezoid{2, 4, 5, 7}},
			{"abundant", Trapezoid{6, 8, 10, 10}},
		}},
		Variable{Name: domain.CommunicationCoverage, Min: 0, Max: 10, Sets: []Set{
			{"none", Trapezoid{0, 0, 1, 2}},
			{"limited", Trapezoid{2, 4, 5, 7}},
			{"good", Trapezoid{6, 8, 10, 10}},
		}},
		Variable{Name: domain.IncidentSafety, Min: 0, Max: 10, Sets: []Set{
			{"frequent_incidents", Trapezoid{0, 0, 2, 4}},
			{"moderate", Trapezoid{3, 5, 6, 8}},
			{"rare_incidents", Trapezoid{8, 9, 10, 10}},
		}},
		Variable{Name: domain.RouteVariety, Min: 0, Max: 10, Sets: []Set{
			{"single", Trapezoid{0, 0, 2, 3}},
			{"several", Trapezoid{4, 5, 6, 7}},
			{"many", Trapezoid{8, 9, 10, 10}},
		}},
	)
	if err != nil {
		panic(fmt.Sprintf("fuzzy: default model: %v", err))
	}
	return m
}

// scale builds the common low/mid/high layout on 0..10.
func scale(name, low, mid, high string) Variable {
	return Variable{Name: name, Min: 0, Max: 10, Sets: []Set{
		{low, Trapezoid{0, 0, 2, 4}},
		{mid, Trapezoid{3, 4, 5, 7}},
		{high, Trapezoid{6, 8, 10, 10}},
	}}
}
