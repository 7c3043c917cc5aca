package recommend

import (
	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
	"trail-recommender/internal/fuzzy"
)

// Explanation breaks one trail's score down into its parts.
type Explanation struct {
	TrailID       string                        `json:"trail_id"`
	TrailName     string                        `json:"trail_name,omitempty"`
	FuzzyScore    float64                       `json:"fuzzy_score"`
	WeightedScore float64                       `json:"weighted_score"`
	Score         float64                       `json:"score"`
	Category      domain.Category               `json:"category"`
	Activations   map[string]float64            `json:"activations,omitempty"`
	Fired         []fuzzy.Firing                `json:"fired_rules"`
	Memberships   map[string]map[string]float64 `json:"memberships"`
	Error         string                        `json:"error,omitempty"`
}

// Explain scores t and reports the label activations, the rules that fired
// (strength > 0, in rule order) and the fuzzified inputs. Inference failures
// are reported in Error with the final score forced to 0.
func (e *Engine) Explain(t domain.TrailRecord) Explanation {
	inputs := t.Inputs()
	weighted, ok := e.weights.Score(t)
	ex := Explanation{
		TrailID:       t.TrailID,
		TrailName:     t.TrailName,
		WeightedScore: weighted,
		Fired:         []fuzzy.Firing{},
		Memberships:   make(map[string]map[string]float64, len(inputs)),
	}
	for _, v := range e.system.Model().Inputs() {
		if x, has := inputs[v.Name]; has {
			ex.Memberships[v.Name] = v.Degrees(x)
		}
	}

	res, err := e.system.Infer(inputs)
	ex.Activations = res.Activations
	for _, f := range res.Firings {
		if f.Strength > 0 {
			ex.Fired = append(ex.Fired, f)
		}
	}
	if err != nil {
		ex.Error = serr.NewInferenceFailure(t.TrailID, err).Error()
		ex.Category = Categorize(0)
		return ex
	}
	ex.FuzzyScore = res.Score
	ex.Score = Blend(res.Score, weighted, ok)
	ex.Category = Categorize(ex.Score)
	return ex
}
