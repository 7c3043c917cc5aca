package recommend

import "trail-recommender/internal/domain"

// ConfusionMatrix counts binary outcomes for the "recommended" class.
type ConfusionMatrix struct {
	TruePositive  int `json:"true_positive"`
	FalsePositive int `json:"false_positive"`
	TrueNegative  int `json:"true_negative"`
	FalseNegative int `json:"false_negative"`
}

// Evaluation compares predictions against ground-truth labels.
type Evaluation struct {
	Evaluated int             `json:"evaluated"`
	Skipped   int             `json:"skipped"`
	Accuracy  float64         `json:"accuracy"`
	Precision float64         `json:"precision"`
	Recall    float64         `json:"recall"`
	F1        float64         `json:"f1"`
	Confusion ConfusionMatrix `json:"confusion_matrix"`
}

// Predicted is 1 for recommended and very_highly_recommended, else 0.
func Predicted(c domain.Category) int {
	if IsPositive(c) {
		return 1
	}
	return 0
}

// Evaluate scores predictions against truth (trail id -> 0/1). Trails
// without a label are counted in Skipped; any non-zero label is positive.
func Evaluate(scored []domain.ScoredTrail, truth map[string]int) Evaluation {
	var ev Evaluation
	for _, t := range scored {
		label, ok := truth[t.TrailID]
		if !ok {
			ev.Skipped++
			continue
		}
		ev.Evaluated++
		actual := label != 0
		predicted := Predicted(t.Category) == 1
		switch {
		case predicted && actual:
			ev.Confusion.TruePositive++
		case predicted && !actual:
			ev.Confusion.FalsePositive++
		case !predicted && !actual:
			ev.Confusion.TrueNegative++
		default:
			ev.Confusion.FalseNegative++
		}
	}
	cm := ev.Confusion
	ev.Accuracy = ratio(cm.TruePositive+cm.TrueNegative, ev.Evaluated)
	ev.Precision = ratio(cm.TruePositive, cm.TruePositive+cm.FalsePositive)
	ev.Recall = ratio(cm.TruePositive, cm.TruePositive+cm.FalseNegative)
	if ev.Precision+ev.Recall > 0 {
		ev.F1 = 2 * ev.Precision * ev.Recall / (ev.Precision + ev.Recall)
	}
	return ev
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
