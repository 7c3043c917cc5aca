package tools

import (
	"context"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
	"trail-recommender/internal/recommend"
)

type ScoreTrailInput struct {
	TrailID  string             `json:"trail_id,omitempty" jsonschema:"catalog trail to score; ignored when criteria are given"`
	Name     string             `json:"name,omitempty" jsonschema:"label for an ad-hoc trail"`
	Criteria map[string]float64 `json:"criteria,omitempty" jsonschema:"ad-hoc criterion values; missing criteria use defaults"`
}

type ScoreTrailOutput struct {
	Explanation recommend.Explanation `json:"explanation"`
	AdHoc       bool                  `json:"ad_hoc"`
}

func ScoreTrail(ctx context.Context, deps Dependencies, input ScoreTrailInput) (*mcp.CallToolResult, ScoreTrailOutput, error) {
	if len(input.Criteria) > 0 {
		rec, err := adHocTrail(input)
		if err != nil {
			return callErrorFrom(err), ScoreTrailOutput{}, nil
		}
		return nil, ScoreTrailOutput{Explanation: deps.Engine.Explain(rec), AdHoc: true}, nil
	}
	id := strings.TrimSpace(input.TrailID)
	if id == "" {
		return callError(serr.CodeInvalidInput, "trail_id or criteria required", "provide a catalog trail_id or a criteria map"), ScoreTrailOutput{}, nil
	}
	trails, err := deps.Provider.Trails(ctx)
	if err != nil {
		return callErrorFrom(err), ScoreTrailOutput{}, nil
	}
	for _, t := range trails {
		if t.TrailID == id {
			return nil, ScoreTrailOutput{Explanation: deps.Engine.Explain(t)}, nil
		}
	}
	return callError(serr.CodeInvalidInput, "trail "+id+" not found", "use recommend_trails to list trail ids"), ScoreTrailOutput{}, nil
}

func adHocTrail(input ScoreTrailInput) (domain.TrailRecord, error) {
	raw := domain.RawTrail{TrailID: "ad-hoc", TrailName: input.Name}
	if id := strings.TrimSpace(input.TrailID); id != "" {
		raw.TrailID = id
	}
	keys := make([]string, 0, len(input.Criteria))
	for k := range input.Criteria {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ref := raw.CriterionRef(k)
		if ref == nil {
			return domain.TrailRecord{}, serr.NewInvalidInput("unknown criterion "+k, "see the trails://membership resource for criterion names", map[string]any{"criterion": k})
		}
		v := input.Criteria[k]
		*ref = &v
	}
	rec, _ := raw.Normalize()
	return rec, nil
}
