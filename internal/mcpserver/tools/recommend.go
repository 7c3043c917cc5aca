package tools

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
	"trail-recommender/internal/logging"
	"trail-recommender/internal/recommend"
)

type RecommendInput struct {
	Preset      string         `json:"preset,omitempty" jsonschema:"optional preset name: beginner, experienced or general"`
	Preferences map[string]any `json:"preferences,omitempty" jsonschema:"threshold map such as {\"max_difficulty\":5,\"min_safety\":7}; overrides the preset"`
	Limit       int            `json:"limit,omitempty" jsonschema:"maximum rows to return"`
	Offset      int            `json:"offset,omitempty" jsonschema:"rows to skip"`
}

type RecommendMountainsOutput struct {
	Mountains []domain.MountainSummary `json:"mountain_table"`
	Metadata  recommend.Metadata       `json:"metadata"`
	Meta      Meta                     `json:"meta"`
}

type RecommendTrailsOutput struct {
	Trails   []domain.ScoredTrail `json:"trail_table"`
	Metadata recommend.Metadata   `json:"metadata"`
	Meta     Meta                 `json:"meta"`
}

func RecommendMountains(ctx context.Context, deps Dependencies, input RecommendInput) (*mcp.CallToolResult, RecommendMountainsOutput, error) {
	rep, err := runRecommendation(ctx, deps, "recommend_mountains", input)
	if err != nil {
		return callErrorFrom(err), RecommendMountainsOutput{}, nil
	}
	limit, offset := normalizeLimitOffset(deps.Config, input.Limit, input.Offset)
	rows, meta := page(rep.MountainTable, limit, offset)
	return nil, RecommendMountainsOutput{Mountains: rows, Metadata: rep.Metadata, Meta: meta}, nil
}

func RecommendTrails(ctx context.Context, deps Dependencies, input RecommendInput) (*mcp.CallToolResult, RecommendTrailsOutput, error) {
	rep, err := runRecommendation(ctx, deps, "recommend_trails", input)
	if err != nil {
		return callErrorFrom(err), RecommendTrailsOutput{}, nil
	}
	limit, offset := normalizeLimitOffset(deps.Config, input.Limit, input.Offset)
	rows, meta := page(rep.TrailTable, limit, offset)
	return nil, RecommendTrailsOutput{Trails: rows, Metadata: rep.Metadata, Meta: meta}, nil
}

// ResolvePreferences decodes the free-form threshold map and overlays it on
// the named preset.
func ResolvePreferences(preset string, raw map[string]any) (recommend.Preferences, error) {
	explicit := recommend.Preferences{}
	if len(raw) > 0 {
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, serr.NewInvalidPreference("preferences could not be encoded", map[string]any{"error": err.Error()})
		}
		if explicit, err = recommend.ParsePreferences(data); err != nil {
			return nil, err
		}
	}
	return recommend.WithPreset(preset, explicit)
}

func runRecommendation(ctx context.Context, deps Dependencies, tool string, input RecommendInput) (recommend.Report, error) {
	runID := recommend.NewRunID()
	logger := logging.WithRun(logging.WithTool(deps.Logger, tool), runID)

	prefs, err := ResolvePreferences(input.Preset, input.Preferences)
	if err != nil {
		return recommend.Report{}, err
	}
	trails, err := deps.Provider.Trails(ctx)
	if err != nil {
		logger.Warn("catalog unavailable", zap.Error(err))
		return recommend.Report{}, err
	}
	res, err := deps.Engine.ScoreAndRank(ctx, trails, prefs)
	if err != nil {
		return recommend.Report{}, serr.NewUnavailable(err.Error())
	}
	logger.Info("recommendation complete",
		zap.Int("trails", len(res.Trails)),
		zap.Int("mountains", len(res.Mountains)),
		zap.Int("failures", res.Failures))
	return recommend.BuildReport(res, prefs, deps.Engine.Info(deps.Provider.Source()), runID, time.Now()), nil
}
