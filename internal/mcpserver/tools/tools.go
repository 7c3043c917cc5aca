package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"trail-recommender/internal/config"
	serr "trail-recommender/internal/errors"
	"trail-recommender/internal/provider"
	"trail-recommender/internal/recommend"
)

type Dependencies struct {
	Provider provider.Provider
	Engine   *recommend.Engine
	Logger   *zap.Logger
	Config   config.Config
}

func Register(server *mcp.Server, deps Dependencies) {
	mcp.AddTool(server, &mcp.Tool{Name: "ping", Description: "ping the server"}, func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, PingOutput, error) {
		return Ping(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "engine_info", Description: "returns engine build, model and data source details"}, func(ctx context.Context, req *mcp.CallToolRequest, input EngineInfoInput) (*mcp.CallToolResult, EngineInfoOutput, error) {
		return EngineInfo(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "recommend_mountains", Description: "ranks mountains by their best trail score after applying preference thresholds"}, func(ctx context.Context, req *mcp.CallToolRequest, input RecommendInput) (*mcp.CallToolResult, RecommendMountainsOutput, error) {
		return RecommendMountains(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "recommend_trails", Description: "ranks individual trails by score after applying preference thresholds"}, func(ctx context.Context, req *mcp.CallToolRequest, input RecommendInput) (*mcp.CallToolResult, RecommendTrailsOutput, error) {
		return RecommendTrails(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "score_trail", Description: "scores one catalog or ad-hoc trail and explains which rules fired"}, func(ctx context.Context, req *mcp.CallToolRequest, input ScoreTrailInput) (*mcp.CallToolResult, ScoreTrailOutput, error) {
		return ScoreTrail(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "translate_preferences", Description: "maps conversational intent (difficulty, safety, duration) to preference thresholds"}, func(ctx context.Context, req *mcp.CallToolRequest, input TranslatePreferencesInput) (*mcp.CallToolResult, TranslatePreferencesOutput, error) {
		return TranslatePreferences(ctx, deps, input)
	})
}

// Ping tool

type PingInput struct {
	Message string `json:"message,omitempty" jsonschema:"optional message to echo"`
}

type PingOutput struct {
	Pong string `json:"pong"`
}

func Ping(ctx context.Context, deps Dependencies, input PingInput) (*mcp.CallToolResult, PingOutput, error) {
	msg := input.Message
	if msg == "" {
		msg = "pong"
	}
	return nil, PingOutput{Pong: msg}, nil
}

// EngineInfo tool

type EngineInfoInput struct{}

type EngineInfoOutput struct {
	Engine     recommend.EngineInfo `json:"engine"`
	TrailCount int                  `json:"trail_count"`
	Presets    []string             `json:"presets"`
	Available  bool                 `json:"available"`
}

func EngineInfo(ctx context.Context, deps Dependencies, input EngineInfoInput) (*mcp.CallToolResult, EngineInfoOutput, error) {
	out := EngineInfoOutput{
		Engine:  deps.Engine.Info(deps.Provider.Source()),
		Presets: recommend.PresetNames(),
	}
	trails, err := deps.Provider.Trails(ctx)
	if err != nil {
		deps.Logger.Warn("engine_info catalog unavailable", zap.Error(err))
		return nil, out, nil
	}
	out.TrailCount = len(trails)
	out.Available = true
	return nil, out, nil
}

// Meta contains pagination metadata.
type Meta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

func page[T any](items []T, limit, offset int) ([]T, Meta) {
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], Meta{Limit: limit, Offset: offset, Total: len(items)}
}

// Helper error creation
func callError(code serr.ErrorCode, msg, hint string) *mcp.CallToolResult {
	errObj := map[string]any{"code": code, "message": msg}
	if hint != "" {
		errObj["hint"] = hint
	}
	return &mcp.CallToolResult{
		IsError:           true,
		StructuredContent: errObj,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s: %s", code, msg)},
		},
	}
}

func callErrorFrom(err error) *mcp.CallToolResult {
	te := serr.ToToolError(err)
	return callError(te.Code, te.Message, te.Hint)
}

func normalizeLimitOffset(cfg config.Config, limit, offset int) (int, int) {
	if limit <= 0 {
		limit = cfg.MaxRows
	}
	if limit > cfg.MaxRows {
		limit = cfg.MaxRows
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
