package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"trail-recommender/internal/recommend"
)

type TranslatePreferencesInput struct {
	Params map[string]string `json:"params" jsonschema:"intent parameters such as difficulty=beginner, safety=safe, duration=day_hike"`
}

type TranslatePreferencesOutput struct {
	Preferences recommend.Preferences `json:"preferences"`
}

func TranslatePreferences(ctx context.Context, deps Dependencies, input TranslatePreferencesInput) (*mcp.CallToolResult, TranslatePreferencesOutput, error) {
	return nil, TranslatePreferencesOutput{Preferences: recommend.TranslateIntent(input.Params)}, nil
}
