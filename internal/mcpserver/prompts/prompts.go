package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"trail-recommender/internal/mcpserver/tools"
)

const topN = 5

// RegisterAll registers all prompts with the MCP server.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	server.AddPrompt(&mcp.Prompt{Name: "/trails.beginner", Title: "Trails for beginners", Description: "Top mountains under the beginner preset"}, promptPreset(deps, "beginner"))
	server.AddPrompt(&mcp.Prompt{Name: "/trails.experienced", Title: "Trails for experienced hikers", Description: "Top mountains under the experienced preset"}, promptPreset(deps, "experienced"))
	server.AddPrompt(&mcp.Prompt{
		Name:        "/trails.explain",
		Title:       "Explain a trail score",
		Description: "Which rules fired for a trail and why it scored as it did",
		Arguments:   []*mcp.PromptArgument{{Name: "trail_id", Description: "catalog trail id", Required: true}},
	}, promptExplain(deps))
}

func promptPreset(deps tools.Dependencies, preset string) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("### Mountain recommendations (%s)\n", preset))

		res, out, err := tools.RecommendMountains(ctx, deps, tools.RecommendInput{Preset: preset, Limit: topN})
		switch {
		case err != nil:
			b.WriteString(fmt.Sprintf("Unable to rank mountains: %v\n", err))
		case res != nil && res.IsError:
			b.WriteString("Unable to rank mountains.\n")
			for _, c := range res.Content {
				if tc, ok := c.(*mcp.TextContent); ok {
					b.WriteString(fmt.Sprintf("- %s\n", tc.Text))
				}
			}
		case len(out.Mountains) == 0:
			b.WriteString("No trail satisfies these preferences. Suggest relaxing a threshold:\n")
			for _, a := range out.Metadata.PreferencesApplied {
				b.WriteString(fmt.Sprintf("- %s\n", a))
			}
		default:
			b.WriteString("| # | Mountain | Best trail | Score | Category |\n|---|---|---|---|---|\n")
			for i, m := range out.Mountains {
				b.WriteString(fmt.Sprintf("| %d | %s | %s | %.1f | %s |\n", i+1, m.MountainName, m.BestTrail, m.MaxScore, m.Category))
			}
			b.WriteString(fmt.Sprintf("\nFilters: %s\n", strings.Join(out.Metadata.PreferencesApplied, ", ")))
		}

		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("user"), Content: &mcp.TextContent{Text: "You are a hiking guide. Summarize the ranking and point out safety and water trade-offs."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Trail recommendations: " + preset, Messages: messages}, nil
	}
}

func promptExplain(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		trailID := ""
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			trailID = strings.TrimSpace(req.Params.Arguments["trail_id"])
		}
		if trailID == "" {
			msg := "### Trail score explanation\n- Provide `trail_id` argument.\n- Example: get_prompt /trails.explain arguments:{\"trail_id\":\"rinjani-sembalun\"}\n"
			messages := []*mcp.PromptMessage{
				{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: msg}},
			}
			return &mcp.GetPromptResult{Description: "Provide trail_id argument", Messages: messages}, nil
		}

		var b strings.Builder
		b.WriteString("### Trail score explanation\n")
		b.WriteString(fmt.Sprintf("**Trail**: %s\n\n", trailID))
		res, out, _ := tools.ScoreTrail(ctx, deps, tools.ScoreTrailInput{TrailID: trailID})
		if res != nil && res.IsError {
			b.WriteString("Trail could not be scored. Run `recommend_trails` to list trail ids.\n")
		} else {
			ex := out.Explanation
			b.WriteString(fmt.Sprintf("Score %.1f (%s): fuzzy %.1f, weighted %.1f\n\n", ex.Score, ex.Category, ex.FuzzyScore, ex.WeightedScore))
			b.WriteString("Rules fired:\n")
			for _, f := range ex.Fired {
				b.WriteString(fmt.Sprintf("- %s -> %s (%.2f)\n", f.RuleID, f.Consequent, f.Strength))
			}
			data, _ := json.MarshalIndent(ex.Memberships, "", "  ")
			b.WriteString(fmt.Sprintf("\nMemberships:\n```json\n%s\n```\n", string(data)))
		}

		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("user"), Content: &mcp.TextContent{Text: "You are a hiking guide. Explain the score in plain language using the rules that fired."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Explanation for " + trailID, Messages: messages}, nil
	}
}
