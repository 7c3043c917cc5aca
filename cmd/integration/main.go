package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"trail-recommender/internal/config"
	"trail-recommender/internal/fuzzy"
	"trail-recommender/internal/mcpserver/tools"
	"trail-recommender/internal/provider"
	"trail-recommender/internal/recommend"
)

// Runs every tool once against the configured trail source and prints the
// results. Configure it like trail-mcp (flags, TRAILREC_* env or a config file).
func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	fmt.Println("Using source:", cfg.Source)

	logger, _ := zap.NewDevelopment()
	system, err := fuzzy.LoadSystem(cfg.RulesPath)
	if err != nil {
		panic(err)
	}
	engine, err := recommend.NewEngine(system, recommend.WithWorkers(cfg.ScoringWorkers), recommend.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	p, err := provider.New(ctx, cfg, logger)
	if err != nil {
		panic(err)
	}
	defer provider.Close(p)

	deps := tools.Dependencies{Provider: p, Engine: engine, Logger: logger, Config: cfg}

	// runners
	run("ping", func() (*mcp.CallToolResult, any, error) {
		return tools.Ping(ctx, deps, tools.PingInput{Message: "hello"})
	})
	run("engine_info", func() (*mcp.CallToolResult, any, error) {
		return tools.EngineInfo(ctx, deps, tools.EngineInfoInput{})
	})
	for _, name := range recommend.PresetNames() {
		preset := name
		run("recommend_mountains:"+preset, func() (*mcp.CallToolResult, any, error) {
			return tools.RecommendMountains(ctx, deps, tools.RecommendInput{Preset: preset, Limit: 5})
		})
	}
	var firstTrail string
	run("recommend_trails", func() (*mcp.CallToolResult, any, error) {
		res, out, err := tools.RecommendTrails(ctx, deps, tools.RecommendInput{Limit: 3})
		if len(out.Trails) > 0 {
			firstTrail = out.Trails[0].TrailID
		}
		return res, out, err
	})
	if firstTrail != "" {
		run("score_trail", func() (*mcp.CallToolResult, any, error) {
			return tools.ScoreTrail(ctx, deps, tools.ScoreTrailInput{TrailID: firstTrail})
		})
	}
	run("translate_preferences", func() (*mcp.CallToolResult, any, error) {
		return tools.TranslatePreferences(ctx, deps, tools.TranslatePreferencesInput{
			Params: map[string]string{"difficulty": "beginner", "safety": "safe", "duration": "day_hike"},
		})
	})
}

func run(name string, fn func() (*mcp.CallToolResult, any, error)) any {
	fmt.Printf("\n=== %s ===\n", name)
	res, out, err := fn()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return nil
	}
	if res != nil && res.IsError {
		fmt.Printf("tool error: %s\n", toJSON(res.StructuredContent))
		return nil
	}
	fmt.Println(toJSON(out))
	return out
}

func toJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("<json error: %v>", err)
	}
	return string(b)
}
