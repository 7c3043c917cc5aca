// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// Integration tests against a live PostgreSQL trail catalog.

//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"trail-recommender/internal/config"
	"trail-recommender/internal/db"
	"trail-recommender/internal/fuzzy"
	"trail-recommender/internal/provider"
	"trail-recommender/internal/recommend"
)

func postgresConfig(t *testing.T) config.Config {
	t.Helper()
	dsn := os.Getenv("TRAILREC_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TRAILREC_DATABASE_DSN not set; integration tests need a PostgreSQL database")
	}
	return config.Config{
		Source:                config.SourcePostgres,
		DatabaseDSN:           dsn,
		ConnectTimeoutSeconds: 5,
		StatementTimeoutMs:    30000,
		AppName:               "trail-recommender-integration",
		MaxRows:               200,
		ScoringWorkers:        4,
	}
}

func seed(t *testing.T, cfg config.Config) {
	t.Helper()
	ctx := context.Background()
	schema, err := os.ReadFile("testdata/schema.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer pool.Close()
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s, err := db.DetectSchemaWithPool(ctx, pool)
	if err != nil || !s.Ready() {
		t.Fatalf("schema not ready: %+v, %v", s, err)
	}
}

func TestPostgresProviderScoresCatalog(t *testing.T) {
	cfg := postgresConfig(t)
	seed(t, cfg)
	ctx := context.Background()

	p, err := provider.New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("provider.New: %v", err)
	}
	defer provider.Close(p)

	trails, err := p.Trails(ctx)
	if err != nil {
		t.Fatalf("Trails: %v", err)
	}
	byID := map[string]bool{}
	for _, tr := range trails {
		byID[tr.TrailID] = true
		if tr.TrailID == "it-t2" && (tr.Elevation != 2000 || tr.Safety != 5) {
			t.Fatalf("defaults not applied by query: %+v", tr)
		}
	}
	if !byID["it-t1"] || !byID["it-t2"] {
		t.Fatalf("seeded trails missing from %d rows", len(trails))
	}

	engine, err := recommend.NewEngine(fuzzy.DefaultSystem(), recommend.WithWorkers(cfg.ScoringWorkers))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	res, err := engine.ScoreAndRank(ctx, trails, recommend.Preferences{"min_scenic": 9})
	if err != nil {
		t.Fatalf("ScoreAndRank: %v", err)
	}
	found := false
	for _, m := range res.Mountains {
		if m.MountainName == "IT Rinjani" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected IT Rinjani among %d mountains", len(res.Mountains))
	}
}
