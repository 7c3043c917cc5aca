package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"trail-recommender/internal/config"
	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
	"trail-recommender/internal/storage"
)

type countingProvider struct {
	calls atomic.Int32
	err   error
}

func (c *countingProvider) Source() string { return "counting" }

func (c *countingProvider) Trails(context.Context) ([]domain.TrailRecord, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return []domain.TrailRecord{{TrailID: "t1", MountainName: "Gede"}}, nil
}

func TestCachedMemoizes(t *testing.T) {
	inner := &countingProvider{}
	c := NewCached(inner, time.Minute)
	for i := 0; i < 3; i++ {
		got, err := c.Trails(context.Background())
		if err != nil || len(got) != 1 {
			t.Fatalf("Trails() = %v, %v", got, err)
		}
		got[0].TrailID = "mutated"
	}
	if n := inner.calls.Load(); n != 1 {
		t.Fatalf("expected 1 upstream call, got %d", n)
	}
	got, _ := c.Trails(context.Background())
	if got[0].TrailID != "t1" {
		t.Fatalf("cached catalog was mutated through a returned slice")
	}
	c.Invalidate()
	if _, err := c.Trails(context.Background()); err != nil {
		t.Fatalf("Trails after invalidate: %v", err)
	}
	if n := inner.calls.Load(); n != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", n)
	}
	if c.Source() != "counting" {
		t.Fatalf("unexpected source %s", c.Source())
	}
}

func TestCachedDoesNotStoreErrors(t *testing.T) {
	inner := &countingProvider{err: errors.New("down")}
	c := NewCached(inner, time.Minute)
	_, _ = c.Trails(context.Background())
	_, _ = c.Trails(context.Background())
	if n := inner.calls.Load(); n != 2 {
		t.Fatalf("errors must not be cached, got %d calls", n)
	}
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trails.json")
	body := `[{"trail_id":"t1","mountain_name":"Slamet","safety":9},{"trail_name":"no id"}]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := New(context.Background(), config.Config{Source: config.SourceJSON, TrailsPath: path}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := p.Trails(context.Background())
	if err != nil {
		t.Fatalf("Trails: %v", err)
	}
	if len(got) != 1 || got[0].Safety != 9 || got[0].Elevation != domain.DefaultElevation {
		t.Fatalf("unexpected catalog %+v", got)
	}
	if p.Source() != "json" {
		t.Fatalf("unexpected source %s", p.Source())
	}

	missing := NewFile(filepath.Join(t.TempDir(), "nope.json"), nil)
	if _, err := missing.Trails(context.Background()); serr.CodeOf(err) != serr.CodeDataUnavailable {
		t.Fatalf("expected DATA_UNAVAILABLE, got %v", err)
	}
}

func TestSQLiteProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trails.db")
	store, err := storage.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := store.EnsureSchema(); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	safety := 4.0
	if _, err := store.UpsertMany(context.Background(), []domain.RawTrail{{TrailID: "t1", MountainName: "Sindoro", Safety: &safety}}); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}
	_ = store.Close()

	p, err := New(context.Background(), config.Config{Source: config.SourceSQLite, SQLitePath: path, EnableCaching: true, CacheTTLSeconds: 30}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = Close(p) })
	if _, ok := p.(*Cached); !ok {
		t.Fatalf("expected cached provider, got %T", p)
	}
	got, err := p.Trails(context.Background())
	if err != nil {
		t.Fatalf("Trails: %v", err)
	}
	if len(got) != 1 || got[0].Safety != 4 || got[0].Difficulty != domain.DefaultScale {
		t.Fatalf("unexpected catalog %+v", got)
	}
}

func TestStatic(t *testing.T) {
	s := Static{Records: []domain.TrailRecord{{TrailID: "a"}}}
	got, _ := s.Trails(context.Background())
	got[0].TrailID = "b"
	if s.Records[0].TrailID != "a" || s.Source() != "static" {
		t.Fatalf("static provider leaked its records")
	}
	if err := Close(s); err != nil {
		t.Fatalf("Close on static: %v", err)
	}
}
