// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// Trail catalog sources selected by configuration.

package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"trail-recommender/internal/cache"
	"trail-recommender/internal/config"
	"trail-recommender/internal/db"
	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
	"trail-recommender/internal/logging"
	"trail-recommender/internal/storage"
)

// Provider delivers the current trail catalog with defaults applied.
type Provider interface {
	Trails(ctx context.Context) ([]domain.TrailRecord, error)
	Source() string
}

// Closer is implemented by providers holding connections.
type Closer interface {
	Close() error
}

// New opens the provider named by cfg.Source and wraps it in a cache when
// caching is enabled.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logging.WithComponent(logger, "provider")

	var p Provider
	switch cfg.Source {
	case config.SourcePostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, serr.NewDataUnavailable(string(cfg.Source), err)
		}
		schema, err := db.DetectSchemaWithPool(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, serr.NewDataUnavailable(string(cfg.Source), err)
		}
		if !schema.Ready() {
			pool.Close()
			return nil, serr.NewDataUnavailable(string(cfg.Source), db.ErrSchemaMissing)
		}
		logger.Info("connected to trail database",
			logging.FieldDSN("dsn", cfg.DatabaseDSN), zap.String("server_version", schema.Server))
		p = &pooled{PostgresProvider: db.NewPostgresProvider(pool, logger)}
	case config.SourceSQLite:
		store, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, serr.NewDataUnavailable(string(cfg.Source), err)
		}
		if err := store.EnsureSchema(); err != nil {
			_ = store.Close()
			return nil, serr.NewDataUnavailable(string(cfg.Source), err)
		}
		p = NewSQLite(store, logger)
	case config.SourceJSON:
		p = NewFile(cfg.TrailsPath, logger)
	default:
		return nil, serr.NewInvalidInput(fmt.Sprintf("unknown source %q", cfg.Source), "use postgres, sqlite or json", nil)
	}

	if cfg.EnableCaching {
		p = NewCached(p, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	}
	return p, nil
}

// Close releases p's connections if it holds any.
func Close(p Provider) error {
	if c, ok := p.(Closer); ok {
		return c.Close()
	}
	return nil
}

type pooled struct {
	*db.PostgresProvider
}

func (p *pooled) Close() error {
	p.Pool().Close()
	return nil
}

// SQLite serves the catalog from a local SQLite store.
type SQLite struct {
	store  *storage.SQLiteStore
	logger *zap.Logger
}

func NewSQLite(store *storage.SQLiteStore, logger *zap.Logger) *SQLite {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLite{store: store, logger: logger}
}

func (s *SQLite) Source() string { return string(config.SourceSQLite) }

func (s *SQLite) Trails(ctx context.Context) ([]domain.TrailRecord, error) {
	raw, err := s.store.ListTrails(ctx)
	if err != nil {
		return nil, serr.NewDataUnavailable(s.Source(), err)
	}
	return normalize(s.logger, raw), nil
}

func (s *SQLite) Close() error { return s.store.Close() }

// File serves the catalog from a JSON file, re-read on every call.
type File struct {
	path   string
	logger *zap.Logger
}

func NewFile(path string, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &File{path: path, logger: logger}
}

func (f *File) Source() string { return string(config.SourceJSON) }

func (f *File) Trails(ctx context.Context) ([]domain.TrailRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := storage.LoadTrailsFromFile(f.path)
	if err != nil {
		return nil, serr.NewDataUnavailable(f.Source(), err)
	}
	return normalize(f.logger, raw), nil
}

// Static serves a fixed catalog.
type Static struct {
	Name    string
	Records []domain.TrailRecord
}

func (s Static) Source() string {
	if s.Name == "" {
		return "static"
	}
	return s.Name
}

func (s Static) Trails(context.Context) ([]domain.TrailRecord, error) {
	out := make([]domain.TrailRecord, len(s.Records))
	copy(out, s.Records)
	return out, nil
}

func normalize(logger *zap.Logger, raw []domain.RawTrail) []domain.TrailRecord {
	trails, dropped := domain.NormalizeAll(raw)
	if dropped > 0 {
		logger.Warn("dropped trail rows without id", zap.Int("dropped", dropped))
	}
	return trails
}

const catalogKey = "catalog"

// Cached memoizes the wrapped provider's catalog for a TTL. Concurrent misses
// share a single fetch.
type Cached struct {
	inner Provider
	ttl   time.Duration
	cache *cache.Cache[[]domain.TrailRecord]
	mu    sync.Mutex
}

func NewCached(inner Provider, ttl time.Duration) *Cached {
	return &Cached{inner: inner, ttl: ttl, cache: cache.New[[]domain.TrailRecord]()}
}

func (c *Cached) Source() string { return c.inner.Source() }

func (c *Cached) Trails(ctx context.Context) ([]domain.TrailRecord, error) {
	if v, ok := c.cache.Get(catalogKey); ok {
		return clone(v), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache.Get(catalogKey); ok {
		return clone(v), nil
	}
	v, err := c.inner.Trails(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(catalogKey, v, c.ttl)
	return clone(v), nil
}

// Invalidate drops the cached catalog.
func (c *Cached) Invalidate() { c.cache.Delete(catalogKey) }

func (c *Cached) Close() error { return Close(c.inner) }

func clone(in []domain.TrailRecord) []domain.TrailRecord {
	out := make([]domain.TrailRecord, len(in))
	copy(out, in)
	return out
}
