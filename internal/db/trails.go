package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	dbsql "trail-recommender/internal/db/sql"
	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
)

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// PostgresProvider reads the trail catalog from the hiking_trails and
// mountains tables.
type PostgresProvider struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresProvider(pool *pgxpool.Pool, logger *zap.Logger) *PostgresProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresProvider{pool: pool, logger: logger}
}

func (p *PostgresProvider) Source() string { return "postgres" }

func (p *PostgresProvider) Trails(ctx context.Context) ([]domain.TrailRecord, error) {
	rows, err := p.pool.Query(ctx, dbsql.QueryTrails)
	if err != nil {
		return nil, serr.NewDataUnavailable(p.Source(), err)
	}
	defer rows.Close()
	raw, err := scanTrails(rows)
	if err != nil {
		return nil, serr.NewDataUnavailable(p.Source(), err)
	}
	trails, dropped := domain.NormalizeAll(raw)
	if dropped > 0 {
		p.logger.Warn("dropped trail rows without id", zap.Int("dropped", dropped))
	}
	return trails, nil
}

// Pool exposes the underlying pool for health checks.
func (p *PostgresProvider) Pool() *pgxpool.Pool { return p.pool }

func scanTrails(rows rowScanner) ([]domain.RawTrail, error) {
	var out []domain.RawTrail
	for rows.Next() {
		var r domain.RawTrail
		dest := []any{&r.MountainID, &r.TrailID, &r.TrailName, &r.MountainName}
		for _, c := range domain.Criteria {
			dest = append(dest, r.CriterionRef(c))
		}
		dest = append(dest, &r.Status, &r.TrailDescription, &r.TrailheadLocation,
			&r.MountainLocation, &r.MountainDescription, &r.ThumbnailURL)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
