package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	dbsql "trail-recommender/internal/db/sql"
)

// Schema reports which catalog tables are visible to the connection.
type Schema struct {
	HasTrails    bool   `json:"has_trails"`
	HasMountains bool   `json:"has_mountains"`
	Server       string `json:"server_version,omitempty"`
}

// Ready reports whether the trail query can run.
func (s Schema) Ready() bool { return s.HasTrails && s.HasMountains }

var ErrSchemaMissing = errors.New("trail catalog tables not found")

func DetectSchema(ctx context.Context, exec func(context.Context, string) (bool, error)) (*Schema, error) {
	check := func(table string) (bool, error) {
		return exec(ctx, "SELECT to_regclass('"+table+"') IS NOT NULL")
	}
	trails, err := check(dbsql.TrailsTable)
	if err != nil {
		return nil, err
	}
	mountains, err := check(dbsql.MountainsTable)
	if err != nil {
		return nil, err
	}
	return &Schema{HasTrails: trails, HasMountains: mountains}, nil
}

func DetectSchemaWithPool(ctx context.Context, pool *pgxpool.Pool) (*Schema, error) {
	s, err := DetectSchema(ctx, func(ctx context.Context, q string) (bool, error) {
		var ok bool
		if err := pool.QueryRow(ctx, q).Scan(&ok); err != nil {
			return false, err
		}
		return ok, nil
	})
	if err != nil {
		return nil, err
	}
	if err := pool.QueryRow(ctx, dbsql.QueryServerVersion).Scan(&s.Server); err != nil {
		return nil, fmt.Errorf("server version: %w", err)
	}
	return s, nil
}
