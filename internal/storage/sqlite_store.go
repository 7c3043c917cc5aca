package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"trail-recommender/internal/domain"
)

// SQLiteStore keeps a local trail catalog. Criterion columns are nullable so
// missing attributes survive the round trip and pick up defaults on Normalize.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func criterionColumns() string {
	return strings.Join(domain.Criteria, ", ")
}

func (s *SQLiteStore) EnsureSchema() error {
	var cols strings.Builder
	for _, c := range domain.Criteria {
		fmt.Fprintf(&cols, "  %s REAL,\n", c)
	}
	createTable := `
CREATE TABLE IF NOT EXISTS hiking_trails (
  trail_id TEXT PRIMARY KEY,
  trail_name TEXT NOT NULL DEFAULT '',
  mountain_id TEXT NOT NULL DEFAULT '',
  mountain_name TEXT NOT NULL DEFAULT '',
` + cols.String() + `  status TEXT NOT NULL DEFAULT '',
  trail_description TEXT NOT NULL DEFAULT '',
  trailhead_location TEXT NOT NULL DEFAULT '',
  mountain_location TEXT NOT NULL DEFAULT '',
  mountain_description TEXT NOT NULL DEFAULT '',
  thumbnail_url TEXT NOT NULL DEFAULT ''
);
`
	if _, err := s.db.Exec(createTable); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_hiking_trails_mountain ON hiking_trails(mountain_name, trail_name);`); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) CountTrails(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hiking_trails`).Scan(&n)
	return n, err
}

// UpsertMany writes rows keyed by trail id, replacing earlier versions.
// Rows without a trail id are skipped and counted.
func (s *SQLiteStore) UpsertMany(ctx context.Context, items []domain.RawTrail) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", 10+len(domain.Criteria)), ", ")
	stmt, err := tx.PrepareContext(ctx, `
INSERT OR REPLACE INTO hiking_trails
(trail_id, trail_name, mountain_id, mountain_name, `+criterionColumns()+`,
 status, trail_description, trailhead_location, mountain_location, mountain_description, thumbnail_url)
VALUES (`+placeholders+`)
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	skipped := 0
	for i := range items {
		r := items[i]
		if strings.TrimSpace(r.TrailID) == "" {
			skipped++
			continue
		}
		args := []any{r.TrailID, r.TrailName, r.MountainID, r.MountainName}
		for _, c := range domain.Criteria {
			args = append(args, *r.CriterionRef(c))
		}
		args = append(args, r.Status, r.TrailDescription, r.TrailheadLocation,
			r.MountainLocation, r.MountainDescription, r.ThumbnailURL)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return skipped, fmt.Errorf("upsert trail %s: %w", r.TrailID, err)
		}
	}
	return skipped, tx.Commit()
}

// ListTrails returns every stored row ordered by mountain then trail name.
func (s *SQLiteStore) ListTrails(ctx context.Context) ([]domain.RawTrail, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT trail_id, trail_name, mountain_id, mountain_name, `+criterionColumns()+`,
       status, trail_description, trailhead_location, mountain_location, mountain_description, thumbnail_url
FROM hiking_trails
ORDER BY mountain_name, trail_name, trail_id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RawTrail
	for rows.Next() {
		var r domain.RawTrail
		dest := []any{&r.TrailID, &r.TrailName, &r.MountainID, &r.MountainName}
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
