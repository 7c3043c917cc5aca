package dbsql

const (
	TrailsTable    = "hiking_trails"
	MountainsTable = "mountains"

	QueryServerVersion = "SHOW server_version"

	// QueryTrails returns one row per trail with missing attributes defaulted
	// (elevation 2000, duration 24, every 1..10 scale 5).
	QueryTrails = `
SELECT
    COALESCE(m.id::text, t.mountain_id::text, '')      AS mountain_id,
    t.trail_id::text                                   AS trail_id,
    COALESCE(t.trail_name, '')                         AS trail_name,
    COALESCE(m.name, '')                               AS mountain_name,
    COALESCE(m.elevation, 2000)::float8                AS elevation,
    COALESCE(t.duration_hours, 24)::float8             AS duration_hours,
    COALESCE(t.difficulty, 5)::float8                  AS difficulty,
    COALESCE(t.safety, 5)::float8                      AS safety,
    COALESCE(t.facility_quality, 5)::float8            AS facility_quality,
    COALESCE(t.campsite_quality, 5)::float8            AS campsite_quality,
    COALESCE(t.scenic_beauty, 5)::float8               AS scenic_beauty,
    COALESCE(t.landscape_variety, 5)::float8           AS landscape_variety,
    COALESCE(t.wind_shelter, 5)::float8                AS wind_shelter,
    COALESCE(t.water_availability, 5)::float8          AS water_availability,
    COALESCE(t.communication_coverage, 5)::float8      AS communication_coverage,
    COALESCE(t.incident_safety, 5)::float8             AS incident_safety,
    COALESCE(t.route_variety, 5)::float8               AS route_variety,
    COALESCE(t.status, '')                             AS status,
    COALESCE(t.description, '')                        AS trail_description,
    COALESCE(t.trailhead_location, '')                 AS trailhead_location,
    COALESCE(m.location, '')                           AS mountain_location,
    COALESCE(m.description, '')                        AS mountain_description,
    COALESCE(m.thumbnail_url, '')                      AS thumbnail_url
FROM hiking_trails t
LEFT JOIN mountains m ON m.id = t.mountain_id
WHERE t.trail_id IS NOT NULL
ORDER BY mountain_name, trail_name`
)
