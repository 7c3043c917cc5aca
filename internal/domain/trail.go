// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// Trail records as delivered by providers and consumed by the engine.

package domain

import (
	"math"
	"strings"
)

// TrailRecord is one hiking route with all thirteen criteria resolved.
// A NaN criterion value marks the attribute as missing.
type TrailRecord struct {
	MountainID   string `json:"mountain_id"`
	TrailID      string `json:"trail_id"`
	TrailName    string `json:"trail_name"`
	MountainName string `json:"mountain_name"`

	Elevation             float64 `json:"elevation"`
	DurationHours         float64 `json:"duration_hours"`
	Difficulty            float64 `json:"difficulty"`
	Safety                float64 `json:"safety"`
	FacilityQuality       float64 `json:"facility_quality"`
	CampsiteQuality       float64 `json:"campsite_quality"`
	ScenicBeauty          float64 `json:"scenic_beauty"`
	LandscapeVariety      float64 `json:"landscape_variety"`
	WindShelter           float64 `json:"wind_shelter"`
	WaterAvailability     float64 `json:"water_availability"`
	CommunicationCoverage float64 `json:"communication_coverage"`
	IncidentSafety        float64 `json:"incident_safety"`
	RouteVariety          float64 `json:"route_variety"`

	Status              string `json:"status,omitempty"`
	TrailDescription    string `json:"trail_description,omitempty"`
	TrailheadLocation   string `json:"trailhead_location,omitempty"`
	MountainLocation    string `json:"mountain_location,omitempty"`
	MountainDescription string `json:"mountain_description,omitempty"`
	ThumbnailURL        string `json:"thumbnail_url,omitempty"`
}

// Value returns the named criterion. ok is false for unknown names.
func (t TrailRecord) Value(criterion string) (float64, bool) {
	switch criterion {
	case Elevation:
		return t.Elevation, true
	case DurationHours:
		return t.DurationHours, true
	case Difficulty:
		return t.Difficulty, true
	case Safety:
		return t.Safety, true
	case FacilityQuality:
		return t.FacilityQuality, true
	case CampsiteQuality:
		return t.CampsiteQuality, true
	case ScenicBeauty:
		return t.ScenicBeauty, true
	case LandscapeVariety:
		return t.LandscapeVariety, true
	case WindShelter:
		return t.WindShelter, true
	case WaterAvailability:
		return t.WaterAvailability, true
	case CommunicationCoverage:
		return t.CommunicationCoverage, true
	case IncidentSafety:
		return t.IncidentSafety, true
	case RouteVariety:
		return t.RouteVariety, true
	}
	return 0, false
}

// Inputs returns the non-missing criteria keyed by name.
func (t TrailRecord) Inputs() map[string]float64 {
	out := make(map[string]float64, len(Criteria))
	for _, c := range Criteria {
		v, _ := t.Value(c)
		if math.IsNaN(v) {
			continue
		}
		out[c] = v
	}
	return out
}

// RawTrail is a provider row where any criterion may be absent.
type RawTrail struct {
	MountainID   string `json:"mountain_id"`
	TrailID      string `json:"trail_id"`
	TrailName    string `json:"trail_name"`
	MountainName string `json:"mountain_name"`

	Elevation             *float64 `json:"elevation"`
	DurationHours         *float64 `json:"duration_hours"`
	Difficulty            *float64 `json:"difficulty"`
	Safety                *float64 `json:"safety"`
	FacilityQuality       *float64 `json:"facility_quality"`
	CampsiteQuality       *float64 `json:"campsite_quality"`
	ScenicBeauty          *float64 `json:"scenic_beauty"`
	LandscapeVariety      *float64 `json:"landscape_variety"`
	WindShelter           *float64 `json:"wind_shelter"`
	WaterAvailability     *float64 `json:"water_availability"`
	CommunicationCoverage *float64 `json:"communication_coverage"`
	IncidentSafety        *float64 `json:"incident_safety"`
	RouteVariety          *float64 `json:"route_variety"`

	Status              string `json:"status,omitempty"`
	TrailDescription    string `json:"trail_description,omitempty"`
	TrailheadLocation   string `json:"trailhead_location,omitempty"`
	MountainLocation    string `json:"mountain_location,omitempty"`
	MountainDescription string `json:"mountain_description,omitempty"`
	ThumbnailURL        string `json:"thumbnail_url,omitempty"`
}

// Normalize applies the attribute defaults. Rows without a trail id are
// invalid and return ok=false.
func (r RawTrail) Normalize() (TrailRecord, bool) {
	if strings.TrimSpace(r.TrailID) == "" {
		return TrailRecord{}, false
	}
	return TrailRecord{
		MountainID:   r.MountainID,
		TrailID:      r.TrailID,
		TrailName:    r.TrailName,
		MountainName: r.MountainName,

		Elevation:             orDefault(r.Elevation, DefaultElevation),
		DurationHours:         orDefault(r.DurationHours, DefaultDurationHours),
		Difficulty:            orDefault(r.Difficulty, DefaultScale),
		Safety:                orDefault(r.Safety, DefaultScale),
		FacilityQuality:       orDefault(r.FacilityQuality, DefaultScale),
		CampsiteQuality:       orDefault(r.CampsiteQuality, DefaultScale),
		ScenicBeauty:          orDefault(r.ScenicBeauty, DefaultScale),
		LandscapeVariety:      orDefault(r.LandscapeVariety, DefaultScale),
		WindShelter:           orDefault(r.WindShelter, DefaultScale),
		WaterAvailability:     orDefault(r.WaterAvailability, DefaultScale),
		CommunicationCoverage: orDefault(r.CommunicationCoverage, DefaultScale),
		IncidentSafety:        orDefault(r.IncidentSafety, DefaultScale),
		RouteVariety:          orDefault(r.RouteVariety, DefaultScale),

		Status:              r.Status,
		TrailDescription:    r.TrailDescription,
		TrailheadLocation:   r.TrailheadLocation,
		MountainLocation:    r.MountainLocation,
		MountainDescription: r.MountainDescription,
		ThumbnailURL:        r.ThumbnailURL,
	}, true
}

// NormalizeAll converts rows, dropping invalid ones. The second return is the
// number of rows dropped.
func NormalizeAll(rows []RawTrail) ([]TrailRecord, int) {
	out := make([]TrailRecord, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		t, ok := r.Normalize()
		if !ok {
			dropped++
			continue
		}
		out = append(out, t)
	}
	return out, dropped
}

func orDefault(v *float64, def float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return def
	}
	return *v
}

// CriterionRef returns a pointer to the nullable field backing criterion, or
// nil for unknown names. Row scanners use it to bind columns in Criteria order.
func (r *RawTrail) CriterionRef(criterion string) **float64 {
	switch criterion {
	case Elevation:
		return &r.Elevation
	case DurationHours:
		return &r.DurationHours
	case Difficulty:
		return &r.Difficulty
	case Safety:
		return &r.Safety
	case FacilityQuality:
		return &r.FacilityQuality
	case CampsiteQuality:
		return &r.CampsiteQuality
	case ScenicBeauty:
		return &r.ScenicBeauty
	case LandscapeVariety:
		return &r.LandscapeVariety
	case WindShelter:
		return &r.WindShelter
	case WaterAvailability:
		return &r.WaterAvailability
	case CommunicationCoverage:
		return &r.CommunicationCoverage
	case IncidentSafety:
		return &r.IncidentSafety
	case RouteVariety:
		return &r.RouteVariety
	}
	return nil
}
