// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// Criterion names shared by the membership model, weights, and filters.

package domain

// Input criteria. The names double as preference-key suffixes
// (min_<criterion>, max_<criterion>) and as rule-file identifiers.
const (
	Elevation             = "elevation"
	DurationHours         = "duration_hours"
	Difficulty            = "difficulty"
	Safety                = "safety"
	FacilityQuality       = "facility_quality"
	CampsiteQuality       = "campsite_quality"
	ScenicBeauty          = "scenic_beauty"
	LandscapeVariety      = "landscape_variety"
	WindShelter           = "wind_shelter"
	WaterAvailability     = "water_availability"
	CommunicationCoverage = "communication_coverage"
	IncidentSafety        = "incident_safety"
	RouteVariety          = "route_variety"
)

// ScoreCriterion is the output variable of the fuzzy model.
const ScoreCriterion = "score"

// Criteria lists the thirteen inputs in canonical order.
var Criteria = []string{
	Elevation,
	DurationHours,
	Difficulty,
	Safety,
	FacilityQuality,
	CampsiteQuality,
	ScenicBeauty,
	LandscapeVariety,
	WindShelter,
	WaterAvailability,
	CommunicationCoverage,
	IncidentSafety,
	RouteVariety,
}

// Defaults applied to missing attributes.
const (
	DefaultScale         = 5.0
	DefaultElevation     = 2000.0
	DefaultDurationHours = 24.0
)

// IsCriterion reports whether name is one of the thirteen inputs.
func IsCriterion(name string) bool {
	for _, c := range Criteria {
		if c == name {
			return true
		}
	}
	return false
}
