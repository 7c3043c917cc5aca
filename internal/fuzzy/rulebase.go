package fuzzy

import d "trail-recommender/internal/domain"

// DefaultRuleBase returns the canonical rule set: eighteen explicit rules
// followed by the mid-band catch-all.
func DefaultRuleBase() RuleBase {
	return RuleBase{Rules: []Rule{
		{ID: "scenic_safe_rare", Consequent: VeryHigh, Antecedent: And(
			Is(d.ScenicBeauty, "exceptional"), Is(d.Safety, "safe"), Is(d.IncidentSafety, "rare_incidents"))},
		{ID: "varied_complete_watered", Consequent: VeryHigh, Antecedent: And(
			Is(d.LandscapeVariety, "highly_varied"), Is(d.FacilityQuality, "complete"),
			Is(d.WaterAvailability, "abundant"), Is(d.IncidentSafety, "rare_incidents"))},

		{ID: "safe_approachable", Consequent: High, Antecedent: And(
			Is(d.Safety, "safe"), Is(d.IncidentSafety, "rare_incidents"),
			Or(Is(d.Difficulty, "easy"), Is(d.Difficulty, "medium")))},
		{ID: "good_camping", Consequent: High, Antecedent: And(
			Is(d.CampsiteQuality, "good"), Is(d.WindShelter, "sheltered"), Is(d.WaterAvailability, "abundant"))},
		{ID: "scenic_varied_safe", Consequent: High, Antecedent: And(
			Is(d.ScenicBeauty, "exceptional"), Is(d.LandscapeVariety, "highly_varied"), Is(d.Safety, "safe"))},
		{ID: "well_serviced", Consequent: High, Antecedent: And(
			Is(d.FacilityQuality, "complete"), Is(d.CommunicationCoverage, "good"), Is(d.IncidentSafety, "rare_incidents"))},

		{ID: "moderate_all_round", Consequent: Medium, Antecedent: And(
			Is(d.Difficulty, "medium"), Is(d.Safety, "fairly_safe"), Is(d.IncidentSafety, "moderate"))},
		{ID: "demanding_but_supported", Consequent: Medium, Antecedent: And(
			Or(Is(d.DurationHours, "long"), Is(d.Elevation, "high")),
			Is(d.FacilityQuality, "complete"), Is(d.Safety, "safe"))},
		{ID: "many_routes", Consequent: Medium, Antecedent: And(
			Is(d.RouteVariety, "many"), Is(d.Safety, "fairly_safe"))},
		{ID: "pleasant_views", Consequent: Medium, Antecedent: And(
			Is(d.ScenicBeauty, "beautiful"), Is(d.LandscapeVariety, "fairly_varied"), Is(d.Safety, "fairly_safe"))},

		{ID: "bare_camping", Consequent: Low, Antecedent: And(
			Is(d.FacilityQuality, "minimal"), Is(d.CampsiteQuality, "poor"))},
		{ID: "exposed_dry", Consequent: Low, Antecedent: And(
			Is(d.WindShelter, "exposed"), Is(d.WaterAvailability, "limited"))},
		{ID: "no_signal", Consequent: Low, Antecedent: And(
			Is(d.CommunicationCoverage, "none"), Is(d.IncidentSafety, "moderate"))},
		{ID: "hard_unsupported", Consequent: Low, Antecedent: And(
			Is(d.Difficulty, "hard"), Is(d.FacilityQuality, "minimal"), Is(d.Safety, "fairly_safe"))},

		{ID: "dangerous", Consequent: VeryLow, Antecedent: Or(
			Is(d.Safety, "dangerous"), Is(d.IncidentSafety, "frequent_incidents"))},
		{ID: "hard_incident_prone", Consequent: VeryLow, Antecedent: And(
			Is(d.Difficulty, "hard"), Is(d.IncidentSafety, "frequent_incidents"))},
		{ID: "isolated", Consequent: VeryLow, Antecedent: And(
			Is(d.WaterAvailability, "scarce"), Is(d.FacilityQuality, "minimal"), Is(d.CommunicationCoverage, "none"))},
		{ID: "expedition_hazard", Consequent: VeryLow, Antecedent: And(
			Is(d.DurationHours, "expedition"), Is(d.Safety, "dangerous"), Is(d.WaterAvailability, "scarce"))},

		{ID: "midband_fallback", Consequent: Medium, Fallback: true, Antecedent: Or(
			Is(d.Safety, "fairly_safe"),
			Is(d.Difficulty, "medium"),
			Is(d.WaterAvailability, "limited"),
			Is(d.FacilityQuality, "adequate"),
			Is(d.CampsiteQuality, "adequate"),
			Is(d.ScenicBeauty, "beautiful"),
			Is(d.LandscapeVariety, "fairly_varied"),
			Is(d.WindShelter, "partly_sheltered"),
			Is(d.CommunicationCoverage, "limited"),
			Is(d.IncidentSafety, "moderate"),
			Is(d.RouteVariety, "several"),
			Is(d.DurationHours, "medium"),
			Is(d.Elevation, "mid"),
		)},
	}}
}
