package recommend

import (
	"sort"
	"strings"

	serr "trail-recommender/internal/errors"
)

// Preset is a named preference profile.
type Preset struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Preferences Preferences `json:"preferences"`
}

// Presets returns the built-in profiles in a stable order.
func Presets() []Preset {
	return []Preset{
		{
			Name:        "beginner",
			Description: "easy, safe, short routes with reliable water below 3000 m",
			Preferences: Preferences{
				"max_difficulty":     5,
				"min_safety":         7,
				"max_duration_hours": 20,
				"min_water":          6,
				"max_elevation":      3000,
			},
		},
		{
			Name:        "experienced",
			Description: "scenic routes of any difficulty with acceptable safety",
			Preferences: Preferences{
				"min_scenic":     8,
				"min_safety":     5,
				"max_difficulty": 10,
			},
		},
		{
			Name:        "general",
			Description: "no constraints",
			Preferences: Preferences{},
		},
	}
}

// PresetByName looks a preset up case-insensitively.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetNames lists the preset names sorted.
func PresetNames() []string {
	ps := Presets()
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	sort.Strings(out)
	return out
}

// WithPreset overlays explicit thresholds on the named preset. An empty name
// means no preset.
func WithPreset(name string, explicit Preferences) (Preferences, error) {
	base := Preferences{}
	if strings.TrimSpace(name) != "" {
		p, ok := PresetByName(name)
		if !ok {
			return nil, serr.NewInvalidInput("unknown preset "+name,
				"use one of "+strings.Join(PresetNames(), ", "), map[string]any{"preset": name})
		}
		base = p.Preferences
	}
	return base.Merge(explicit), nil
}
