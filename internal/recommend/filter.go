// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// User preference thresholds and the hard filter applied before scoring.

package recommend

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
)

// Preferences maps threshold keys such as min_safety or max_difficulty to
// their bound. Absent keys impose no constraint.
type Preferences map[string]float64

// FilterReport describes what a filter pass did with each key.
type FilterReport struct {
	Applied []string `json:"applied"`
	Ignored []string `json:"ignored,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
}

type bound struct {
	criterion string
	max       bool
}

// aliases maps short and legacy keys onto canonical min_/max_ criterion keys.
var aliases = map[string]string{
	"min_water":    "min_" + domain.WaterAvailability,
	"max_water":    "max_" + domain.WaterAvailability,
	"min_scenic":   "min_" + domain.ScenicBeauty,
	"max_scenic":   "max_" + domain.ScenicBeauty,
	"min_comms":    "min_" + domain.CommunicationCoverage,
	"max_comms":    "max_" + domain.CommunicationCoverage,
	"min_facility": "min_" + domain.FacilityQuality,
	"max_facility": "max_" + domain.FacilityQuality,
	"min_campsite": "min_" + domain.CampsiteQuality,
	"max_campsite": "max_" + domain.CampsiteQuality,
	"max_duration": "max_" + domain.DurationHours,
	"min_duration": "min_" + domain.DurationHours,
	"min_incident": "min_" + domain.IncidentSafety,
	"min_wind":     "min_" + domain.WindShelter,
	"min_routes":   "min_" + domain.RouteVariety,

	"max_kesulitan_skala":             "max_" + domain.Difficulty,
	"min_keamanan_skala":              "min_" + domain.Safety,
	"max_estimasi_waktu_jam":          "max_" + domain.DurationHours,
	"max_ketinggian_mdpl":             "max_" + domain.Elevation,
	"min_ketersediaan_air":            "min_" + domain.WaterAvailability,
	"min_keindahan_pemandangan_skala": "min_" + domain.ScenicBeauty,
	"min_jaringan_komunikasi":         "min_" + domain.CommunicationCoverage,
	"min_kualitas_fasilitas_skala":    "min_" + domain.FacilityQuality,
	"min_kualitas_kemah_skala":        "min_" + domain.CampsiteQuality,
	"min_perlindungan_angin":          "min_" + domain.WindShelter,
	"min_tingkat_keamanan_insiden":    "min_" + domain.IncidentSafety,
	"min_variasi_lanskap":             "min_" + domain.LandscapeVariety,
}

// Canonical resolves a preference key. ok is false when the key is not a
// min_/max_ threshold at all; known is false when it is shaped like one but
// names no criterion.
func Canonical(key string) (canonical string, ok, known bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if a, has := aliases[k]; has {
		k = a
	}
	b, ok := parseBound(k)
	if !ok {
		return "", false, false
	}
	return k, true, domain.IsCriterion(b.criterion)
}

func parseBound(key string) (bound, bool) {
	switch {
	case strings.HasPrefix(key, "min_"):
		return bound{criterion: strings.TrimPrefix(key, "min_")}, true
	case strings.HasPrefix(key, "max_"):
		return bound{criterion: strings.TrimPrefix(key, "max_"), max: true}, true
	}
	return bound{}, false
}

// Filter keeps the trails satisfying every recognised bound (inclusive).
// Keys are applied in sorted order and filtering stops once nothing is left.
// A record whose value is NaN fails any bound on that criterion.
func Filter(trails []domain.TrailRecord, prefs Preferences) ([]domain.TrailRecord, FilterReport) {
	report := FilterReport{Applied: []string{}}
	out := trails
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		limit := prefs[key]
		canonical, ok, known := Canonical(key)
		switch {
		case !ok:
			report.Ignored = append(report.Ignored, key)
			continue
		case !known:
			report.Skipped = append(report.Skipped, key)
			continue
		case math.IsNaN(limit):
			report.Skipped = append(report.Skipped, key)
			continue
		}
		if len(out) == 0 {
			continue
		}
		b, _ := parseBound(canonical)
		kept := make([]domain.TrailRecord, 0, len(out))
		for _, t := range out {
			v, _ := t.Value(b.criterion)
			if b.max && v <= limit || !b.max && v >= limit {
				kept = append(kept, t)
			}
		}
		out = kept
		op := ">="
		if b.max {
			op = "<="
		}
		report.Applied = append(report.Applied, fmt.Sprintf("%s %s %g", b.criterion, op, limit))
	}
	return out, report
}

// ParsePreferences decodes a JSON object of thresholds. Null values are
// dropped; numbers and numeric strings are accepted. A threshold key with any
// other value is an INVALID_PREFERENCE error. Keys that are not thresholds
// are kept when numeric, so Filter can report them as ignored, and dropped
// otherwise.
func ParsePreferences(data []byte) (Preferences, error) {
	prefs := Preferences{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return prefs, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, serr.NewInvalidPreference("preferences are not a JSON object", map[string]any{"error": err.Error()})
	}
	for key, msg := range raw {
		v, present, err := parseThreshold(msg)
		if err != nil {
			if _, threshold, _ := Canonical(key); !threshold {
				continue
			}
			return nil, serr.NewInvalidPreference(fmt.Sprintf("preference %q is not numeric", key), map[string]any{"key": key, "value": string(msg)})
		}
		if present {
			prefs[key] = v
		}
	}
	return prefs, nil
}

func parseThreshold(msg json.RawMessage) (float64, bool, error) {
	s := strings.TrimSpace(string(msg))
	if s == "null" {
		return 0, false, nil
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err == nil {
		return f, true, nil
	}
	var str string
	if err := json.Unmarshal(msg, &str); err != nil {
		return 0, false, err
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("non-finite threshold %q", str)
	}
	return f, true, nil
}

// Clone returns a copy safe to modify.
func (p Preferences) Clone() Preferences {
	out := make(Preferences, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge overlays other on p, returning a new map.
func (p Preferences) Merge(other Preferences) Preferences {
	out := p.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}
