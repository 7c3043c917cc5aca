package recommend

import "strings"

// TranslateIntent maps conversational intent parameters onto preference
// thresholds. Unrecognised parameters and values are ignored.
//
//	difficulty: beginner -> max_difficulty 4, intermediate -> max_difficulty 7
//	safety:     safe -> min_safety 6
//	duration:   day_hike -> max_duration_hours 18
func TranslateIntent(params map[string]string) Preferences {
	prefs := Preferences{}
	for k, v := range params {
		val := strings.ToLower(strings.TrimSpace(v))
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "difficulty", "kesulitan":
			switch val {
			case "beginner", "easy", "pemula":
				prefs["max_difficulty"] = 4
			case "intermediate", "medium", "menengah":
				prefs["max_difficulty"] = 7
			}
		case "safety", "keamanan":
			if val == "safe" || val == "aman" {
				prefs["min_safety"] = 6
			}
		case "duration", "durasi":
			if val == "day_hike" || val == "day" || val == "tektok" {
				prefs["max_duration_hours"] = 18
			}
		}
	}
	return prefs
}
