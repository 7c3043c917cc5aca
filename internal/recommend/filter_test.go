package recommend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
)

func TestFilterAliasesAndLegacyKeys(t *testing.T) {
	trails := []domain.TrailRecord{
		trail("dry", "A", map[string]float64{domain.WaterAvailability: 2}),
		trail("wet", "A", map[string]float64{domain.WaterAvailability: 8}),
	}
	for _, key := range []string{"min_water", "min_water_availability", "min_ketersediaan_air", "MIN_WATER"} {
		kept, report := Filter(trails, Preferences{key: 6})
		require.Len(t, kept, 1, key)
		assert.Equal(t, "wet", kept[0].TrailID, key)
		assert.Equal(t, []string{"water_availability >= 6"}, report.Applied, key)
	}
}

func TestFilterInclusiveBounds(t *testing.T) {
	trails := []domain.TrailRecord{trail("edge", "A", map[string]float64{domain.Difficulty: 5, domain.Safety: 7})}
	kept, _ := Filter(trails, Preferences{"max_difficulty": 5, "min_safety": 7})
	assert.Len(t, kept, 1)
}

func TestFilterReportsUnknownKeys(t *testing.T) {
	trails := []domain.TrailRecord{trail("a", "A", nil)}
	kept, report := Filter(trails, Preferences{"colour": 3, "min_altitude": 100, "min_safety": 1})
	assert.Len(t, kept, 1)
	assert.Equal(t, []string{"colour"}, report.Ignored)
	assert.Equal(t, []string{"min_altitude"}, report.Skipped)
	assert.Equal(t, []string{"safety >= 1"}, report.Applied)
}

func TestFilterNaNValueFails(t *testing.T) {
	trails := []domain.TrailRecord{trail("nan", "A", map[string]float64{domain.Safety: math.NaN()})}
	kept, _ := Filter(trails, Preferences{"min_safety": 0})
	assert.Empty(t, kept)
	kept, _ = Filter(trails, Preferences{"max_safety": 10})
	assert.Empty(t, kept)
}

func TestFilterNoPreferences(t *testing.T) {
	trails := []domain.TrailRecord{trail("a", "A", nil), trail("b", "B", nil)}
	kept, report := Filter(trails, nil)
	assert.Len(t, kept, 2)
	assert.Empty(t, report.Applied)
}

func TestFilterMonotonicAndConjunctive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(rt, "n")
		trails := make([]domain.TrailRecord, n)
		for i := range trails {
			trails[i] = trail("t", "M", map[string]float64{
				domain.Difficulty: rapid.Float64Range(0, 10).Draw(rt, "difficulty"),
				domain.Safety:     rapid.Float64Range(0, 10).Draw(rt, "safety"),
			})
		}
		maxDiff := rapid.Float64Range(0, 10).Draw(rt, "max_difficulty")
		minSafety := rapid.Float64Range(0, 10).Draw(rt, "min_safety")

		loose, _ := Filter(trails, Preferences{"max_difficulty": maxDiff})
		strict, _ := Filter(trails, Preferences{"max_difficulty": maxDiff, "min_safety": minSafety})
		if len(strict) > len(loose) {
			rt.Fatalf("adding a threshold grew the result: %d > %d", len(strict), len(loose))
		}
		for _, tr := range strict {
			if tr.Difficulty > maxDiff || tr.Safety < minSafety {
				rt.Fatalf("survivor %+v violates thresholds", tr)
			}
		}
	})
}

func TestParsePreferences(t *testing.T) {
	prefs, err := ParsePreferences([]byte(`{"max_difficulty": 5, "min_safety": "7", "min_water": null, "min_scenic": ""}`))
	require.NoError(t, err)
	assert.Equal(t, Preferences{"max_difficulty": 5, "min_safety": 7}, prefs)

	prefs, err = ParsePreferences([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, prefs)
}

func TestParsePreferencesToleratesNonThresholdKeys(t *testing.T) {
	prefs, err := ParsePreferences([]byte(`{"max_difficulty": 5, "user_note": "weekend trip", "party": {"size": 3}, "group_size": 4}`))
	require.NoError(t, err)
	assert.Equal(t, Preferences{"max_difficulty": 5, "group_size": 4}, prefs)

	trails := []domain.TrailRecord{trail("easy", "A", nil), trail("hard", "B", map[string]float64{domain.Difficulty: 9})}
	kept, report := Filter(trails, prefs)
	require.Len(t, kept, 1)
	assert.Equal(t, "easy", kept[0].TrailID)
	assert.Equal(t, []string{"group_size"}, report.Ignored)
	assert.Equal(t, []string{"difficulty <= 5"}, report.Applied)
}

func TestParsePreferencesRejectsMalformed(t *testing.T) {
	for _, src := range []string{`[1,2]`, `{"min_safety": true}`, `{"min_safety": "high"}`, `{"min_safety": "NaN"}`, `{`} {
		_, err := ParsePreferences([]byte(src))
		require.Error(t, err, src)
		assert.Equal(t, serr.CodeInvalidPreference, serr.CodeOf(err), src)
	}
}

func TestCanonical(t *testing.T) {
	c, ok, known := Canonical("max_kesulitan_skala")
	assert.True(t, ok)
	assert.True(t, known)
	assert.Equal(t, "max_difficulty", c)

	_, ok, _ = Canonical("difficulty")
	assert.False(t, ok)

	_, ok, known = Canonical("min_altitude")
	assert.True(t, ok)
	assert.False(t, known)
}

func TestPreferencesMerge(t *testing.T) {
	base := Preferences{"min_safety": 5}
	merged := base.Merge(Preferences{"min_safety": 7, "max_difficulty": 4})
	assert.Equal(t, Preferences{"min_safety": 7, "max_difficulty": 4}, merged)
	assert.Equal(t, 5.0, base["min_safety"])
}
