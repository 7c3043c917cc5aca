package fuzzy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trail-recommender/internal/domain"
)

const sampleRules = `
rules:
  - id: scenic_safe_rare
    then: very_high
    when:
      all:
        - is: scenic_beauty.exceptional
        - is: safety.safe
        - is: incident_safety.rare_incidents
  - id: catch_all
    then: medium
    fallback: true
    when:
      any:
        - is: safety.fairly_safe
        - is: elevation.mid
`

func TestParseRuleBase(t *testing.T) {
	rb, err := ParseRuleBase([]byte(sampleRules))
	if err != nil {
		t.Fatalf("ParseRuleBase: %v", err)
	}
	if len(rb.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rb.Rules))
	}
	first := rb.Rules[0]
	if first.Consequent != VeryHigh || first.Antecedent.Op != OpAnd || len(first.Antecedent.Args) != 3 {
		t.Fatalf("unexpected first rule %+v", first)
	}
	if leaf := first.Antecedent.Args[2]; leaf.Criterion != domain.IncidentSafety || leaf.Label != "rare_incidents" {
		t.Fatalf("unexpected leaf %+v", leaf)
	}
	if !rb.Rules[1].Fallback || rb.Rules[1].Antecedent.Op != OpOr {
		t.Fatalf("unexpected fallback rule %+v", rb.Rules[1])
	}
	if _, err := NewSystem(DefaultModel(), rb); err != nil {
		t.Fatalf("parsed rules should validate: %v", err)
	}
}

func TestParseRuleBaseErrors(t *testing.T) {
	cases := map[string]string{
		"missing then": "rules:\n  - id: x\n    when: {is: safety.safe}\n",
		"bad leaf":     "rules:\n  - id: x\n    then: high\n    when: {is: safety}\n",
		"two kinds":    "rules:\n  - id: x\n    then: high\n    when: {is: safety.safe, any: [{is: safety.safe}]}\n",
		"bad yaml":     "rules: [",
	}
	for name, src := range cases {
		if _, err := ParseRuleBase([]byte(src)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDefaultRuleBaseSurvivesYAML(t *testing.T) {
	data, err := MarshalRuleBase(DefaultRuleBase())
	if err != nil {
		t.Fatalf("MarshalRuleBase: %v", err)
	}
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	rb, err := LoadRuleBase(path)
	if err != nil {
		t.Fatalf("LoadRuleBase: %v", err)
	}
	sys, err := NewSystem(DefaultModel(), rb)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	in := baseInputs(map[string]float64{domain.Safety: 9, domain.IncidentSafety: 9, domain.ScenicBeauty: 9})
	want, _ := DefaultSystem().Infer(in)
	got, err := sys.Infer(in)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if got.Score != want.Score {
		t.Fatalf("loaded rules score %v, canonical %v", got.Score, want.Score)
	}
}

func TestRuleBaseString(t *testing.T) {
	s := DefaultRuleBase().String()
	if !strings.Contains(s, "scenic_safe_rare: IF (scenic_beauty=exceptional AND safety=safe AND incident_safety=rare_incidents) THEN score=very_high") {
		t.Fatalf("unexpected rendering:\n%s", s)
	}
	if !strings.Contains(s, "midband_fallback: OTHERWISE IF") {
		t.Fatalf("fallback not rendered:\n%s", s)
	}
}

func TestLoadRuleBaseMissingFile(t *testing.T) {
	if _, err := LoadRuleBase(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadSystem(t *testing.T) {
	s, err := LoadSystem("")
	if err != nil || s.RuleCount() != 19 {
		t.Fatalf("LoadSystem(\"\") = %v, %v", s, err)
	}
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(sampleRules), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err = LoadSystem(path)
	if err != nil {
		t.Fatalf("LoadSystem: %v", err)
	}
	if s.RuleCount() != 2 {
		t.Fatalf("expected 2 rules, got %d", s.RuleCount())
	}
}
