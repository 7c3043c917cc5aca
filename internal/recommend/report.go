package recommend

import (
	"time"

	"github.com/google/uuid"

	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
	"trail-recommender/internal/version"
)

// EngineInfo describes the engine that produced a report.
type EngineInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Criteria  int    `json:"criteria"`
	Weighted  bool   `json:"weighted"`
	RuleCount int    `json:"rule_count"`
	Source    string `json:"source"`
}

// Info reports the engine's build and model details for a data source.
func (e *Engine) Info(source string) EngineInfo {
	b := version.Info()
	return EngineInfo{
		Version:   b.Version,
		Commit:    b.Commit,
		Criteria:  len(e.system.Model().Inputs()),
		Weighted:  len(e.weights) > 0,
		RuleCount: e.system.RuleCount(),
		Source:    source,
	}
}

// Metadata accompanies the two result tables.
type Metadata struct {
	TotalMountains       int                     `json:"total_mountains"`
	TotalTrails          int                     `json:"total_trails"`
	PreferencesApplied   []string                `json:"preferences_applied"`
	PreferencesIgnored   []string                `json:"preferences_ignored,omitempty"`
	Preferences          Preferences             `json:"preferences"`
	ScoreStats           ScoreStats              `json:"score_stats"`
	CategoryDistribution map[domain.Category]int `json:"category_distribution"`
	Failures             int                     `json:"failures"`
	Engine               EngineInfo              `json:"engine"`
	RunID                string                  `json:"run_id"`
	GeneratedAt          string                  `json:"generated_at"`
}

// Report is the document emitted by the CLI.
type Report struct {
	MountainTable []domain.MountainSummary `json:"mountain_table"`
	TrailTable    []domain.ScoredTrail     `json:"trail_table"`
	Metadata      Metadata                 `json:"metadata"`
}

// ErrorReport is emitted instead of a Report when a run fails.
type ErrorReport struct {
	Error         bool                     `json:"error"`
	Message       string                   `json:"message"`
	Code          serr.ErrorCode           `json:"code"`
	Hint          string                   `json:"hint,omitempty"`
	MountainTable []domain.MountainSummary `json:"mountain_table"`
	TrailTable    []domain.ScoredTrail     `json:"trail_table"`
	Metadata      Metadata                 `json:"metadata"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

// BuildReport assembles the output document for one run.
func BuildReport(res Result, prefs Preferences, info EngineInfo, runID string, now time.Time) Report {
	if prefs == nil {
		prefs = Preferences{}
	}
	ignored := append(append([]string{}, res.Filter.Ignored...), res.Filter.Skipped...)
	applied := res.Filter.Applied
	if applied == nil {
		applied = []string{}
	}
	return Report{
		MountainTable: nonNilMountains(res.Mountains),
		TrailTable:    nonNilTrails(res.Trails),
		Metadata: Metadata{
			TotalMountains:       len(res.Mountains),
			TotalTrails:          len(res.Trails),
			PreferencesApplied:   applied,
			PreferencesIgnored:   ignored,
			Preferences:          prefs,
			ScoreStats:           MountainScoreStats(res.Mountains),
			CategoryDistribution: CategoryDistribution(res.Mountains),
			Failures:             res.Failures,
			Engine:               info,
			RunID:                runID,
			GeneratedAt:          now.UTC().Format(time.RFC3339),
		},
	}
}

// BuildErrorReport wraps err in the failure document.
func BuildErrorReport(err error, prefs Preferences, info EngineInfo, runID string, now time.Time) ErrorReport {
	te := serr.ToToolError(err)
	rep := BuildReport(Result{}, prefs, info, runID, now)
	return ErrorReport{
		Error:         true,
		Message:       te.Message,
		Code:          te.Code,
		Hint:          te.Hint,
		MountainTable: rep.MountainTable,
		TrailTable:    rep.TrailTable,
		Metadata:      rep.Metadata,
	}
}

func nonNilMountains(ms []domain.MountainSummary) []domain.MountainSummary {
	if ms == nil {
		return []domain.MountainSummary{}
	}
	return ms
}

func nonNilTrails(ts []domain.ScoredTrail) []domain.ScoredTrail {
	if ts == nil {
		return []domain.ScoredTrail{}
	}
	return ts
}
