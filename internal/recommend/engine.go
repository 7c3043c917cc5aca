// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// Scoring pipeline: filter, infer, blend, categorize, aggregate, rank.

package recommend

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
	"trail-recommender/internal/fanout"
	"trail-recommender/internal/fuzzy"
	"trail-recommender/internal/logging"
)

// Engine scores trail catalogs. It holds only immutable state and may be
// shared between goroutines.
type Engine struct {
	system  *fuzzy.System
	weights WeightSet
	workers int
	logger  *zap.Logger
}

type Option func(*Engine)

// WithWorkers scores records on up to n goroutines. n <= 1 scores inline.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithWeights(w WeightSet) Option {
	return func(e *Engine) { e.weights = w }
}

// NewEngine builds an engine around a validated fuzzy system.
func NewEngine(system *fuzzy.System, opts ...Option) (*Engine, error) {
	if system == nil {
		return nil, errors.New("nil fuzzy system")
	}
	e := &Engine{
		system:  system,
		weights: DefaultWeights(),
		workers: 1,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.weights.Validate(); err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	e.logger = logging.WithComponent(e.logger, "engine")
	return e, nil
}

func (e *Engine) System() *fuzzy.System { return e.system }

func (e *Engine) Weights() WeightSet { return e.weights }

// Result is the outcome of one scoring pass.
type Result struct {
	Mountains []domain.MountainSummary `json:"mountain_table"`
	Trails    []domain.ScoredTrail     `json:"trail_table"`
	Filter    FilterReport             `json:"filter"`
	Failures  int                      `json:"failures"`
}

// Score evaluates one record. When inference fails the returned trail has a
// final score of 0 and Failed set. The error carries MISSING_CRITERION when a
// criterion is absent or NaN, INFERENCE_FAILURE otherwise.
func (e *Engine) Score(t domain.TrailRecord) (domain.ScoredTrail, error) {
	weighted, ok := e.weights.Score(t)
	inputs := t.Inputs()
	res, err := e.system.Infer(inputs)
	if err != nil {
		failed := domain.ScoredTrail{
			TrailRecord:   t,
			WeightedScore: weighted,
			Category:      Categorize(0),
			Failed:        true,
		}
		if errors.Is(err, fuzzy.ErrMissingInput) {
			return failed, serr.NewMissingCriterion(missingCriterion(inputs)).WithCause(err)
		}
		return failed, serr.NewInferenceFailure(t.TrailID, err)
	}
	final := Blend(res.Score, weighted, ok)
	return domain.ScoredTrail{
		TrailRecord:   t,
		FuzzyScore:    res.Score,
		WeightedScore: weighted,
		Score:         final,
		Category:      Categorize(final),
	}, nil
}

func missingCriterion(inputs map[string]float64) string {
	for _, c := range domain.Criteria {
		if _, ok := inputs[c]; !ok {
			return c
		}
	}
	return ""
}

// ScoreAll scores every record in input order. Per-record failures are
// logged and counted, never returned; only context cancellation is.
func (e *Engine) ScoreAll(ctx context.Context, trails []domain.TrailRecord) ([]domain.ScoredTrail, int, error) {
	type outcome struct {
		trail  domain.ScoredTrail
		failed bool
	}
	score := func(_ context.Context, _ int, t domain.TrailRecord) (outcome, error) {
		st, err := e.Score(t)
		if err != nil {
			e.logger.Warn("inference failed; scoring trail as 0", logging.FieldTrail(t.TrailID), zap.Error(err))
			return outcome{trail: st, failed: true}, nil
		}
		return outcome{trail: st}, nil
	}

	var outcomes []outcome
	if e.workers > 1 && len(trails) > 1 {
		var err error
		outcomes, err = fanout.Map(ctx, trails, e.workers, score)
		if err != nil {
			return nil, 0, err
		}
	} else {
		outcomes = make([]outcome, len(trails))
		for i, t := range trails {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
			outcomes[i], _ = score(ctx, i, t)
		}
	}

	scored := make([]domain.ScoredTrail, len(outcomes))
	failures := 0
	for i, o := range outcomes {
		scored[i] = o.trail
		if o.failed {
			failures++
		}
	}
	return scored, failures, nil
}

// ScoreAndRank filters trails by prefs, scores the survivors and returns
// the ranked mountain and trail tables. Empty input or an empty filter
// result yields empty tables and no error.
func (e *Engine) ScoreAndRank(ctx context.Context, trails []domain.TrailRecord, prefs Preferences) (Result, error) {
	kept, report := Filter(trails, prefs)
	if len(report.Ignored) > 0 || len(report.Skipped) > 0 {
		e.logger.Debug("preference keys not applied",
			zap.Strings("ignored", report.Ignored),
			zap.Strings("skipped", report.Skipped))
	}
	res := Result{
		Mountains: []domain.MountainSummary{},
		Trails:    []domain.ScoredTrail{},
		Filter:    report,
	}
	if len(kept) == 0 {
		return res, nil
	}
	scored, failures, err := e.ScoreAll(ctx, kept)
	if err != nil {
		return Result{}, err
	}
	res.Failures = failures
	res.Mountains = Aggregate(scored)
	RankMountains(res.Mountains)
	RankTrails(scored)
	res.Trails = scored
	e.logger.Debug("scored catalog",
		zap.Int("input", len(trails)),
		zap.Int("scored", len(scored)),
		zap.Int("mountains", len(res.Mountains)),
		zap.Int("failures", failures))
	return res, nil
}
