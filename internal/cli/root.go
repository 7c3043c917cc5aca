// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// Command-line front end: batch recommendations, preset simulation,
// accuracy evaluation and catalog import.

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trail-recommender/internal/config"
	"trail-recommender/internal/fuzzy"
	"trail-recommender/internal/logging"
	"trail-recommender/internal/provider"
	"trail-recommender/internal/recommend"
	"trail-recommender/internal/version"
)

// NewRootCmd builds a fresh command tree. Every call returns independent
// flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "trail-recommender",
		Short:         "Fuzzy hiking-trail recommendations",
		Long:          "Scores hiking trails with a Mamdani fuzzy model blended with a weighted criteria model, then ranks mountains by their best trail.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newRecommendCmd(),
		newSimulateCmd(),
		newEvaluateCmd(),
		newImportCmd(),
		newRulesCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs root and reports any failure on its error stream. Errors
// are silenced inside cobra so recommend can emit its JSON error report on
// stdout without a duplicate usage dump.
func Execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// runtime is what a scoring command needs, built from the resolved config.
type runtime struct {
	cfg      config.Config
	logger   *zap.Logger
	provider provider.Provider
	engine   *recommend.Engine
}

func (r *runtime) Close() {
	_ = provider.Close(r.provider)
	_ = r.logger.Sync()
}

func loadRuntime(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.LoadFromFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	system, err := fuzzy.LoadSystem(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	engine, err := recommend.NewEngine(system, recommend.WithWorkers(cfg.ScoringWorkers), recommend.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	p, err := provider.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger, provider: p, engine: engine}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Info().String())
			return err
		},
	}
}
