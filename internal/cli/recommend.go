package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trail-recommender/internal/domain"
	serr "trail-recommender/internal/errors"
	"trail-recommender/internal/logging"
	"trail-recommender/internal/recommend"
)

type recommendOptions struct {
	preset string
	top    int
	format string
}

func newRecommendCmd() *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "recommend [preferences-json]",
		Short: "Score the catalog and print the ranked mountain and trail tables",
		Long: `Score every trail in the configured catalog, keep those satisfying the
preference thresholds and rank mountains by their best trail.

Preferences are a JSON object of min_/max_ thresholds. They overlay the
optional --preset.

	Examples:
	  trail-recommender recommend --source json --trails-path trails.json
	  trail-recommender recommend '{"max_difficulty":5,"min_safety":7}'
	  trail-recommender recommend --preset beginner --format table --top 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.preset, "preset", "", "preference preset (beginner, experienced, general)")
	cmd.Flags().IntVar(&opts.top, "top", 0, "limit the tables to the first N rows (0 = all)")
	cmd.Flags().StringVar(&opts.format, "format", "json", "output format: json|table")
	return cmd
}

func runRecommend(cmd *cobra.Command, args []string, opts *recommendOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	runID := recommend.NewRunID()

	format := strings.ToLower(opts.format)
	if format != "json" && format != "table" && format != "" {
		return writeErrorReport(out, serr.NewInvalidInput(fmt.Sprintf("unknown format %q", opts.format), "use json or table", nil), nil, recommend.EngineInfo{}, runID)
	}

	explicit := recommend.Preferences{}
	if len(args) == 1 {
		var err error
		if explicit, err = recommend.ParsePreferences([]byte(args[0])); err != nil {
			return writeErrorReport(out, err, nil, recommend.EngineInfo{}, runID)
		}
	}
	prefs, err := recommend.WithPreset(opts.preset, explicit)
	if err != nil {
		return writeErrorReport(out, err, explicit, recommend.EngineInfo{}, runID)
	}

	rt, err := loadRuntime(ctx, cmd)
	if err != nil {
		return writeErrorReport(out, err, prefs, recommend.EngineInfo{}, runID)
	}
	defer rt.Close()
	logger := logging.WithRun(logging.WithComponent(rt.logger, "cli"), runID)
	info := rt.engine.Info(rt.provider.Source())

	trails, err := rt.provider.Trails(ctx)
	if err != nil {
		logger.Error("catalog unavailable", zap.Error(err))
		return writeErrorReport(out, err, prefs, info, runID)
	}
	res, err := rt.engine.ScoreAndRank(ctx, trails, prefs)
	if err != nil {
		return writeErrorReport(out, err, prefs, info, runID)
	}
	logger.Info("scored catalog",
		zap.Int("catalog", len(trails)),
		zap.Int("kept", len(res.Trails)),
		zap.Int("failures", res.Failures))

	rep := recommend.BuildReport(res, prefs, info, runID, time.Now())
	rep.MountainTable = head(rep.MountainTable, opts.top)
	rep.TrailTable = head(rep.TrailTable, opts.top)
	if format == "table" {
		return writeTables(out, rep)
	}
	return writeJSON(out, rep)
}

// head returns the first n items; n <= 0 keeps them all.
func head[T any](items []T, n int) []T {
	if n > 0 && n < len(items) {
		return items[:n]
	}
	return items
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeErrorReport prints the failure document and returns err so the
// process exits non-zero.
func writeErrorReport(w io.Writer, err error, prefs recommend.Preferences, info recommend.EngineInfo, runID string) error {
	if werr := writeJSON(w, recommend.BuildErrorReport(err, prefs, info, runID, time.Now())); werr != nil {
		return werr
	}
	return err
}

func writeTables(w io.Writer, rep recommend.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tMOUNTAIN\tBEST TRAIL\tMAX\tMEAN\tTRAILS\tCATEGORY")
	for i, m := range rep.MountainTable {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\t%d\t%s\n", i+1, m.MountainName, m.BestTrail, m.MaxScore, m.MeanScore, m.TrailCount, m.Category)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TRAIL\tMOUNTAIN\tFUZZY\tWEIGHTED\tSCORE\tCATEGORY")
	for _, t := range rep.TrailTable {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%s\n", trailLabel(t), t.MountainName, t.FuzzyScore, t.WeightedScore, t.Score, t.Category)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(rep.Metadata.PreferencesApplied) > 0 {
		fmt.Fprintf(w, "\nfilters: %s\n", strings.Join(rep.Metadata.PreferencesApplied, ", "))
	}
	return nil
}

func trailLabel(t domain.ScoredTrail) string {
	if t.TrailName != "" {
		return t.TrailName
	}
	return t.TrailID
}
