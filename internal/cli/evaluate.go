package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trail-recommender/internal/recommend"
)

func newEvaluateCmd() *cobra.Command {
	var truthPath string
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compare binary recommendations against labelled trails",
		Long: `Score the whole catalog without filters and compare the binary prediction
(recommended or very_highly_recommended) with ground-truth labels.

The truth file is CSV with a header row and columns trail_id,label where
label is 0 or 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if truthPath == "" {
				return errors.New("--truth is required")
			}
			truth, err := readTruth(truthPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx, cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			trails, err := rt.provider.Trails(ctx)
			if err != nil {
				return err
			}
			scored, _, err := rt.engine.ScoreAll(ctx, trails)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), recommend.Evaluate(scored, truth))
		},
	}
	cmd.Flags().StringVar(&truthPath, "truth", "", "CSV of trail_id,label ground truth (required)")
	return cmd
}

func readTruth(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open truth file: %w", err)
	}
	defer f.Close()
	return parseTruth(f)
}

func parseTruth(r io.Reader) (map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse truth file: %w", err)
	}
	truth := make(map[string]int, len(records))
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("truth line %d: want trail_id,label", i+1)
		}
		id := strings.TrimSpace(rec[0])
		if i == 0 && strings.EqualFold(id, "trail_id") {
			continue
		}
		label, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil || (label != 0 && label != 1) {
			return nil, fmt.Errorf("truth line %d: label must be 0 or 1, got %q", i+1, rec[1])
		}
		truth[id] = label
	}
	return truth, nil
}
