package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trail-recommender/internal/recommend"
)

func newSimulateCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run every preference preset against the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "catalog: %d trails from %s\n", len(trails), rt.provider.Source())
			for _, preset := range recommend.Presets() {
				res, err := rt.engine.ScoreAndRank(ctx, trails, preset.Preferences)
				if err != nil {
					return err
				}
				stats := recommend.MountainScoreStats(res.Mountains)
				fmt.Fprintf(out, "\n== %s: %s ==\n", preset.Name, preset.Description)
				fmt.Fprintf(out, "%d trails on %d mountains passed; max %.2f mean %.2f\n",
					len(res.Trails), len(res.Mountains), stats.Max, stats.Mean)
				if len(res.Mountains) == 0 {
					fmt.Fprintln(out, "no mountain satisfies this preset")
					continue
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "RANK\tMOUNTAIN\tBEST TRAIL\tSCORE\tCATEGORY")
				for i, m := range head(res.Mountains, top) {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\n", i+1, m.MountainName, m.BestTrail, m.MaxScore, m.Category)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 5, "mountains to list per preset (0 = all)")
	return cmd
}
