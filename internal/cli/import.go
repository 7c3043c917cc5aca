package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"trail-recommender/internal/storage"
)

func newImportCmd() *cobra.Command {
	var from, into string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a JSON trail catalog into a SQLite database",
		Long: `Read trails from a JSON file and upsert them into a SQLite catalog usable
with --source sqlite. Rows without a trail_id are skipped.

	Examples:
	  trail-recommender import --from trails.json --into trails.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || into == "" {
				return errors.New("--from and --into are required")
			}
			rows, err := storage.LoadTrailsFromFile(from)
			if err != nil {
				return err
			}
			store, err := storage.OpenSQLite(into)
			if err != nil {
				return fmt.Errorf("open sqlite: %w", err)
			}
			defer store.Close()
			if err := store.EnsureSchema(); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
			skipped, err := store.UpsertMany(cmd.Context(), rows)
			if err != nil {
				return err
			}
			total, err := store.CountTrails(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d trails (%d skipped), catalog now holds %d\n",
				len(rows)-skipped, skipped, total)
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "JSON catalog to read")
	cmd.Flags().StringVar(&into, "into", "", "SQLite database to write")
	return cmd
}
