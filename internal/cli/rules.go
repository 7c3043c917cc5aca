package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trail-recommender/internal/fuzzy"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the fuzzy rule base",
	}
	var path string
	export := &cobra.Command{
		Use:   "export",
		Short: "Print the rule base as YAML, ready to edit and pass to --rules-path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := fuzzy.LoadSystem(path)
			if err != nil {
				return err
			}
			data, err := fuzzy.MarshalRuleBase(sys.RuleBase())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	check := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a YAML rule file against the criterion model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := fuzzy.LoadSystem(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rules\n", sys.RuleCount())
			return err
		},
	}
	export.Flags().StringVar(&path, "from", "", "rule file to re-emit (default: built-in rules)")
	cmd.AddCommand(export, check)
	return cmd
}
