package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/jdoccov/pkg/coverage"
)

var inspectFlags scanFlags

var inspectCmd = &cobra.Command{
	Use:   "inspect <directory>",
	Short: "Pick a file interactively and list its undocumented declarations",
	Long: `
jdoccov inspect scans the directory like the root command, then opens a fuzzy
finder over every file that still has undocumented declarations. The selected
file is printed as a tree: package, file, then each missing declaration.

No report file is written.

Examples:
  # Browse undocumented files of a source tree
  jdoccov inspect src/main/java

  # Restrict the candidates to packages matching "repo"
  jdoccov inspect src/main/java --filter repo`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return coverage.ErrMissingRoot
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := inspectFlags.apply(cmd, coverage.OptionsFromConfig(jdoccovCtx.Config))
		opts.Root = args[0]
		opts.Logger = log

		selected, err := coverage.Inspect(cmd.Context(), opts, coverage.FuzzyPicker, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if selected == nil {
			log.Debug().Msg("inspect aborted")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d undocumented declaration(s) in %s\n", len(selected.Undocumented()), selected.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addScanFlags(inspectCmd, &inspectFlags)
}
