package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/jdoccov/pkg/configs"
	"github.com/yeisme/jdoccov/pkg/utils/schema"
)

var (
	noColor bool

	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage jdoccov configuration",
		Long:    `jdoccov config allows you to view and manage the scan and report defaults.`,
		Aliases: []string{"c"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate jdoccov configuration",
		Long:  `jdoccov config validate checks that a configuration file was found and can be parsed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fileUsed := jdoccovCtx.Viper.ConfigFileUsed()
			if fileUsed == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No config file found, using defaults")
				return nil
			}
			if err := jdoccovCtx.Viper.ReadInConfig(); err != nil {
				return fmt.Errorf("config file %s: %w", fileUsed, err)
			}
			if jdoccovCtx.Config.Scan.Lookback < 0 {
				return fmt.Errorf("config file %s: scan.lookback must not be negative", fileUsed)
			}
			log.Info().Msgf("Config file used: %s", fileUsed)
			fmt.Fprintf(cmd.OutOrStdout(), "Config file %s is valid\n", fileUsed)
			return nil
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List jdoccov configuration",
		Long: `jdoccov config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  - app: Application settings
  - log: Logging settings
  - scan: Walker and heuristic settings
  - report: Report output settings

Examples:
  jdoccov config list                    # Show all configuration (viper raw data)
  jdoccov config list --all              # Show all configuration with defaults
  jdoccov config list scan               # Show only scan settings
  jdoccov config list --format yaml      # Output in YAML format
  jdoccov config list --json             # Output in JSON format (shorthand)
  jdoccov config list scan --all --toml  # Show scan config with defaults in TOML`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			format := configs.GetOutputFormatFromFlags(cmd)
			showAll, _ := cmd.Flags().GetBool("all")

			data, err := configs.GetConfigSection(jdoccovCtx.Viper, section, showAll)
			if err != nil {
				return err
			}
			return configs.OutputData(data, format, cmd.OutOrStdout(), !noColor)
		},
		Aliases: []string{"ls"},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize jdoccov configuration",
		Long: `jdoccov config init creates a new configuration file with default settings.

Examples:
  jdoccov config init                                   # Create .jdoccov.yaml in current directory
  jdoccov config init --path ~/.config/jdoccov/jdoccov.yaml
  jdoccov config init --format toml                     # Create .jdoccov.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				return err
			}
			if path == "" {
				path = ".jdoccov." + string(format)
			}

			if err := configs.CreateDefaultConfig(path, format); err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("config file created")
			fmt.Fprintf(cmd.OutOrStdout(), "Config file created: %s\n", path)
			return nil
		},
	}

	configSchemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Long: `jdoccov config schema prints a JSON schema describing every configuration key.
Editors can use it to validate and complete .jdoccov.yaml files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return schema.GenConfigSchema(cmd.OutOrStdout())
		},
	}
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
		configSchemaCmd,
	)

	configListCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	configListCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	configListCmd.Flags().Bool("yaml", false, "Output in YAML format")
	configListCmd.Flags().Bool("json", false, "Output in JSON format")
	configListCmd.Flags().Bool("toml", false, "Output in TOML format")
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (processed struct)")

	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
}
