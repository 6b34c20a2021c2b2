package cmd

import (
	stdctx "context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeisme/jdoccov/pkg/context"
	"github.com/yeisme/jdoccov/pkg/coverage"
	log2 "github.com/yeisme/jdoccov/pkg/utils/log"
	"github.com/yeisme/jdoccov/pkg/utils/version"
)

var (
	jdoccovCtx *context.JdoccovContext
	log        log2.Logger

	// Global flags
	globalFlags       context.Flags
	versionEnableFlag bool

	rootFlags scanFlags
)

// scanFlags 根命令与 inspect 共用的扫描参数
type scanFlags struct {
	output       string
	extensions   []string
	exclude      []string
	gitignore    bool
	lookback     int
	concurrency  int
	maxFileSize  int64
	stats        string
	table        bool
	preview      bool
	filter       string
	watch        bool
	timestamp    bool
	title        string
	previewTheme string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jdoccov <directory>",
	Short: "jdoccov estimates Javadoc coverage of a Java source tree",
	Long: strings.TrimSpace(`
jdoccov scans every .java file under a directory, checks whether each public
class, interface, enum and method is preceded by a Javadoc comment (/** ... */),
and writes a Markdown report grouped by package.

The detection is a line-based heuristic, not a Java parser: multi-line
signatures and non-public members are not recognized.

Examples:
  # Scan a source tree, report goes to ./javadoc_coverage_detailed.md
  jdoccov src/main/java

  # Custom report path and a JSON export of the statistics
  jdoccov src/main/java -o build/javadoc.md --stats build/javadoc.json

  # Print a colored table and render the report in the terminal
  jdoccov src/main/java --table --preview

  # Only packages fuzzily matching "service"
  jdoccov src/main/java --filter service

  # Respect .gitignore, skip generated code, scan with 8 workers
  jdoccov . -g -e "**/generated/**" -C 8

  # Re-run the scan whenever a .java file changes
  jdoccov src/main/java --watch

Exit codes:
  0  success
  1  report or stats could not be written
  2  missing, non-existent or non-directory argument
  3  no source file, no public declaration, or no package matching --filter`),
	Args: func(_ *cobra.Command, args []string) error {
		if versionEnableFlag {
			return nil
		}
		switch len(args) {
		case 0:
			return coverage.ErrMissingRoot
		case 1:
			return nil
		default:
			return fmt.Errorf("accepts 1 directory argument, received %d", len(args))
		}
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		ctx, err := context.InitJdoccovContext(cmd.Context(), globalFlags)
		if err != nil {
			return err
		}
		jdoccovCtx = ctx
		log = ctx.Logger

		log.Info().Msgf("Execute Command: %s %s", "jdoccov", strings.Join(os.Args[1:], " "))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionEnableFlag {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			return nil
		}

		opts := rootFlags.apply(cmd, coverage.OptionsFromConfig(jdoccovCtx.Config))
		opts.Root = args[0]
		opts.Stdout = cmd.OutOrStdout()
		opts.Logger = log
		if rootFlags.timestamp {
			opts.Now = time.Now
		}

		if rootFlags.watch {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return coverage.RunWatch(ctx, opts)
		}
		_, err := coverage.Run(cmd.Context(), opts)
		return err
	},
}

// apply 只覆盖用户显式设置过的参数，其余沿用配置文件中的值
func (f *scanFlags) apply(cmd *cobra.Command, opts coverage.Options) coverage.Options {
	changed := cmd.Flags().Changed
	if changed("output") {
		opts.Output = f.output
	}
	if changed("ext") {
		opts.Scan.Extensions = f.extensions
	}
	if changed("exclude") {
		opts.Scan.Exclude = append(opts.Scan.Exclude, f.exclude...)
	}
	if changed("gitignore") {
		opts.Scan.RespectGitignore = f.gitignore
	}
	if changed("lookback") {
		opts.Scan.Lookback = f.lookback
	}
	if changed("concurrency") {
		opts.Scan.Concurrency = f.concurrency
	}
	if changed("max-file-size") {
		opts.Scan.MaxFileSizeBytes = f.maxFileSize
	}
	if changed("title") {
		opts.Title = f.title
	}
	if changed("theme") {
		opts.Theme = f.previewTheme
	}
	opts.StatsFile = f.stats
	opts.Table = f.table
	opts.Preview = f.preview
	opts.Filter = f.filter
	return opts
}

// addScanFlags 注册遍历与启发式相关的参数
func addScanFlags(cmd *cobra.Command, f *scanFlags) {
	cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "source file extensions to scan (default .java)")
	cmd.Flags().StringSliceVarP(&f.exclude, "exclude", "e", nil, "exclude paths matching these glob patterns")
	cmd.Flags().BoolVarP(&f.gitignore, "gitignore", "g", false, "respect the .gitignore at the scan root")
	cmd.Flags().IntVar(&f.lookback, "lookback", 0, "lines examined above a declaration when looking for Javadoc (default 19)")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "C", 0, "number of files scanned in parallel (default 1)")
	cmd.Flags().Int64VarP(&f.maxFileSize, "max-file-size", "m", 0, "skip files larger than this many bytes (0 = no limit)")
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "", "only keep packages fuzzily matching this query")
}

// Execute adds all child commands to the root command and maps errors to exit codes.
func Execute() {
	if err := rootCmd.ExecuteContext(stdctx.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(coverage.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose output (prints more detailed information)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Quiet, "quiet", false, "suppress all log output")
	rootCmd.Flags().BoolVarP(&versionEnableFlag, "version", "v", false, "show version information")

	addScanFlags(rootCmd, &rootFlags)
	rootCmd.Flags().StringVarP(&rootFlags.output, "output", "o", "", "report file (default javadoc_coverage_detailed.md)")
	rootCmd.Flags().StringVar(&rootFlags.stats, "stats", "", "also export statistics to `file` (.json, .yaml or .toml)")
	rootCmd.Flags().BoolVarP(&rootFlags.table, "table", "t", false, "print a coverage table to stdout")
	rootCmd.Flags().BoolVarP(&rootFlags.preview, "preview", "p", false, "render the report in the terminal")
	rootCmd.Flags().StringVar(&rootFlags.previewTheme, "theme", "", "glamour theme used by --preview (dark, light, dracula, ...)")
	rootCmd.Flags().StringVar(&rootFlags.title, "title", "", "report title")
	rootCmd.Flags().BoolVar(&rootFlags.timestamp, "timestamp", false, "include the generation time in the report")
	rootCmd.Flags().BoolVarP(&rootFlags.watch, "watch", "w", false, "re-run the scan whenever a source file changes")
}
