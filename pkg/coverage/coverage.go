// Package coverage 串联扫描、聚合与报告输出，是 jdoccov 根命令的实现
package coverage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"

	"github.com/yeisme/jdoccov/pkg/configs"
	"github.com/yeisme/jdoccov/pkg/models"
	"github.com/yeisme/jdoccov/pkg/report"
	"github.com/yeisme/jdoccov/pkg/style"
	"github.com/yeisme/jdoccov/pkg/utils/javadoc"
)

// DefaultOutput 报告默认文件名，写入当前工作目录
const DefaultOutput = "javadoc_coverage_detailed.md"

// 调用错误：扫描开始前即失败
var (
	ErrMissingRoot  = errors.New("missing directory argument")
	ErrRootNotFound = errors.New("directory not found")
	ErrNotDirectory = errors.New("not a directory")
)

// 空结果错误：遍历完成后没有可统计的内容，不写报告
var (
	ErrNoSourceFiles  = errors.New("no matching source file found")
	ErrNoDeclarations = errors.New("no public declaration found")
	ErrFilterNoMatch  = errors.New("no namespace matches filter")
)

// Options 一次覆盖率扫描的全部参数
type Options struct {
	Root   string
	Output string // 报告路径，为空时使用 DefaultOutput
	Title  string

	Scan javadoc.Options

	StatsFile string // 非空时按后缀导出 json/yaml/toml 统计
	Filter    string // 命名空间模糊过滤
	Table     bool   // 在 stdout 打印终端表格
	Preview   bool   // 在 stdout 渲染报告
	Theme     string // glamour 主题
	Width     int    // 终端渲染宽度，<=0 自动探测

	// Now 返回报告生成时间；为 nil 时报告不带时间
	Now func() time.Time

	Stdout io.Writer
	Logger *zerolog.Logger
}

// Result 一次扫描的结果
type Result struct {
	Aggregator *javadoc.Aggregator
	Stats      map[string]*models.NamespaceStats // 过滤后参与报告的命名空间
	Totals     models.Totals
	Status     report.Status
	ReportPath string
	Report     string
}

// ValidateRoot 检查根目录参数
func ValidateRoot(root string) error {
	if strings.TrimSpace(root) == "" {
		return ErrMissingRoot
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return fmt.Errorf("%w: %s: %v", ErrRootNotFound, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return nil
}

// Scan 校验根目录并执行扫描，没有匹配文件或没有任何声明时返回对应的错误
func Scan(ctx context.Context, opts Options) (*javadoc.Aggregator, error) {
	if err := ValidateRoot(opts.Root); err != nil {
		return nil, err
	}
	agg, err := javadoc.NewProjectScanner(opts.Scan, opts.Logger).ScanDirectory(ctx, opts.Root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", opts.Root, err)
	}
	if agg.Files() == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoSourceFiles, opts.Root)
	}
	if len(agg.Stats()) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoDeclarations, opts.Root)
	}
	return agg, nil
}

// Run 完整执行一次扫描：进度行、扫描、写报告、可选导出与预览、最终摘要
func Run(ctx context.Context, opts Options) (*Result, error) {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if err := ValidateRoot(opts.Root); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Scanning %s ...\n", opts.Root)

	agg, err := Scan(ctx, opts)
	if err != nil {
		return nil, err
	}
	if n := agg.Skipped(); n > 0 {
		logger.Warn().Int("skipped", n).Msg("some files could not be read")
	}

	stats, err := applyFilter(agg, opts.Filter, logger)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Aggregator: agg,
		Stats:      stats,
		Totals:     models.ComputeTotals(stats),
	}
	res.Status = report.Classify(res.Totals.Coverage)

	renderOpts := report.Options{Title: opts.Title, Root: filepath.ToSlash(opts.Root)}
	if opts.Now != nil {
		renderOpts.GeneratedAt = opts.Now()
	}
	res.Report = report.Render(stats, renderOpts)

	res.ReportPath = opts.Output
	if res.ReportPath == "" {
		res.ReportPath = DefaultOutput
	}
	if err := writeReport(res.ReportPath, res.Report); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Report written to %s\n", res.ReportPath)

	if opts.StatsFile != "" {
		snapshot := models.BuildSnapshot(filepath.ToSlash(opts.Root), string(res.Status), stats)
		if err := configs.WriteDataFile(opts.StatsFile, snapshot); err != nil {
			return nil, fmt.Errorf("write stats: %w", err)
		}
		fmt.Fprintf(out, "Stats written to %s\n", opts.StatsFile)
	}

	if opts.Table {
		if err := PrintTable(out, stats, opts.Width); err != nil {
			return nil, err
		}
		if err := printTotals(out, res.Totals); err != nil {
			return nil, err
		}
	}
	if opts.Preview {
		if err := style.RenderMarkdown(out, res.Report, opts.Width, opts.Theme); err != nil {
			return nil, fmt.Errorf("render preview: %w", err)
		}
	}

	fmt.Fprintln(out, Summary(res.Totals))
	return res, nil
}

// applyFilter 过滤命名空间；非空查询过滤后为空时返回 ErrFilterNoMatch，不写报告
func applyFilter(agg *javadoc.Aggregator, query string, logger *zerolog.Logger) (map[string]*models.NamespaceStats, error) {
	stats := FilterNamespaces(agg.Stats(), query)
	if strings.TrimSpace(query) == "" {
		return stats, nil
	}
	if len(stats) == 0 {
		logger.Warn().Str("filter", query).Int("namespaces", len(agg.Stats())).Msg("filter matched no namespace")
		return nil, fmt.Errorf("%w %q", ErrFilterNoMatch, query)
	}
	logger.Info().Str("filter", query).Int("namespaces", len(stats)).Msg("namespace filter applied")
	return stats, nil
}

// Summary 最终摘要行
func Summary(t models.Totals) string {
	return fmt.Sprintf("Classes: %d/%d  Methods: %d/%d  Coverage: %.1f%%",
		t.DocumentedClasses, t.Classes, t.DocumentedMethods, t.Methods, t.Coverage)
}

// FilterNamespaces 按模糊查询过滤命名空间，查询为空时原样返回
// 不区分大小写：子序列匹配或子串匹配均可
func FilterNamespaces(stats map[string]*models.NamespaceStats, query string) map[string]*models.NamespaceStats {
	query = strings.TrimSpace(query)
	if query == "" {
		return stats
	}
	out := make(map[string]*models.NamespaceStats)
	lowerQ := strings.ToLower(query)
	for name, ns := range stats {
		lowerName := strings.ToLower(name)
		if fuzzy.Match(lowerQ, lowerName) || strings.Contains(lowerName, lowerQ) {
			out[name] = ns
		}
	}
	return out
}

// PrintTable 在终端打印命名空间表格，覆盖率列按等级着色
func PrintTable(w io.Writer, stats map[string]*models.NamespaceStats, width int) error {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		ns := stats[name]
		cov := models.Percent(ns.DocumentedSymbols(), ns.Symbols())
		rows = append(rows, []string{
			style.Truncate(name, 48),
			fmt.Sprintf("%d/%d", ns.DocumentedClasses, ns.Classes),
			fmt.Sprintf("%d/%d", ns.DocumentedMethods, ns.Methods),
			fmt.Sprintf("%.1f%%", cov),
			report.RowGlyph(cov),
		})
	}
	return style.PrintTable(w, []string{"namespace", "classes", "methods", "coverage", "status"}, rows, width, 3)
}

// printTotals 表格下方的分项覆盖率，按等级着色
func printTotals(w io.Writer, t models.Totals) error {
	if err := style.PrintHeading(w, "totals"); err != nil {
		return err
	}
	if err := style.PrintCoverageLine(w, "classes", t.DocumentedClasses, t.Classes, t.ClassCoverage); err != nil {
		return err
	}
	return style.PrintCoverageLine(w, "methods", t.DocumentedMethods, t.Methods, t.MethodCoverage)
}

// writeReport 覆盖写入报告文件
func writeReport(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ExitCode 将错误映射为进程退出码：调用错误 2，空结果（含过滤后为空）3，其他失败 1
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrMissingRoot), errors.Is(err, ErrRootNotFound), errors.Is(err, ErrNotDirectory):
		return 2
	case errors.Is(err, ErrNoSourceFiles), errors.Is(err, ErrNoDeclarations), errors.Is(err, ErrFilterNoMatch):
		return 3
	default:
		return 1
	}
}

// OptionsFromConfig 用配置文件中的 scan/report 段填充默认选项
func OptionsFromConfig(cfg *configs.Config) Options {
	if cfg == nil {
		return Options{Output: DefaultOutput}
	}
	return Options{
		Output: cfg.Report.Output,
		Title:  cfg.Report.Title,
		Theme:  cfg.Report.Theme,
		Width:  cfg.Report.Width,
		Scan: javadoc.Options{
			Extensions:       cfg.Scan.Extensions,
			Exclude:          cfg.Scan.Exclude,
			RespectGitignore: cfg.Scan.RespectGitignore,
			MaxFileSizeBytes: cfg.Scan.MaxFileSize,
			Lookback:         cfg.Scan.Lookback,
			Concurrency:      cfg.Scan.Concurrency,
		},
	}
}
