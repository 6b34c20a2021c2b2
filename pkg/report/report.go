// Package report 将聚合后的命名空间统计渲染为 Markdown 覆盖率报告
//
// Render 是纯函数：只读取传入的统计数据，不做任何 I/O。
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yeisme/jdoccov/pkg/models"
)

// 覆盖率分级阈值（百分比）
const (
	ExcellentThreshold = 100.0
	GoodThreshold      = 80.0
	MediumThreshold    = 50.0
)

// DefaultTitle 报告默认标题
const DefaultTitle = "Javadoc Coverage Report"

// Status 全局覆盖率等级
type Status string

// 全局等级，四档
const (
	StatusExcellent    Status = "EXCELLENT"
	StatusGood         Status = "GOOD"
	StatusMedium       Status = "MEDIUM"
	StatusInsufficient Status = "INSUFFICIENT"
)

// 行级图标，三档
const (
	GlyphComplete = "✅"
	GlyphPartial  = "⚠️"
	GlyphMissing  = "❌"
)

// Classify 按综合覆盖率给出全局等级
func Classify(coverage float64) Status {
	switch {
	case coverage == ExcellentThreshold:
		return StatusExcellent
	case coverage >= GoodThreshold:
		return StatusGood
	case coverage >= MediumThreshold:
		return StatusMedium
	default:
		return StatusInsufficient
	}
}

// Glyph 返回全局等级对应的图标
func (s Status) Glyph() string {
	switch s {
	case StatusExcellent, StatusGood:
		return GlyphComplete
	case StatusMedium:
		return GlyphPartial
	default:
		return GlyphMissing
	}
}

// RowGlyph 命名空间表格与文件标题使用的三档图标
// 与 Classify 的四档不同：80% 到 100% 之间仍显示 ⚠️
func RowGlyph(coverage float64) string {
	switch {
	case coverage == ExcellentThreshold:
		return GlyphComplete
	case coverage >= MediumThreshold:
		return GlyphPartial
	default:
		return GlyphMissing
	}
}

// Options 渲染选项
type Options struct {
	Title       string    // 为空时使用 DefaultTitle
	Root        string    // 扫描根目录，仅用于展示
	GeneratedAt time.Time // 零值时不输出时间，保证输出可复现
}

// Render 生成完整报告：全局摘要、命名空间表格、文件明细与行动计划
func Render(stats map[string]*models.NamespaceStats, opts Options) string {
	totals := models.ComputeTotals(stats)
	names := sortedNamespaces(stats)

	var b strings.Builder
	writeHeader(&b, opts)
	writeSummary(&b, totals)
	writeNamespaceTable(&b, stats, names)
	writeFileDetails(&b, stats, names)
	writeActionPlan(&b, totals)
	return b.String()
}

func writeHeader(b *strings.Builder, opts Options) {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	fmt.Fprintf(b, "# %s\n\n", title)
	b.WriteString("*Generated by scanning source files*\n\n")
	if opts.Root != "" {
		fmt.Fprintf(b, "- **Root**: `%s`\n", opts.Root)
	}
	if !opts.GeneratedAt.IsZero() {
		fmt.Fprintf(b, "- **Generated at**: %s\n", opts.GeneratedAt.Format(time.RFC3339))
	}
	if opts.Root != "" || !opts.GeneratedAt.IsZero() {
		b.WriteString("\n")
	}
}

func writeSummary(b *strings.Builder, t models.Totals) {
	b.WriteString("## Global Summary\n\n")
	fmt.Fprintf(b, "- **Overall coverage**: %.1f%%\n", t.Coverage)
	fmt.Fprintf(b, "- **Classes**: %d/%d (%.1f%%)\n", t.DocumentedClasses, t.Classes, t.ClassCoverage)
	fmt.Fprintf(b, "- **Methods**: %d/%d (%.1f%%)\n", t.DocumentedMethods, t.Methods, t.MethodCoverage)
	fmt.Fprintf(b, "- **Namespaces analyzed**: %d\n\n", t.Namespaces)

	status := Classify(t.Coverage)
	fmt.Fprintf(b, "**Status**: %s %s\n\n", status.Glyph(), status)
}

func writeNamespaceTable(b *strings.Builder, stats map[string]*models.NamespaceStats, names []string) {
	b.WriteString("## Coverage by Namespace\n\n")
	b.WriteString("| Namespace | Classes | Methods | Coverage | Status |\n")
	b.WriteString("|-----------|---------|---------|----------|--------|\n")
	for _, name := range names {
		ns := stats[name]
		cov := models.Percent(ns.DocumentedSymbols(), ns.Symbols())
		fmt.Fprintf(b, "| %s | %d/%d | %d/%d | %.1f%% | %s |\n",
			LastSegment(name),
			ns.DocumentedClasses, ns.Classes,
			ns.DocumentedMethods, ns.Methods,
			cov, RowGlyph(cov))
	}
	b.WriteString("\n")
}

func writeFileDetails(b *strings.Builder, stats map[string]*models.NamespaceStats, names []string) {
	b.WriteString("## Details by File\n\n")
	for _, name := range names {
		ns := stats[name]
		if len(ns.Files) == 0 {
			continue
		}
		fmt.Fprintf(b, "### Namespace: %s\n\n", name)

		for _, f := range SortedFiles(ns.Files) {
			cov := models.Percent(f.DocumentedSymbols(), f.Symbols())
			fmt.Fprintf(b, "#### %s %s (%.0f%%)\n\n", RowGlyph(cov), f.Name, cov)

			undocumented := f.Undocumented()
			if len(undocumented) == 0 {
				continue
			}
			b.WriteString("**Undocumented**:\n\n")
			for _, d := range undocumented {
				fmt.Fprintf(b, "- %s\n", FormatDeclaration(d))
			}
			b.WriteString("\n")
		}
	}
}

func writeActionPlan(b *strings.Builder, t models.Totals) {
	b.WriteString("## Action Plan\n\n")

	step := 1
	if n := t.Classes - t.DocumentedClasses; n > 0 {
		fmt.Fprintf(b, "%d. **Document %d class(es)**\n", step, n)
		step++
	}
	if n := t.Methods - t.DocumentedMethods; n > 0 {
		fmt.Fprintf(b, "%d. **Document %d method(s)**\n", step, n)
	}

	if t.Coverage < ExcellentThreshold {
		b.WriteString("\n**Recommendations**:\n\n")
		b.WriteString("- Start with the public entry points of each namespace\n")
		b.WriteString("- Batch-document trivial accessors (getters/setters)\n")
		b.WriteString("- Write the business-critical service methods by hand\n")
		return
	}
	b.WriteString("\n**Congratulations! Every public class and method is documented.**\n")
}

// FormatDeclaration 渲染为 `<kind> <name> (line <n>)`，方法名带 ()
func FormatDeclaration(d models.Declaration) string {
	name := d.Name
	if d.IsMethod() {
		name += "()"
	}
	return fmt.Sprintf("%s %s (line %d)", d.Kind, name, d.Line)
}

// LastSegment 返回点分命名空间的最后一段，用于展示
func LastSegment(namespace string) string {
	if i := strings.LastIndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// SortedFiles 返回按展示名排序的副本，名称相同时按路径排序
func SortedFiles(files []*models.FileResult) []*models.FileResult {
	out := make([]*models.FileResult, len(files))
	copy(out, files)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out
}

func sortedNamespaces(stats map[string]*models.NamespaceStats) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
