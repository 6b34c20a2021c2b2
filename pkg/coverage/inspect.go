package coverage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/rs/zerolog"

	"github.com/yeisme/jdoccov/pkg/models"
	"github.com/yeisme/jdoccov/pkg/report"
	"github.com/yeisme/jdoccov/pkg/style"
)

// ErrNothingToInspect 所有声明都已文档化
var ErrNothingToInspect = errors.New("every public declaration is documented")

// Picker 从候选文件中选出一个，返回下标
type Picker func(files []*models.FileResult) (int, error)

// UndocumentedFiles 返回至少有一个未文档化声明的文件，按命名空间、文件名、路径排序
func UndocumentedFiles(stats map[string]*models.NamespaceStats) []*models.FileResult {
	var out []*models.FileResult
	for _, ns := range stats {
		for _, f := range ns.Files {
			if f.DocumentedSymbols() < f.Symbols() {
				out = append(out, f)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Path < b.Path
	})
	return out
}

// FuzzyPicker 使用 go-fuzzyfinder 交互选择，右侧预览未文档化的声明
func FuzzyPicker(files []*models.FileResult) (int, error) {
	return fuzzyfinder.Find(files,
		func(i int) string {
			f := files[i]
			return fmt.Sprintf("%s  %s", f.Path, f.Namespace)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 || i >= len(files) {
				return ""
			}
			return previewText(files[i])
		}),
	)
}

// Inspect 扫描后让用户挑选一个文件，并以树形视图打印其未文档化的声明
func Inspect(ctx context.Context, opts Options, pick Picker, out io.Writer) (*models.FileResult, error) {
	if pick == nil {
		pick = FuzzyPicker
	}
	agg, err := Scan(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	stats, err := applyFilter(agg, opts.Filter, logger)
	if err != nil {
		return nil, err
	}
	files := UndocumentedFiles(stats)
	if len(files) == 0 {
		return nil, ErrNothingToInspect
	}

	idx, err := pick(files)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, err
	}
	if idx < 0 || idx >= len(files) {
		return nil, fmt.Errorf("invalid selection %d", idx)
	}

	selected := files[idx]
	if err := style.PrintTree(out, FileTree(selected)); err != nil {
		return nil, err
	}
	return selected, nil
}

// FileTree 构建 命名空间 -> 文件 -> 未文档化声明 的树
func FileTree(f *models.FileResult) style.TreeNode {
	cov := models.Percent(f.DocumentedSymbols(), f.Symbols())
	fileNode := style.TreeNode{Text: fmt.Sprintf("%s %s (%.0f%%)", report.RowGlyph(cov), f.Path, cov)}
	for _, d := range f.Undocumented() {
		fileNode.Children = append(fileNode.Children, style.TreeNode{Text: report.FormatDeclaration(d)})
	}
	return style.TreeNode{Text: f.Namespace, Children: []style.TreeNode{fileNode}}
}

func previewText(f *models.FileResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", f.Path)
	fmt.Fprintf(&b, "classes %d/%d  methods %d/%d\n\n", f.DocumentedClasses, f.Classes, f.DocumentedMethods, f.Methods)
	for _, d := range f.Undocumented() {
		fmt.Fprintf(&b, "%s\n", report.FormatDeclaration(d))
	}
	return b.String()
}
