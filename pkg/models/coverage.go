// Package models 定义扫描、聚合与导出共用的数据结构
package models

import "sort"

// DefaultNamespace 没有 package 声明的文件归入的命名空间
const DefaultNamespace = "default"

// 声明类型
const (
	KindClass     = "class"
	KindInterface = "interface"
	KindEnum      = "enum"
	KindMethod    = "method"
)

// Declaration 记录一个被定位到的 public 符号
type Declaration struct {
	Kind       string `json:"kind" yaml:"kind" toml:"kind"`                                                 // class / interface / enum / method
	Name       string `json:"name" yaml:"name" toml:"name"`                                                 // 符号名
	Line       int    `json:"line" yaml:"line" toml:"line"`                                                 // 1-based 行号
	Documented bool   `json:"documented" yaml:"documented" toml:"documented"`                               // 是否存在前置 Javadoc
	ReturnType string `json:"return_type,omitempty" yaml:"return_type,omitempty" toml:"return_type,omitempty"` // 仅方法有效
}

// IsMethod 判断声明是否为方法
func (d Declaration) IsMethod() bool {
	return d.Kind == KindMethod
}

// FileResult 单个源文件的扫描结果
type FileResult struct {
	Name              string        `json:"name" yaml:"name" toml:"name"` // 文件名，用于展示与排序
	Path              string        `json:"path" yaml:"path" toml:"path"` // 相对于扫描根目录的路径（使用 `/`）
	Namespace         string        `json:"namespace" yaml:"namespace" toml:"namespace"`
	Classes           int           `json:"classes" yaml:"classes" toml:"classes"`
	DocumentedClasses int           `json:"documented_classes" yaml:"documented_classes" toml:"documented_classes"`
	Methods           int           `json:"methods" yaml:"methods" toml:"methods"`
	DocumentedMethods int           `json:"documented_methods" yaml:"documented_methods" toml:"documented_methods"`
	Declarations      []Declaration `json:"declarations,omitempty" yaml:"declarations,omitempty" toml:"declarations,omitempty"`
}

// Symbols 返回类与方法的总数
func (f *FileResult) Symbols() int {
	return f.Classes + f.Methods
}

// DocumentedSymbols 返回已文档化的类与方法总数
func (f *FileResult) DocumentedSymbols() int {
	return f.DocumentedClasses + f.DocumentedMethods
}

// Undocumented 按扫描顺序返回缺少 Javadoc 的声明
func (f *FileResult) Undocumented() []Declaration {
	var out []Declaration
	for _, d := range f.Declarations {
		if !d.Documented {
			out = append(out, d)
		}
	}
	return out
}

// NamespaceStats 单个命名空间（Java package）的聚合统计
type NamespaceStats struct {
	Name              string        `json:"name" yaml:"name" toml:"name"`
	Classes           int           `json:"classes" yaml:"classes" toml:"classes"`
	DocumentedClasses int           `json:"documented_classes" yaml:"documented_classes" toml:"documented_classes"`
	Methods           int           `json:"methods" yaml:"methods" toml:"methods"`
	DocumentedMethods int           `json:"documented_methods" yaml:"documented_methods" toml:"documented_methods"`
	Files             []*FileResult `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
}

// Add 将一个文件的计数累加到命名空间中
func (n *NamespaceStats) Add(f *FileResult) {
	n.Classes += f.Classes
	n.DocumentedClasses += f.DocumentedClasses
	n.Methods += f.Methods
	n.DocumentedMethods += f.DocumentedMethods
	n.Files = append(n.Files, f)
}

// Symbols 返回类与方法的总数
func (n *NamespaceStats) Symbols() int {
	return n.Classes + n.Methods
}

// DocumentedSymbols 返回已文档化的类与方法总数
func (n *NamespaceStats) DocumentedSymbols() int {
	return n.DocumentedClasses + n.DocumentedMethods
}

// Totals 所有命名空间的汇总
type Totals struct {
	Namespaces        int     `json:"namespaces" yaml:"namespaces" toml:"namespaces"`
	Files             int     `json:"files" yaml:"files" toml:"files"`
	Classes           int     `json:"classes" yaml:"classes" toml:"classes"`
	DocumentedClasses int     `json:"documented_classes" yaml:"documented_classes" toml:"documented_classes"`
	Methods           int     `json:"methods" yaml:"methods" toml:"methods"`
	DocumentedMethods int     `json:"documented_methods" yaml:"documented_methods" toml:"documented_methods"`
	ClassCoverage     float64 `json:"class_coverage" yaml:"class_coverage" toml:"class_coverage"`
	MethodCoverage    float64 `json:"method_coverage" yaml:"method_coverage" toml:"method_coverage"`
	Coverage          float64 `json:"coverage" yaml:"coverage" toml:"coverage"`
}

// Percent 计算百分比，分母为 0 时返回 0
func Percent(documented, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(documented) / float64(total) * 100
}

// ComputeTotals 汇总全部命名空间并计算三个覆盖率
func ComputeTotals(stats map[string]*NamespaceStats) Totals {
	var t Totals
	for _, ns := range stats {
		t.Namespaces++
		t.Files += len(ns.Files)
		t.Classes += ns.Classes
		t.DocumentedClasses += ns.DocumentedClasses
		t.Methods += ns.Methods
		t.DocumentedMethods += ns.DocumentedMethods
	}
	t.ClassCoverage = Percent(t.DocumentedClasses, t.Classes)
	t.MethodCoverage = Percent(t.DocumentedMethods, t.Methods)
	t.Coverage = Percent(t.DocumentedClasses+t.DocumentedMethods, t.Classes+t.Methods)
	return t
}

// CoverageSnapshot 是 --stats 导出的顶层结构
type CoverageSnapshot struct {
	Root       string            `json:"root" yaml:"root" toml:"root"`
	Status     string            `json:"status" yaml:"status" toml:"status"`
	Totals     Totals            `json:"totals" yaml:"totals" toml:"totals"`
	Namespaces []*NamespaceStats `json:"namespaces" yaml:"namespaces" toml:"namespaces"`
}

// BuildSnapshot 汇总 stats 并按命名空间名称排序
func BuildSnapshot(root, status string, stats map[string]*NamespaceStats) CoverageSnapshot {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	out := CoverageSnapshot{
		Root:       root,
		Status:     status,
		Totals:     ComputeTotals(stats),
		Namespaces: make([]*NamespaceStats, 0, len(names)),
	}
	for _, name := range names {
		out.Namespaces = append(out.Namespaces, stats[name])
	}
	return out
}
