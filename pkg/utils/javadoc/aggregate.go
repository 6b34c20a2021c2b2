package javadoc

import (
	"sort"

	"github.com/yeisme/jdoccov/pkg/models"
)

// Aggregator 把单文件结果累加到命名空间
// 一次扫描对应一个实例，非并发安全
type Aggregator struct {
	stats   map[string]*models.NamespaceStats
	files   int // 遍历匹配到的源文件数
	skipped int // 读取失败被跳过的文件数
}

// NewAggregator 创建空的 Aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{stats: make(map[string]*models.NamespaceStats)}
}

// Add 把文件计入其命名空间（不存在则创建）
// 没有任何声明的文件不留痕迹，返回 false
func (a *Aggregator) Add(f *models.FileResult) bool {
	if f == nil || f.Symbols() == 0 {
		return false
	}
	ns := f.Namespace
	if ns == "" {
		ns = models.DefaultNamespace
	}
	entry, ok := a.stats[ns]
	if !ok {
		entry = &models.NamespaceStats{Name: ns}
		a.stats[ns] = entry
	}
	entry.Add(f)
	return true
}

// Get 返回命名空间统计，不存在时为 nil
func (a *Aggregator) Get(namespace string) *models.NamespaceStats {
	return a.stats[namespace]
}

// Stats 返回命名空间统计表
func (a *Aggregator) Stats() map[string]*models.NamespaceStats {
	return a.stats
}

// Namespaces 按字典序返回命名空间
func (a *Aggregator) Namespaces() []string {
	names := make([]string, 0, len(a.stats))
	for name := range a.stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Totals 汇总所有命名空间
func (a *Aggregator) Totals() models.Totals {
	return models.ComputeTotals(a.stats)
}

// Files 匹配到的源文件数，包含被跳过和没有声明的文件
func (a *Aggregator) Files() int {
	return a.files
}

// Skipped 因读取错误被跳过的文件数
func (a *Aggregator) Skipped() int {
	return a.skipped
}

// Snapshot 生成可导出的视图，命名空间按名称排序
func (a *Aggregator) Snapshot(root, status string) models.CoverageSnapshot {
	return models.BuildSnapshot(root, status, a.stats)
}
