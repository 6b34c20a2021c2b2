// Package javadoc 提供 Java 源码 Javadoc 覆盖率的启发式扫描
//
// 扫描完全基于逐行的正则匹配，不做词法/语法分析：
// Detector 判断某一行之前是否存在文档注释，FileScanner 提取单文件的
// 命名空间与 public 声明，ProjectScanner 遍历目录并将结果交给 Aggregator 聚合
package javadoc

import (
	"context"

	"github.com/yeisme/jdoccov/pkg/models"
)

const (
	// DefaultLookback 向上回溯查找文档注释的最大行数
	DefaultLookback = 19
	// DefaultExtension 默认扫描的源文件后缀
	DefaultExtension = ".java"
	// DocOpener Javadoc 注释的起始标记
	DocOpener = "/**"
)

// Options 用于控制扫描行为与范围
// 所有字段均为可选，零值表示采用默认策略
type Options struct {
	// 过滤与遍历
	Extensions       []string // 需要扫描的文件后缀（为空时为 .java）
	Exclude          []string // 排除匹配这些 glob 的路径
	RespectGitignore bool     // 是否遵循根目录下的 .gitignore
	MaxFileSizeBytes int64    // 超过该大小的文件将被跳过（0 表示不限制）

	// 启发式参数
	Lookback int // 文档注释回溯窗口（<=0 表示 DefaultLookback）

	// 并发控制，<=1 表示严格串行
	Concurrency int
}

// File 单文件扫描接口
type File interface {
	// ScanFile 读取并扫描单个文件
	ScanFile(ctx context.Context, path string) (*models.FileResult, error)
	// ScanLines 扫描已经读入内存的行
	ScanLines(lines []string) *models.FileResult
}

// Project 目录扫描接口
type Project interface {
	// ScanDirectory 遍历 root 并返回聚合结果
	ScanDirectory(ctx context.Context, root string) (*Aggregator, error)
}

// extensions 返回规范化后的后缀列表
func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return []string{DefaultExtension}
	}
	return o.Extensions
}

// lookback 返回有效的回溯窗口
func (o Options) lookback() int {
	if o.Lookback <= 0 {
		return DefaultLookback
	}
	return o.Lookback
}
