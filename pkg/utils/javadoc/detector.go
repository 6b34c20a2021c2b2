package javadoc

import "strings"

// Detector 判断声明行之前是否有文档注释
type Detector struct {
	// Lookback 向上检查的最大行数
	Lookback int
}

// NewDetector 创建 Detector，lookback<=0 时使用 DefaultLookback
func NewDetector(lookback int) Detector {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return Detector{Lookback: lookback}
}

// HasPrecedingDoc 使用默认窗口判断 lines[index] 之前是否有 Javadoc
func HasPrecedingDoc(lines []string, index int) bool {
	return NewDetector(DefaultLookback).HasPrecedingDoc(lines, index)
}

// HasPrecedingDoc 从 index-1 向上查找：遇到 `/**` 即成功，可穿透的行跳过，其余代码行终止查找
func (d Detector) HasPrecedingDoc(lines []string, index int) bool {
	window := d.Lookback
	if window <= 0 {
		window = DefaultLookback
	}
	if index > len(lines) {
		index = len(lines)
	}
	stop := max(index-window, 0)
	for i := index - 1; i >= stop; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, DocOpener) {
			return true
		}
		if isTransparent(line) {
			continue
		}
		return false
	}
	return false
}

// isTransparent 既不算文档也不阻断查找的行
// 普通的 `/*` 块注释不在其中：它会终止查找
func isTransparent(line string) bool {
	switch {
	case line == "":
		return true
	case line == "}":
		return true
	case strings.HasPrefix(line, "*"): // 注释续行与结尾 */
		return true
	case strings.HasPrefix(line, "//"):
		return true
	case strings.HasPrefix(line, "@"):
		return true
	case strings.HasPrefix(line, "import "), strings.HasPrefix(line, "package "):
		return true
	}
	return false
}
