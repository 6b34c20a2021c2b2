// Package style 提供终端样式化输出：覆盖率表格、Markdown 预览、JSON 高亮与树形视图
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yeisme/jdoccov/pkg/report"
)

// 颜色集中定义，方便统一调整
const (
	// 主题强调色，用于标题背景等醒目元素
	ColorAccentPrimary = lipgloss.Color("#33A1FF")

	// 强调背景上的文本色
	ColorAccentText = lipgloss.Color("#FFFFFF")

	// 普通文本
	ColorText = lipgloss.Color("#E4E4E4")

	// 边框与树形连接符
	ColorBorder = lipgloss.Color("#444444")

	// 覆盖率分级颜色
	ColorSuccess = lipgloss.Color("#22C55E")
	ColorWarning = lipgloss.Color("#EAB308")
	ColorDanger  = lipgloss.Color("#FF5555")

	// JSON 高亮颜色
	ColorJSONKey    = lipgloss.Color("#55bcf4ff") // 键名
	ColorJSONValue  = ColorAccentText             // 字符串值
	ColorJSONNumber = lipgloss.Color("#d4ec19ff") // 数字
	ColorJSONBool   = lipgloss.Color("#dfab49ff") // 布尔
	ColorJSONNull   = lipgloss.Color("#6272A4")   // null
	ColorJSONPunct  = lipgloss.Color("#6B7280")   // 标点
)

// CoverageColor 按覆盖率百分比选择颜色，阈值与报告的 GOOD / MEDIUM 等级一致
func CoverageColor(pct float64) lipgloss.Color {
	switch {
	case pct >= report.GoodThreshold:
		return ColorSuccess
	case pct >= report.MediumThreshold:
		return ColorWarning
	default:
		return ColorDanger
	}
}
