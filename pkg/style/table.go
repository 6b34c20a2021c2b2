package style

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xterm "github.com/charmbracelet/x/term"
	"github.com/mattn/go-runewidth"
)

// PrintTable 输出带边框的表格
// width <= 0 时自动探测终端宽度（失败回退到 80）。
// colorColumn >= 0 时，该列按单元格中的百分比数值着色
func PrintTable(w io.Writer, headers []string, rows [][]string, width int, colorColumn int) error {
	if width <= 0 {
		width = detectTerminalWidth(w)
		if width <= 0 {
			width = 80
		}
	}

	re := lipgloss.NewRenderer(w)
	baseStyle := re.NewStyle().Padding(0, 1)
	headerStyle := baseStyle.Foreground(lipgloss.Color("252")).Bold(true)

	upper := make([]string, len(headers))
	for i, h := range headers {
		upper[i] = strings.ToUpper(h)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(upper...).
		Width(width).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == colorColumn && row >= 0 && row < len(rows) {
				if pct, ok := parsePercent(rows[row][col]); ok {
					return baseStyle.Foreground(CoverageColor(pct))
				}
			}
			return baseStyle
		})

	_, err := fmt.Fprintln(w, tbl)
	return err
}

// Truncate 按显示宽度截断字符串，超出时以 "…" 结尾
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// parsePercent 解析 "87.5%" 这样的单元格
func parsePercent(cell string) (float64, bool) {
	cell = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cell), "%"))
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// detectTerminalWidth 尝试从 writer 获取终端宽度，失败则返回 0
func detectTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if fd := f.Fd(); fd > 0 {
			if cols, _, err := xterm.GetSize(fd); err == nil && cols > 0 {
				return cols
			}
		}
	}
	// 部分环境只设置 COLUMNS
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
