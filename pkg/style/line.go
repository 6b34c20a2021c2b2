package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PrintHeading 打印一个区块标题
func PrintHeading(w io.Writer, title string) error {
	style := lipgloss.NewStyle().
		Foreground(ColorAccentText).
		Background(ColorAccentPrimary).
		Bold(true).
		Padding(0, 1)
	_, err := fmt.Fprintln(w, style.Render(strings.ToUpper(title)))
	return err
}

// PrintCoverageLine 打印一行 "label  d/t  pct%"，百分比按覆盖率着色
func PrintCoverageLine(w io.Writer, label string, documented, total int, pct float64) error {
	labelStyle := lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	pctStyle := lipgloss.NewStyle().Foreground(CoverageColor(pct))
	_, err := fmt.Fprintf(w, "%s  %d/%d  %s\n",
		labelStyle.Render(label), documented, total, pctStyle.Render(fmt.Sprintf("%.1f%%", pct)))
	return err
}
