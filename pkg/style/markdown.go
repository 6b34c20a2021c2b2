package style

import (
	"io"

	"github.com/charmbracelet/glamour"
)

const (
	minMarkdownWidth = 80
	maxMarkdownWidth = 120
)

// RenderMarkdown 用 glamour 渲染 Markdown 报告并写入 w
//
// width <= 0 时探测终端宽度，最终宽度限制在 [80, 120] 且不超过终端宽度；
// theme 为空时使用 "dark"。
func RenderMarkdown(w io.Writer, input string, width int, theme string) error {
	if theme == "" {
		theme = "dark"
	}
	termWidth := detectTerminalWidth(w)
	if termWidth <= 0 {
		termWidth = minMarkdownWidth
	}
	if width <= 0 {
		width = termWidth
	}
	width = max(width, minMarkdownWidth)
	if width > maxMarkdownWidth {
		width = max(min(maxMarkdownWidth, termWidth), minMarkdownWidth)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
		glamour.WithInlineTableLinks(true),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(input)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
