package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PrintJSON 以缩进并高亮的方式输出 JSON
// v 为 string 或 []byte 时视为原始 JSON 文本，其他值先经 json.MarshalIndent 编码
func PrintJSON(w io.Writer, v any) error {
	pretty, err := FormatJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, colorizeJSON(pretty))
	return err
}

// FormatJSON 返回缩进后的 JSON 文本，保证以换行结尾
func FormatJSON(v any) (string, error) {
	var raw []byte
	switch x := v.(type) {
	case nil:
		return "null\n", nil
	case string:
		raw = []byte(x)
	case []byte:
		raw = x
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "null\n", nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	out.WriteByte('\n')
	return out.String(), nil
}

type jsonPalette struct {
	key, str, num, boolean, null, punct lipgloss.Style
}

func newJSONPalette() jsonPalette {
	return jsonPalette{
		key:     lipgloss.NewStyle().Foreground(ColorJSONKey).Bold(true),
		str:     lipgloss.NewStyle().Foreground(ColorJSONValue),
		num:     lipgloss.NewStyle().Foreground(ColorJSONNumber),
		boolean: lipgloss.NewStyle().Foreground(ColorJSONBool),
		null:    lipgloss.NewStyle().Foreground(ColorJSONNull),
		punct:   lipgloss.NewStyle().Foreground(ColorJSONPunct),
	}
}

// colorizeJSON 对已缩进的合法 JSON 着色，空白原样保留
func colorizeJSON(s string) string {
	p := newJSONPalette()
	var b strings.Builder
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == '"':
			end := stringEnd(s, i)
			token := s[i:end]
			if nextNonSpace(s, end) == ':' {
				b.WriteString(p.key.Render(token))
			} else {
				b.WriteString(p.str.Render(token))
			}
			i = end
		case strings.IndexByte("{}[]:,", ch) >= 0:
			b.WriteString(p.punct.Render(string(ch)))
			i++
		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := numberEnd(s, i)
			b.WriteString(p.num.Render(s[i:end]))
			i = end
		case strings.HasPrefix(s[i:], "true"):
			b.WriteString(p.boolean.Render("true"))
			i += len("true")
		case strings.HasPrefix(s[i:], "false"):
			b.WriteString(p.boolean.Render("false"))
			i += len("false")
		case strings.HasPrefix(s[i:], "null"):
			b.WriteString(p.null.Render("null"))
			i += len("null")
		default:
			b.WriteByte(ch)
			i++
		}
	}
	return b.String()
}

// stringEnd 返回从 s[i]（起始引号）开始的字符串 token 的结束位置（半开区间）
func stringEnd(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(s)
}

func nextNonSpace(s string, i int) byte {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return s[i]
	}
	return 0
}

// numberEnd 返回数字 token 的结束位置
func numberEnd(s string, i int) int {
	j := i
	for j < len(s) && strings.IndexByte("+-0123456789.eE", s[j]) >= 0 {
		j++
	}
	return j
}
