package javadoc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/yeisme/jdoccov/pkg/models"
)

// 声明在行内任意位置查找，因此 `@Override public ...`、`} public ...` 同样可识别
// public 与关键字或返回类型之间不允许修饰符：`public static void main(` 不计入
var (
	packagePattern = regexp.MustCompile(`^\s*package\s+([\w.]+)\s*;`)
	classPattern   = regexp.MustCompile(`\bpublic\s+(class|interface|enum)\s+(\w+)`)
	methodPattern  = regexp.MustCompile(`\bpublic\s+(\w+(?:<.*?>)?)\s+(\w+)\s*\(`)
)

// FileScanner 是 File 的基础实现
type FileScanner struct {
	Detector         Detector
	MaxFileSizeBytes int64
}

// NewFileScanner 根据选项创建单文件扫描器
func NewFileScanner(opts Options) *FileScanner {
	return &FileScanner{
		Detector:         NewDetector(opts.lookback()),
		MaxFileSizeBytes: opts.MaxFileSizeBytes,
	}
}

// ScanFile 读取整个文件并扫描
// 非法 UTF-8 字节会被替换为 U+FFFD，UTF-8 BOM 会被去掉；任何 I/O 错误都直接返回，由上层跳过
func (s *FileScanner) ScanFile(ctx context.Context, path string) (*models.FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.MaxFileSizeBytes > 0 {
		st, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if st.Size() > s.MaxFileSizeBytes {
			return nil, fmt.Errorf("file size exceeds limit: %d > %d", st.Size(), s.MaxFileSizeBytes)
		}
	}

	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	res := s.ScanLines(lines)
	res.Name = filepath.Base(path)
	res.Path = filepath.ToSlash(path)
	return res, nil
}

// ScanLines 单次正向遍历，提取命名空间、类声明与方法声明
func (s *FileScanner) ScanLines(lines []string) *models.FileResult {
	res := &models.FileResult{Namespace: models.DefaultNamespace}

	namespaceFound := false
	currentClass := ""
	for i, line := range lines {
		if !namespaceFound {
			if m := packagePattern.FindStringSubmatch(line); m != nil {
				res.Namespace = m[1]
				namespaceFound = true
			}
		}

		if m := classPattern.FindStringSubmatch(line); m != nil {
			currentClass = m[2]
			documented := s.Detector.HasPrecedingDoc(lines, i)
			res.Classes++
			if documented {
				res.DocumentedClasses++
			}
			res.Declarations = append(res.Declarations, models.Declaration{
				Kind:       m[1],
				Name:       m[2],
				Line:       i + 1,
				Documented: documented,
			})
		}

		m := findMethod(line)
		// 方法必须位于某个类之内，且与类同名的视为构造函数
		if m == nil || currentClass == "" || m[2] == currentClass {
			continue
		}
		documented := s.Detector.HasPrecedingDoc(lines, i)
		res.Methods++
		if documented {
			res.DocumentedMethods++
		}
		res.Declarations = append(res.Declarations, models.Declaration{
			Kind:       models.KindMethod,
			Name:       m[2],
			Line:       i + 1,
			Documented: documented,
			ReturnType: m[1],
		})
	}
	return res
}

// findMethod 返回行内第一个方法签名，返回类型以 class/interface/enum 开头的跳过
func findMethod(line string) []string {
	for _, m := range methodPattern.FindAllStringSubmatch(line, -1) {
		if !isTypeKeyword(m[1]) {
			return m
		}
	}
	return nil
}

func isTypeKeyword(token string) bool {
	for _, kw := range []string{models.KindClass, models.KindInterface, models.KindEnum} {
		if strings.HasPrefix(token, kw) {
			return true
		}
	}
	return false
}

// readLines 一次性读入文件并按行切分
func readLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}

var _ File = (*FileScanner)(nil)
