package javadoc

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yeisme/jdoccov/pkg/models"
	"github.com/yeisme/jdoccov/pkg/utils/gitignore"
)

// ProjectScanner 是 Project 接口的实现
// 目录遍历与单文件扫描分离：先收集文件，再逐个（或由 worker 并发）扫描，
// 最后严格按遍历顺序把结果写入 Aggregator
type ProjectScanner struct {
	FileScanner File
	Options     Options
	Logger      *zerolog.Logger // 为 nil 时不输出日志
}

// NewProjectScanner 创建目录扫描器
func NewProjectScanner(opts Options, logger *zerolog.Logger) *ProjectScanner {
	return &ProjectScanner{
		FileScanner: NewFileScanner(opts),
		Options:     opts,
		Logger:      logger,
	}
}

// ScanDirectory 遍历 root 下所有匹配后缀的文件并聚合
// 单个文件读取失败只记录警告并跳过；只有遍历本身失败或 ctx 被取消时才返回错误
func (p *ProjectScanner) ScanDirectory(ctx context.Context, root string) (*Aggregator, error) {
	p = ensureScanner(p)

	gi := loadGitIgnore(root, p.Options.RespectGitignore)
	files, err := collectFiles(ctx, root, p.Options, gi)
	if err != nil {
		return nil, err
	}

	agg := NewAggregator()
	agg.files = len(files)

	results := p.scanAll(ctx, root, files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, res := range results {
		if res.err != nil {
			agg.skipped++
			p.logger().Warn().Err(res.err).Str("file", toRelSlash(root, files[i])).Msg("skip unreadable file")
			continue
		}
		if agg.Add(res.info) {
			p.logger().Debug().
				Str("file", res.info.Path).
				Str("namespace", res.info.Namespace).
				Int("classes", res.info.Classes).
				Int("methods", res.info.Methods).
				Msg("scanned")
		}
	}
	return agg, nil
}

type scanOutcome struct {
	info *models.FileResult
	err  error
}

// scanAll 扫描所有文件，返回与 files 下标一一对应的结果
// Concurrency<=1 时严格串行；否则使用 worker pool，每个 worker 只写自己负责的下标
func (p *ProjectScanner) scanAll(ctx context.Context, root string, files []string) []scanOutcome {
	out := make([]scanOutcome, len(files))
	conc := p.Options.Concurrency
	if conc <= 1 || len(files) <= 1 {
		for i, f := range files {
			if ctx.Err() != nil {
				break
			}
			out[i] = p.scanOne(ctx, root, f)
		}
		return out
	}

	inCh := make(chan int)
	var wg sync.WaitGroup
	wg.Add(conc)
	for range conc {
		go func() {
			defer wg.Done()
			for i := range inCh {
				out[i] = p.scanOne(ctx, root, files[i])
			}
		}()
	}
	for i := range files {
		if ctx.Err() != nil {
			break
		}
		inCh <- i
	}
	close(inCh)
	wg.Wait()
	return out
}

// scanOne 扫描单个文件，并把路径改写为相对于 root 的路径
func (p *ProjectScanner) scanOne(ctx context.Context, root, path string) scanOutcome {
	info, err := p.FileScanner.ScanFile(ctx, path)
	if err != nil {
		return scanOutcome{err: err}
	}
	info.Path = toRelSlash(root, path)
	return scanOutcome{info: info}
}

func (p *ProjectScanner) logger() *zerolog.Logger {
	if p.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return p.Logger
}

var _ Project = (*ProjectScanner)(nil)

// ensureScanner 为未初始化的字段填充默认实现
func ensureScanner(p *ProjectScanner) *ProjectScanner {
	if p == nil {
		p = &ProjectScanner{}
	}
	if p.FileScanner == nil {
		p.FileScanner = NewFileScanner(p.Options)
	}
	return p
}

// loadGitIgnore 在 respect 为 true 时加载根目录的 .gitignore
func loadGitIgnore(root string, respect bool) *gitignore.GitIgnore {
	if !respect {
		return nil
	}
	gi, err := gitignore.LoadGitIgnoreFromDir(root)
	if err != nil {
		return &gitignore.GitIgnore{}
	}
	return gi
}

// collectFiles 递归遍历 root，收集后缀匹配且未被过滤的文件，顺序为 WalkDir 的字典序
func collectFiles(ctx context.Context, root string, opts Options, gi *gitignore.GitIgnore) ([]string, error) {
	exts := opts.extensions()
	files := make([]string, 0, 256)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if shouldSkipDir(toRelSlash(root, path), opts, gi) {
				return filepath.SkipDir
			}
			return nil
		}

		if !hasExtension(path, exts) {
			return nil
		}
		rel := toRelSlash(root, path)
		if gi != nil && gi.IsIgnored(rel) {
			return nil
		}
		if matchesAny(rel, opts.Exclude) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// hasExtension 不区分大小写地比较后缀
func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}

// shouldSkipDir 判断是否跳过整个目录：.git 总是跳过，其次是 .gitignore 与 exclude 规则
func shouldSkipDir(relSlash string, opts Options, gi *gitignore.GitIgnore) bool {
	if relSlash == ".git" || strings.HasSuffix(relSlash, "/.git") {
		return true
	}
	if gi != nil && gi.IsIgnored(relSlash) {
		return true
	}
	for _, raw := range opts.Exclude {
		p := normalizePattern(raw)
		if p == "" {
			continue
		}
		p = strings.TrimSuffix(strings.TrimSuffix(p, "/*"), "/")
		if p == relSlash || strings.HasPrefix(relSlash, p+"/") {
			return true
		}
	}
	return matchesAny(relSlash, opts.Exclude)
}

// matchesAny 检查相对路径是否匹配任意 glob 模式（同时尝试只匹配文件名）
func matchesAny(relPath string, patterns []string) bool {
	for _, raw := range patterns {
		p := normalizePattern(raw)
		if p == "" {
			continue
		}
		if ok, _ := filepath.Match(p, relPath); ok {
			return true
		}
		if ok, _ := filepath.Match(p, filepath.Base(relPath)); ok {
			return true
		}
	}
	return false
}

// normalizePattern 将模式统一为 `/` 分隔并去掉前导 `./`
func normalizePattern(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if after, ok := strings.CutPrefix(p, "./"); ok {
		p = after
	}
	return p
}

// toRelSlash 将 path 转换为相对于 root、以 `/` 分隔的路径
func toRelSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
