// Package watch 监视源码目录的变化，并在防抖后触发回调
//
// 只关心指定后缀的文件；写事件会与缓存的文件状态（大小、修改时间、内容哈希）比较，
// 编辑器保存时产生的重复事件不会触发回调。
package watch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce 默认防抖时长
const DefaultDebounce = 300 * time.Millisecond

// maxHashSize 超过该大小的文件只比较大小与修改时间
const maxHashSize = 1 << 20

// Func 变化发生后的回调
type Func func()

// Options 监视选项
type Options struct {
	Extensions []string      // 关心的后缀，例如 .java
	Exclude    []string      // 跳过匹配这些 glob 的目录或文件
	Debounce   time.Duration // <=0 时使用 DefaultDebounce
	Logger     *zerolog.Logger
}

type fileState struct {
	modTime time.Time
	size    int64
	hash    string
}

// watcher 持有一次 Watch 调用的运行时状态，只在事件循环 goroutine 中访问
type watcher struct {
	root  string
	opts  Options
	fsw   *fsnotify.Watcher
	cache map[string]fileState
	log   *zerolog.Logger
}

// Watch 阻塞直到 ctx 结束；每批有效变化在防抖后调用一次 hook
func Watch(ctx context.Context, root string, opts Options, hook Func) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	w := &watcher{root: root, opts: opts, fsw: fsw, cache: map[string]fileState{}, log: opts.Logger}
	if w.log == nil {
		nop := zerolog.Nop()
		w.log = &nop
	}
	if err := w.addTree(root); err != nil {
		return err
	}
	w.log.Info().Str("root", root).Int("files", len(w.cache)).Msg("watching for changes")

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	var (
		timer  *time.Timer
		fireCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fireCh = timer.C
		case <-fireCh:
			fireCh = nil
			w.log.Debug().Msg("change detected after debounce")
			hook()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

// addTree 注册 dir 及其所有未被排除的子目录，并记录已有文件的状态
func (w *watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && w.skipDir(path) {
				return filepath.SkipDir
			}
			if err := w.fsw.Add(path); err != nil {
				w.log.Warn().Err(err).Str("dir", path).Msg("failed to watch directory")
			}
			return nil
		}
		if w.relevant(path) {
			if st, ok := stat(path); ok {
				w.cache[path] = st
			}
		}
		return nil
	})
}

// handle 更新缓存，返回该事件是否代表一次真实变化
func (w *watcher) handle(event fsnotify.Event) bool {
	name := event.Name
	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if !w.skipDir(name) {
				if err := w.addTree(name); err != nil {
					w.log.Warn().Err(err).Str("dir", name).Msg("failed to watch new directory")
				}
			}
			return false
		}
		if !w.relevant(name) {
			return false
		}
		return w.refresh(name)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if _, tracked := w.cache[name]; tracked {
			delete(w.cache, name)
			return true
		}
		return false
	case event.Has(fsnotify.Write):
		if !w.relevant(name) {
			return false
		}
		return w.refresh(name)
	}
	return false
}

// refresh 重新读取文件状态，与缓存不同则视为变化
func (w *watcher) refresh(name string) bool {
	next, ok := stat(name)
	if !ok {
		if _, tracked := w.cache[name]; tracked {
			delete(w.cache, name)
			return true
		}
		return false
	}
	prev, tracked := w.cache[name]
	w.cache[name] = next
	// 编辑器保存时常先截断为 0 字节，等内容写入后再判断
	if next.size == 0 && tracked && prev.size > 0 {
		return false
	}
	return !tracked || changed(prev, next)
}

func (w *watcher) relevant(path string) bool {
	if len(w.opts.Extensions) > 0 && !hasExtension(path, w.opts.Extensions) {
		return false
	}
	return !w.excluded(path)
}

func (w *watcher) skipDir(path string) bool {
	if filepath.Base(path) == ".git" {
		return true
	}
	return w.excluded(path)
}

func (w *watcher) excluded(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, p := range w.opts.Exclude {
		p = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(p)), "./")
		if p == "" {
			continue
		}
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(p, filepath.Base(rel)); ok {
			return true
		}
		if p = strings.TrimSuffix(p, "/"); strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

// changed 优先比较内容哈希，没有哈希时比较大小与修改时间
func changed(prev, next fileState) bool {
	if prev.hash != "" && next.hash != "" {
		return prev.hash != next.hash
	}
	return prev.size != next.size || !prev.modTime.Equal(next.modTime)
}

func stat(path string) (fileState, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fileState{}, false
	}
	st := fileState{modTime: info.ModTime(), size: info.Size()}
	if info.Size() <= maxHashSize {
		st.hash = hashFile(path)
	}
	return st, true
}

func hashFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}
