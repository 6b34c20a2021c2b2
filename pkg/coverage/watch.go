package coverage

import (
	"context"
	"fmt"
	"os"

	"github.com/yeisme/jdoccov/pkg/utils/javadoc"
	"github.com/yeisme/jdoccov/pkg/utils/watch"
)

// RunWatch 先执行一次 Run，之后每次源码变化都重新执行，直到 ctx 结束
// 单次扫描失败只记录日志，不会结束监视
func RunWatch(ctx context.Context, opts Options) error {
	if err := ValidateRoot(opts.Root); err != nil {
		return err
	}
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	run := func() {
		if _, err := Run(ctx, opts); err != nil {
			if opts.Logger != nil {
				opts.Logger.Error().Err(err).Msg("coverage run failed")
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	run()
	fmt.Fprintln(out, "Watching for changes, press Ctrl+C to stop")

	exts := opts.Scan.Extensions
	if len(exts) == 0 {
		exts = []string{javadoc.DefaultExtension}
	}
	return watch.Watch(ctx, opts.Root, watch.Options{
		Extensions: exts,
		Exclude:    opts.Scan.Exclude,
		Logger:     opts.Logger,
	}, run)
}
