package coverage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/jdoccov/pkg/configs"
	"github.com/yeisme/jdoccov/pkg/models"
	"github.com/yeisme/jdoccov/pkg/report"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// sampleTree 同一命名空间下两个文件：一个 2/2 已文档化，一个 0/2
func sampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "svc/Documented.java"), `package com.acme.service;

/** Documented. */
public class Documented {
    /** Runs. */
    public void run() {}
}
`)
	writeFile(t, filepath.Join(root, "svc/Bare.java"), `package com.acme.service;

public class Bare {
    public Bare() {}
    public String name() { return ""; }
}
`)
	return root
}

func TestValidateRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "A.java")
	writeFile(t, file, "")

	assert.ErrorIs(t, ValidateRoot(""), ErrMissingRoot)
	assert.ErrorIs(t, ValidateRoot(filepath.Join(dir, "missing")), ErrRootNotFound)
	assert.ErrorIs(t, ValidateRoot(file), ErrNotDirectory)
	assert.NoError(t, ValidateRoot(dir))

	err := ValidateRoot(filepath.Join(dir, "missing"))
	assert.Contains(t, err.Error(), "directory not found: ")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(ErrMissingRoot))
	assert.Equal(t, 2, ExitCode(ValidateRoot(filepath.Join(t.TempDir(), "x"))))
	assert.Equal(t, 3, ExitCode(ErrNoSourceFiles))
	assert.Equal(t, 3, ExitCode(ErrNoDeclarations))
	assert.Equal(t, 3, ExitCode(fmt.Errorf("%w %q", ErrFilterNoMatch, "zzz")))
	assert.Equal(t, 1, ExitCode(errors.New("write report: disk full")))
}

func TestRunEndToEnd(t *testing.T) {
	root := sampleTree(t)
	outDir := t.TempDir()
	output := filepath.Join(outDir, DefaultOutput)
	var stdout bytes.Buffer

	res, err := Run(context.Background(), Options{Root: root, Output: output, Stdout: &stdout})
	require.NoError(t, err)

	ns := res.Stats["com.acme.service"]
	require.NotNil(t, ns)
	assert.Equal(t, 2, ns.DocumentedSymbols())
	assert.Equal(t, 4, ns.Symbols())
	assert.Equal(t, report.StatusMedium, res.Status)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "| service | 1/2 | 1/2 | 50.0% | "+report.GlyphPartial+" |")
	assert.Contains(t, string(content), "- method name() (line 5)")
	// 构造函数不计入
	assert.NotContains(t, string(content), "method Bare()")

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Scanning "+root+" ...", lines[0])
	assert.Equal(t, "Report written to "+output, lines[1])
	assert.Equal(t, "Classes: 1/2  Methods: 1/2  Coverage: 50.0%", lines[2])
}

func TestRunIsReproducible(t *testing.T) {
	root := sampleTree(t)
	out := t.TempDir()

	first, err := Run(context.Background(), Options{Root: root, Output: filepath.Join(out, "a.md"), Stdout: &bytes.Buffer{}})
	require.NoError(t, err)
	second, err := Run(context.Background(), Options{Root: root, Output: filepath.Join(out, "b.md"), Stdout: &bytes.Buffer{}})
	require.NoError(t, err)

	assert.Equal(t, first.Report, second.Report)
	assert.Equal(t, first.Totals, second.Totals)
}

func TestRunWithTimestamp(t *testing.T) {
	root := sampleTree(t)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	res, err := Run(context.Background(), Options{
		Root:   root,
		Output: filepath.Join(t.TempDir(), "r.md"),
		Stdout: &bytes.Buffer{},
		Now:    func() time.Time { return fixed },
	})
	require.NoError(t, err)
	assert.Contains(t, res.Report, "2025-06-01T12:00:00Z")
}

func TestRunNoSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "readme.txt"), "nothing here")
	output := filepath.Join(t.TempDir(), DefaultOutput)

	_, err := Run(context.Background(), Options{Root: root, Output: output, Stdout: &bytes.Buffer{}})
	require.ErrorIs(t, err, ErrNoSourceFiles)
	assert.Equal(t, 3, ExitCode(err))
	assert.NoFileExists(t, output)
}

func TestRunNoDeclarations(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package-info.java"), "/** Docs. */\npackage a.b;\n")
	output := filepath.Join(t.TempDir(), DefaultOutput)

	_, err := Run(context.Background(), Options{Root: root, Output: output, Stdout: &bytes.Buffer{}})
	require.ErrorIs(t, err, ErrNoDeclarations)
	assert.NoFileExists(t, output)
}

func TestRunFilterMatchingNothing(t *testing.T) {
	root := sampleTree(t)
	output := filepath.Join(t.TempDir(), DefaultOutput)
	var stdout bytes.Buffer

	_, err := Run(context.Background(), Options{Root: root, Output: output, Filter: "zzz", Stdout: &stdout})
	require.ErrorIs(t, err, ErrFilterNoMatch)
	assert.ErrorContains(t, err, `"zzz"`)
	assert.NoFileExists(t, output)
	assert.Equal(t, "Scanning "+root+" ...\n", stdout.String())

	// 能匹配的过滤条件照常出报告
	_, err = Run(context.Background(), Options{Root: root, Output: output, Filter: "svc", Stdout: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestRunInvalidRootWritesNothing(t *testing.T) {
	var stdout bytes.Buffer
	_, err := Run(context.Background(), Options{Root: "", Stdout: &stdout})
	require.ErrorIs(t, err, ErrMissingRoot)
	assert.Empty(t, stdout.String())
}

func TestRunStatsExport(t *testing.T) {
	root := sampleTree(t)
	dir := t.TempDir()
	statsPath := filepath.Join(dir, "stats.json")
	var stdout bytes.Buffer

	_, err := Run(context.Background(), Options{
		Root:      root,
		Output:    filepath.Join(dir, "r.md"),
		StatsFile: statsPath,
		Stdout:    &stdout,
	})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Stats written to "+statsPath)

	raw, err := os.ReadFile(statsPath)
	require.NoError(t, err)
	var snap models.CoverageSnapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, "MEDIUM", snap.Status)
	assert.Equal(t, 2, snap.Totals.Classes)
	require.Len(t, snap.Namespaces, 1)
	assert.Equal(t, "com.acme.service", snap.Namespaces[0].Name)

	_, err = Run(context.Background(), Options{
		Root:      root,
		Output:    filepath.Join(dir, "r.md"),
		StatsFile: filepath.Join(dir, "stats.csv"),
		Stdout:    &bytes.Buffer{},
	})
	assert.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestRunTable(t *testing.T) {
	root := sampleTree(t)
	var stdout bytes.Buffer

	_, err := Run(context.Background(), Options{
		Root:   root,
		Output: filepath.Join(t.TempDir(), "r.md"),
		Table:  true,
		Width:  80,
		Stdout: &stdout,
	})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "com.acme.service")
	assert.Contains(t, stdout.String(), "50.0%")
	assert.Contains(t, stdout.String(), "TOTALS")
	assert.Contains(t, stdout.String(), "1/2")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(stdout.String()), "Coverage: 50.0%"))
}

func TestFilterNamespaces(t *testing.T) {
	stats := map[string]*models.NamespaceStats{
		"com.acme.service": {Name: "com.acme.service"},
		"com.acme.model":   {Name: "com.acme.model"},
		"org.other.util":   {Name: "org.other.util"},
	}

	assert.Len(t, FilterNamespaces(stats, ""), 3)
	assert.Len(t, FilterNamespaces(stats, "ACME"), 2)

	got := FilterNamespaces(stats, "svc")
	require.Len(t, got, 1)
	assert.Contains(t, got, "com.acme.service")

	assert.Empty(t, FilterNamespaces(stats, "zzz"))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Classes: 0/0  Methods: 0/0  Coverage: 0.0%", Summary(models.Totals{}))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &configs.Config{
		Scan:   configs.ScanConfig{Extensions: []string{".java"}, Lookback: 25, Concurrency: 4, MaxFileSize: 1024},
		Report: configs.ReportConfig{Output: "out.md", Title: "T", Theme: "light", Width: 100},
	}
	opts := OptionsFromConfig(cfg)

	assert.Equal(t, "out.md", opts.Output)
	assert.Equal(t, "T", opts.Title)
	assert.Equal(t, 25, opts.Scan.Lookback)
	assert.Equal(t, 4, opts.Scan.Concurrency)
	assert.Equal(t, int64(1024), opts.Scan.MaxFileSizeBytes)
	assert.Equal(t, DefaultOutput, OptionsFromConfig(nil).Output)
}
