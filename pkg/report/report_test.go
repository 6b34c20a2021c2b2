package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/jdoccov/pkg/models"
)

func fileResult(name, ns string, decls ...models.Declaration) *models.FileResult {
	f := &models.FileResult{Name: name, Path: "src/" + name, Namespace: ns, Declarations: decls}
	for _, d := range decls {
		if d.IsMethod() {
			f.Methods++
			if d.Documented {
				f.DocumentedMethods++
			}
			continue
		}
		f.Classes++
		if d.Documented {
			f.DocumentedClasses++
		}
	}
	return f
}

func statsOf(files ...*models.FileResult) map[string]*models.NamespaceStats {
	out := map[string]*models.NamespaceStats{}
	for _, f := range files {
		ns, ok := out[f.Namespace]
		if !ok {
			ns = &models.NamespaceStats{Name: f.Namespace}
			out[f.Namespace] = ns
		}
		ns.Add(f)
	}
	return out
}

func TestClassify(t *testing.T) {
	cases := []struct {
		coverage float64
		want     Status
	}{
		{100, StatusExcellent},
		{99.9, StatusGood},
		{80, StatusGood},
		{79.9, StatusMedium},
		{50, StatusMedium},
		{49.9, StatusInsufficient},
		{0, StatusInsufficient},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.coverage), "coverage %.1f", tc.coverage)
	}
}

func TestRowGlyph(t *testing.T) {
	assert.Equal(t, GlyphComplete, RowGlyph(100))
	assert.Equal(t, GlyphPartial, RowGlyph(99.9))
	assert.Equal(t, GlyphPartial, RowGlyph(50))
	assert.Equal(t, GlyphMissing, RowGlyph(49.9))
}

// 行级三档与全局四档在 [80, 100) 区间故意不一致
func TestRowGlyphAndStatusDiverge(t *testing.T) {
	status := Classify(85)
	assert.Equal(t, StatusGood, status)
	assert.Equal(t, GlyphComplete, status.Glyph())
	assert.Equal(t, GlyphPartial, RowGlyph(85))
}

func TestFormatDeclaration(t *testing.T) {
	assert.Equal(t, "class Foo (line 3)", FormatDeclaration(models.Declaration{Kind: models.KindClass, Name: "Foo", Line: 3}))
	assert.Equal(t, "interface Repo (line 1)", FormatDeclaration(models.Declaration{Kind: models.KindInterface, Name: "Repo", Line: 1}))
	assert.Equal(t, "method bar() (line 7)", FormatDeclaration(models.Declaration{Kind: models.KindMethod, Name: "bar", Line: 7}))
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "c", LastSegment("a.b.c"))
	assert.Equal(t, "default", LastSegment("default"))
}

func TestRenderMediumNamespace(t *testing.T) {
	full := fileResult("Full.java", "com.acme.service",
		models.Declaration{Kind: models.KindClass, Name: "Full", Line: 4, Documented: true},
		models.Declaration{Kind: models.KindMethod, Name: "run", Line: 8, Documented: true},
	)
	empty := fileResult("Empty.java", "com.acme.service",
		models.Declaration{Kind: models.KindClass, Name: "Empty", Line: 3},
		models.Declaration{Kind: models.KindMethod, Name: "stop", Line: 5},
	)

	out := Render(statsOf(full, empty), Options{})

	assert.Contains(t, out, "| service | 1/2 | 1/2 | 50.0% | "+GlyphPartial+" |")
	assert.Contains(t, out, "**Status**: "+GlyphPartial+" MEDIUM")
	assert.Contains(t, out, "### Namespace: com.acme.service")
	assert.Contains(t, out, "- class Empty (line 3)")
	assert.Contains(t, out, "- method stop() (line 5)")
	assert.Contains(t, out, "1. **Document 1 class(es)**")
	assert.Contains(t, out, "2. **Document 1 method(s)**")
	assert.Contains(t, out, "**Recommendations**")

	// 文件按名称排序
	assert.Less(t, strings.Index(out, "Empty.java"), strings.Index(out, "Full.java"))
}

func TestRenderSectionsInOrder(t *testing.T) {
	out := Render(statsOf(
		fileResult("B.java", "z.last", models.Declaration{Kind: models.KindClass, Name: "B", Line: 1}),
		fileResult("A.java", "a.first", models.Declaration{Kind: models.KindClass, Name: "A", Line: 1, Documented: true}),
	), Options{Title: "Coverage", Root: "src/main/java"})

	sections := []string{"# Coverage", "`src/main/java`", "## Global Summary", "## Coverage by Namespace", "## Details by File", "## Action Plan"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, s)
		assert.Greater(t, idx, last, s)
		last = idx
	}
	assert.Less(t, strings.Index(out, "| first |"), strings.Index(out, "| last |"))
	assert.NotContains(t, out, "Generated at")
}

func TestRenderFullCoverage(t *testing.T) {
	out := Render(statsOf(
		fileResult("A.java", "default",
			models.Declaration{Kind: models.KindEnum, Name: "A", Line: 2, Documented: true},
		),
	), Options{GeneratedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)})

	assert.Contains(t, out, "**Status**: "+GlyphComplete+" EXCELLENT")
	assert.Contains(t, out, "Congratulations")
	assert.NotContains(t, out, "Document ")
	assert.NotContains(t, out, "**Undocumented**")
	assert.Contains(t, out, "2025-01-02T03:04:05Z")
}

func TestRenderEmptyStats(t *testing.T) {
	out := Render(map[string]*models.NamespaceStats{}, Options{})

	assert.Contains(t, out, "- **Overall coverage**: 0.0%")
	assert.Contains(t, out, "INSUFFICIENT")
	assert.NotContains(t, out, "NaN")
}

func TestRenderIsDeterministic(t *testing.T) {
	stats := statsOf(
		fileResult("X.java", "p", models.Declaration{Kind: models.KindClass, Name: "X", Line: 1}),
		fileResult("X.java", "p", models.Declaration{Kind: models.KindClass, Name: "X", Line: 9}),
	)
	assert.Equal(t, Render(stats, Options{}), Render(stats, Options{}))
}

func TestSortedFilesDoesNotMutate(t *testing.T) {
	files := []*models.FileResult{{Name: "b.java"}, {Name: "a.java"}}
	sorted := SortedFiles(files)

	assert.Equal(t, "a.java", sorted[0].Name)
	assert.Equal(t, "b.java", files[0].Name)
}
