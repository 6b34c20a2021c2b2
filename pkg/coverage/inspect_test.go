package coverage

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/jdoccov/pkg/models"
)

func TestUndocumentedFiles(t *testing.T) {
	stats := map[string]*models.NamespaceStats{
		"b": {Files: []*models.FileResult{
			{Name: "Z.java", Namespace: "b", Classes: 1},
			{Name: "A.java", Namespace: "b", Classes: 1, DocumentedClasses: 1},
		}},
		"a": {Files: []*models.FileResult{
			{Name: "Y.java", Namespace: "a", Methods: 2, DocumentedMethods: 1},
		}},
	}

	files := UndocumentedFiles(stats)
	require.Len(t, files, 2)
	assert.Equal(t, "Y.java", files[0].Name)
	assert.Equal(t, "Z.java", files[1].Name)
}

func TestInspectPrintsSelectedFile(t *testing.T) {
	root := sampleTree(t)
	var out bytes.Buffer
	var offered []*models.FileResult

	selected, err := Inspect(context.Background(), Options{Root: root}, func(files []*models.FileResult) (int, error) {
		offered = files
		return 0, nil
	}, &out)
	require.NoError(t, err)

	require.Len(t, offered, 1)
	require.NotNil(t, selected)
	assert.Equal(t, "Bare.java", selected.Name)
	assert.Contains(t, out.String(), "com.acme.service")
	assert.Contains(t, out.String(), "svc/Bare.java")
	assert.Contains(t, out.String(), "class Bare (line 3)")
	assert.Contains(t, out.String(), "method name() (line 5)")
}

func TestInspectAbortAndErrors(t *testing.T) {
	root := sampleTree(t)

	selected, err := Inspect(context.Background(), Options{Root: root}, func([]*models.FileResult) (int, error) {
		return -1, fuzzyfinder.ErrAbort
	}, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.Nil(t, selected)

	_, err = Inspect(context.Background(), Options{Root: root}, func([]*models.FileResult) (int, error) {
		return 5, nil
	}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid selection")

	boom := errors.New("boom")
	_, err = Inspect(context.Background(), Options{Root: root}, func([]*models.FileResult) (int, error) {
		return 0, boom
	}, &bytes.Buffer{})
	assert.ErrorIs(t, err, boom)
}

func TestInspectFullyDocumented(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A.java"), "/** A. */\npublic class A {}\n")

	_, err := Inspect(context.Background(), Options{Root: root}, func([]*models.FileResult) (int, error) {
		t.Fatal("picker must not be called")
		return 0, nil
	}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNothingToInspect)
}

func TestInspectFilterMatchingNothing(t *testing.T) {
	root := sampleTree(t)

	_, err := Inspect(context.Background(), Options{Root: root, Filter: "zzz"}, func([]*models.FileResult) (int, error) {
		t.Fatal("picker must not be called")
		return 0, nil
	}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrFilterNoMatch)
}

func TestFileTree(t *testing.T) {
	f := &models.FileResult{
		Name: "A.java", Path: "p/A.java", Namespace: "p", Classes: 1, Methods: 1, DocumentedClasses: 1,
		Declarations: []models.Declaration{
			{Kind: models.KindClass, Name: "A", Line: 2, Documented: true},
			{Kind: models.KindMethod, Name: "go", Line: 4},
		},
	}
	tree := FileTree(f)
	assert.Equal(t, "p", tree.Text)
	require.Len(t, tree.Children, 1)
	assert.Contains(t, tree.Children[0].Text, "p/A.java (50%)")
	require.Len(t, tree.Children[0].Children, 1)
	assert.Equal(t, "method go() (line 4)", tree.Children[0].Children[0].Text)
}
