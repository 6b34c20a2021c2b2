package javadoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/jdoccov/pkg/models"
)

func TestAggregatorAdd(t *testing.T) {
	agg := NewAggregator()

	assert.False(t, agg.Add(nil))
	assert.False(t, agg.Add(&models.FileResult{Name: "Empty.java", Namespace: "p"}))
	assert.Empty(t, agg.Namespaces())

	require.True(t, agg.Add(&models.FileResult{Name: "A.java", Namespace: "p", Classes: 1, DocumentedClasses: 1, Methods: 1}))
	require.True(t, agg.Add(&models.FileResult{Name: "B.java", Namespace: "p", Classes: 1, Methods: 1, DocumentedMethods: 1}))
	require.True(t, agg.Add(&models.FileResult{Name: "C.java", Classes: 1}))

	p := agg.Get("p")
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Classes)
	assert.Equal(t, 1, p.DocumentedClasses)
	assert.Equal(t, 2, p.Methods)
	assert.Equal(t, 1, p.DocumentedMethods)
	assert.Len(t, p.Files, 2)

	// 空命名空间归入 default
	assert.NotNil(t, agg.Get(models.DefaultNamespace))
	assert.Equal(t, []string{"default", "p"}, agg.Namespaces())
}

func TestAggregatorInvariants(t *testing.T) {
	agg := NewAggregator()
	results := []*models.FileResult{
		{Namespace: "a", Classes: 3, DocumentedClasses: 2, Methods: 5, DocumentedMethods: 5},
		{Namespace: "a", Classes: 1, Methods: 2},
		{Namespace: "b", Classes: 2, DocumentedClasses: 2},
	}

	prev := map[string]int{}
	for _, r := range results {
		agg.Add(r)
		for name, ns := range agg.Stats() {
			assert.LessOrEqual(t, ns.DocumentedClasses, ns.Classes)
			assert.LessOrEqual(t, ns.DocumentedMethods, ns.Methods)
			assert.GreaterOrEqual(t, ns.Symbols(), prev[name])
			prev[name] = ns.Symbols()
		}
	}
}

func TestAggregatorTotalsZero(t *testing.T) {
	totals := NewAggregator().Totals()
	assert.Zero(t, totals.Coverage)
	assert.Zero(t, totals.ClassCoverage)
	assert.Zero(t, totals.MethodCoverage)
}

func TestAggregatorSnapshot(t *testing.T) {
	agg := NewAggregator()
	agg.Add(&models.FileResult{Namespace: "z", Classes: 1, DocumentedClasses: 1})
	agg.Add(&models.FileResult{Namespace: "a", Methods: 1})

	snap := agg.Snapshot("src", "MEDIUM")
	assert.Equal(t, "src", snap.Root)
	assert.Equal(t, "MEDIUM", snap.Status)
	require.Len(t, snap.Namespaces, 2)
	assert.Equal(t, "a", snap.Namespaces[0].Name)
	assert.Equal(t, "z", snap.Namespaces[1].Name)
	assert.InDelta(t, 50.0, snap.Totals.Coverage, 1e-9)
}
