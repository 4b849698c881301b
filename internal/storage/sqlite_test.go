package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowmap/internal/graph"
)

func testResult() *graph.Result {
	return &graph.Result{
		Workflows: []*graph.Definition{
			{Name: "WriteBlog", Kind: graph.KindWorkflow, File: "/p/workflows.ts", Identifier: "WriteBlog", Line: 4, EndLine: 9},
		},
		Components: []*graph.Definition{
			{Name: "Research", Kind: graph.KindComponent, File: "/p/components.ts", Identifier: "Research", Line: 3, EndLine: 3},
		},
		Dependencies: []graph.Edge{
			{From: "WriteBlog", FromFile: "/p/workflows.ts", To: "Research", ToFile: "/p/components.ts", Type: graph.EdgeWorkflowToComponent, Order: 1, Line: 5, Awaited: true},
		},
		Files: []string{"/p/workflows.ts", "/p/components.ts"},
	}
}

func TestSQLiteStore_SaveResult_SnapshotSync(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.SaveResult(ctx, testResult()))

	// Second snapshot drops the workflow; the load must match it exactly.
	second := testResult()
	second.Workflows = nil
	second.Dependencies = nil
	require.NoError(t, store.SaveResult(ctx, second))

	loaded, err := store.LoadResult(ctx)
	require.NoError(t, err)

	assert.Empty(t, loaded.Workflows)
	assert.Empty(t, loaded.Dependencies)
	require.Len(t, loaded.Components, 1)
	assert.Equal(t, "Research", loaded.Components[0].Name)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.SaveResult(ctx, testResult()))

	loaded, err := store.LoadResult(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Workflows, 1)
	assert.Equal(t, "WriteBlog", loaded.Workflows[0].Name)
	assert.Equal(t, graph.KindWorkflow, loaded.Workflows[0].Kind)

	require.Len(t, loaded.Dependencies, 1)
	e := loaded.Dependencies[0]
	assert.Equal(t, graph.EdgeWorkflowToComponent, e.Type)
	assert.True(t, e.Awaited)
	assert.Equal(t, 1, e.Order)

	assert.Equal(t, []string{"/p/workflows.ts", "/p/components.ts"}, loaded.Files)
}
