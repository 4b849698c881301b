package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowmap/internal/collector"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const workflowFile = `
import * as gensx from "@gensx/core";
export const Flow = gensx.Workflow("Flow", () => null);
`

func TestFindEntryFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "workflows.ts"), workflowFile)
	writeFile(t, filepath.Join(root, "src", "util.ts"), `export const x = 1;`)
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "index.ts"), workflowFile)

	c := New(collector.New())
	entries, err := c.FindEntryFiles(root)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "src", "workflows.ts")}, entries)
}

func TestFindEntryFiles_RespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "generated/\n")
	writeFile(t, filepath.Join(root, "app.ts"), workflowFile)
	writeFile(t, filepath.Join(root, "generated", "flows.ts"), workflowFile)

	c := New(collector.New())
	entries, err := c.FindEntryFiles(root)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "app.ts")}, entries)
}

func TestFindEntryFiles_SkipsDeclarationFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "types.d.ts"), workflowFile)

	c := New(collector.New())
	entries, err := c.FindEntryFiles(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
