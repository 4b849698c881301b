package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_CachesByPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.ts")
	require.NoError(t, os.WriteFile(path, []byte(`const x = 1;`), 0o644))

	l := NewLoader()
	first, err := l.Load(path)
	require.NoError(t, err)

	// Overwrite on disk; the cached parse must still be returned.
	require.NoError(t, os.WriteFile(path, []byte(`const y = 2;`), 0o644))
	second, err := l.Load(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []byte(`const x = 1;`), second.Content)
}

func TestLoader_MissingFile(t *testing.T) {
	l := NewLoader()
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.ts"))
	assert.Error(t, err)
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse([]byte("body { color: red; }"), "style.css")
	assert.Error(t, err)
}

func TestParse_SelectsGrammarByExtension(t *testing.T) {
	for _, name := range []string{"a.ts", "a.tsx", "a.js", "a.jsx"} {
		t.Run(name, func(t *testing.T) {
			f, err := Parse([]byte(`const x = f(1);`), name)
			require.NoError(t, err)
			assert.Equal(t, "program", f.Root().Type())
		})
	}
}
