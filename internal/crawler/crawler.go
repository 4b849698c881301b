package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"flowmap/internal/collector"
	"flowmap/internal/source"
)

// Crawler scans a project tree for candidate analysis entry points: source
// files that import a recognized factory module.
type Crawler struct {
	collector *collector.Collector
	ignored   []string
}

// New creates a crawler that uses the given collector's factory-module
// allow-list.
func New(c *collector.Collector) *Crawler {
	return &Crawler{
		collector: c,
		ignored:   []string{".git", "node_modules", "dist", "build", "coverage"},
	}
}

// FindEntryFiles walks root and returns every source file importing a
// factory module, in walk order. Files matched by the project's .gitignore
// are skipped, as are files that fail to read or parse.
func (c *Crawler) FindEntryFiles(root string) ([]string, error) {
	var gi *ignore.GitIgnore
	if compiled, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		gi = compiled
	}

	var entries []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			if gi != nil && rel != "." && gi.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isSourceFile(d.Name()) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f, err := source.Parse(content, path)
		if err != nil {
			return nil
		}

		if c.importsFactoryModule(f) {
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Crawler) importsFactoryModule(f *source.File) bool {
	scan := c.collector.Collect(f)
	return len(scan.Bindings) > 0
}

func isSourceFile(name string) bool {
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	for _, ext := range []string{".ts", ".tsx", ".js", ".jsx"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
