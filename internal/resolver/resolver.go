package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"flowmap/internal/ast"
)

// Resolve maps an import specifier written in importingFile to the absolute
// path of the file it refers to, or "" when the import is not resolvable
// locally. Only explicitly relative specifiers are resolved; bare and scoped
// package specifiers are external by definition.
//
// The fallback order is part of the contract:
//  1. a ".js"/".jsx" specifier is first retried with the TypeScript
//     extension (the emit-relative import convention),
//  2. an extension-less specifier is tried with each source extension
//     appended, in order,
//  3. then as a directory with index.<ext>,
//  4. finally the exact path as written.
func Resolve(specifier, importingFile string) string {
	if !strings.HasPrefix(specifier, ".") {
		return ""
	}

	base := filepath.Join(filepath.Dir(importingFile), specifier)

	switch filepath.Ext(base) {
	case ".js":
		if p := strings.TrimSuffix(base, ".js") + ".ts"; fileExists(p) {
			return abs(p)
		}
	case ".jsx":
		if p := strings.TrimSuffix(base, ".jsx") + ".tsx"; fileExists(p) {
			return abs(p)
		}
	case "":
		for _, ext := range ast.SourceExtensions {
			if p := base + ext; fileExists(p) {
				return abs(p)
			}
		}
		for _, ext := range ast.SourceExtensions {
			if p := filepath.Join(base, "index"+ext); fileExists(p) {
				return abs(p)
			}
		}
	}

	if fileExists(base) {
		return abs(base)
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func abs(path string) string {
	if p, err := filepath.Abs(path); err == nil {
		return p
	}
	return path
}
