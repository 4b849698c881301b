package source

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"flowmap/internal/ast"
)

// File is one parsed source file.
type File struct {
	Path    string
	Content []byte
	Tree    *sitter.Tree
}

// Root returns the file's syntax-tree root node.
func (f *File) Root() *sitter.Node {
	return f.Tree.RootNode()
}

// Loader reads and parses source files, memoizing by path for the duration
// of one analysis session. A file is read and parsed at most once even when
// referenced by many importers.
type Loader struct {
	cache map[string]*File
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string]*File)}
}

// Load reads and parses the file at path, returning a cached result on
// repeated calls.
func (l *Loader) Load(path string) (*File, error) {
	if f, ok := l.cache[path]; ok {
		return f, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	f, err := Parse(content, path)
	if err != nil {
		return nil, err
	}

	l.cache[path] = f
	return f, nil
}

// Parse parses raw source content as the language implied by the path's
// extension. It does not touch the loader cache and is usable on its own.
func Parse(content []byte, path string) (*File, error) {
	lang, err := ast.LanguageForFile(path)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}

	return &File{Path: path, Content: content, Tree: tree}, nil
}
