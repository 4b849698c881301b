package ast

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// LanguageForFile selects the tree-sitter grammar for a source file based on
// its extension.
func LanguageForFile(path string) (*sitter.Language, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage(), nil
	case ".tsx":
		return tsx.GetLanguage(), nil
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// SourceExtensions is the ordered list of extensions tried during import
// resolution. The order is part of the resolution contract.
var SourceExtensions = []string{".ts", ".js", ".tsx", ".jsx"}
