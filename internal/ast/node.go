package ast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// StringLiteral returns the literal value of a string node, or ("", false)
// when the node is not a plain string literal. Template strings with
// substitutions are not treated as literals.
func StringLiteral(n *sitter.Node, src []byte) (string, bool) {
	if n == nil || n.Type() != "string" {
		return "", false
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "string_fragment" {
			return child.Content(src), true
		}
	}
	// Empty string literal has no fragment child.
	raw := strings.Trim(n.Content(src), `"'`)
	return raw, true
}

// CalleeName returns the callee of a call expression as written: a bare
// identifier ("Research") or a dotted member access ("gensx.Workflow").
// Anything more complex yields ("", false).
func CalleeName(call *sitter.Node, src []byte) (string, bool) {
	if call == nil || call.Type() != "call_expression" {
		return "", false
	}
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case "identifier":
		return fn.Content(src), true
	case "member_expression":
		obj := fn.ChildByFieldName("object")
		prop := fn.ChildByFieldName("property")
		if obj == nil || prop == nil || obj.Type() != "identifier" {
			return "", false
		}
		return obj.Content(src) + "." + prop.Content(src), true
	default:
		return "", false
	}
}

// IsFunctionLiteral reports whether the node is an inline function value.
// The plain function-expression node kind differs across grammar revisions,
// so both spellings are accepted.
func IsFunctionLiteral(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "arrow_function", "function_expression", "function", "generator_function":
		return true
	}
	return false
}

// CallArguments returns the named argument nodes of a call expression in
// source order.
func CallArguments(call *sitter.Node) []*sitter.Node {
	if call == nil {
		return nil
	}
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, args.NamedChildCount())
	for i := 0; i < int(args.NamedChildCount()); i++ {
		out = append(out, args.NamedChild(i))
	}
	return out
}

// Line returns the 1-based source line of a node.
func Line(n *sitter.Node) int {
	return int(n.StartPoint().Row + 1)
}

// Column returns the 1-based source column of a node.
func Column(n *sitter.Node) int {
	return int(n.StartPoint().Column + 1)
}

// EndLine returns the 1-based end line of a node.
func EndLine(n *sitter.Node) int {
	return int(n.EndPoint().Row + 1)
}
