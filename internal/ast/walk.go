package ast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// VisitFunc is called for each node in a depth-first, pre-order walk.
// awaited is true only when the node is the direct operand of an await
// expression. Returning false skips the node's children.
type VisitFunc func(n *sitter.Node, awaited bool) bool

// Walk traverses the named subtree rooted at n in depth-first, pre-order,
// left-to-right order.
//
// await_expression nodes are special-cased: the walk does not visit the await
// node itself. Instead it visits the inner expression directly with
// awaited=true, and descends into that expression's children with the flag
// cleared, so await-ness propagates exactly one level down.
func Walk(n *sitter.Node, visit VisitFunc) {
	walk(n, false, visit)
}

func walk(n *sitter.Node, awaited bool, visit VisitFunc) {
	if n == nil {
		return
	}
	if n.Type() == "await_expression" {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i), true, visit)
		}
		return
	}
	if !visit(n, awaited) {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), false, visit)
	}
}
