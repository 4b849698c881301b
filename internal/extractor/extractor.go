package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"flowmap/internal/ast"
	"flowmap/internal/graph"
	"flowmap/internal/source"
)

// Extractor records the recognized calls inside definition bodies.
type Extractor struct {
	denied map[string]bool
}

// New creates an extractor. Extra names extend the built-in deny-list of
// non-graph helper calls.
func New(extraDenied ...string) *Extractor {
	denied := make(map[string]bool, len(nonGraphCalls)+len(extraDenied))
	for name := range nonGraphCalls {
		denied[name] = true
	}
	for _, name := range extraDenied {
		denied[name] = true
	}
	return &Extractor{denied: denied}
}

// Extract walks the body of def's factory call and returns the ordered
// dependency calls found there. A call is a candidate when its callee is a
// bare identifier that is either imported by the file or declared by a
// sibling definition in the same file. Repeated calls to the same target
// collapse to the first occurrence.
func (e *Extractor) Extract(def *graph.Definition, f *source.File, imports []graph.ImportRecord, siblings []*graph.Definition) []graph.DependencyCall {
	body := findFactoryBody(def, f)
	if body == nil {
		return nil
	}

	known := make(map[string]bool, len(imports)+len(siblings))
	for _, imp := range imports {
		known[imp.Local] = true
	}
	for _, sib := range siblings {
		if sib.Identifier != def.Identifier {
			known[sib.Identifier] = true
		}
	}

	var calls []graph.DependencyCall
	seen := make(map[string]bool)
	order := 0

	ast.Walk(body, func(n *sitter.Node, awaited bool) bool {
		if n.Type() != "call_expression" {
			return true
		}
		callee, ok := ast.CalleeName(n, f.Content)
		if !ok {
			return true
		}
		fn := n.ChildByFieldName("function")
		if fn == nil || fn.Type() != "identifier" {
			return true
		}
		if e.denied[callee] || !known[callee] {
			// Skipped calls do not consume an order slot.
			return true
		}
		if seen[callee] {
			// Later calls to the same target are dropped, not renumbered.
			return true
		}
		seen[callee] = true
		order++
		calls = append(calls, graph.DependencyCall{
			Target:  callee,
			Order:   order,
			Line:    ast.Line(n),
			Awaited: awaited,
		})
		return true
	})

	return calls
}

// findFactoryBody locates the function literal passed to the definition's
// factory call. Arguments are scanned left to right and the first function
// literal wins; a definition whose call carries no function literal has no
// dependencies.
func findFactoryBody(def *graph.Definition, f *source.File) *sitter.Node {
	call := findFactoryCall(def, f)
	if call == nil {
		return nil
	}
	for _, arg := range ast.CallArguments(call) {
		if ast.IsFunctionLiteral(arg) {
			return arg
		}
	}
	return nil
}

// findFactoryCall relocates the call expression initializing the definition's
// declarator in the file's tree.
func findFactoryCall(def *graph.Definition, f *source.File) *sitter.Node {
	root := f.Root()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		decl := root.NamedChild(i)
		if decl.Type() == "export_statement" {
			if inner := decl.ChildByFieldName("declaration"); inner != nil {
				decl = inner
			}
		}
		if decl.Type() != "lexical_declaration" && decl.Type() != "variable_declaration" {
			continue
		}
		for j := 0; j < int(decl.NamedChildCount()); j++ {
			declarator := decl.NamedChild(j)
			if declarator.Type() != "variable_declarator" {
				continue
			}
			name := declarator.ChildByFieldName("name")
			value := declarator.ChildByFieldName("value")
			if name == nil || value == nil || value.Type() != "call_expression" {
				continue
			}
			if name.Content(f.Content) == def.Identifier {
				return value
			}
		}
	}
	return nil
}
