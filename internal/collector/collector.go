package collector

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"flowmap/internal/ast"
	"flowmap/internal/graph"
	"flowmap/internal/source"
)

// factoryModules is the closed allow-list of module specifiers that provide
// the Workflow and Component factories. A specifier matches on exact equality
// or as a sub-path of an entry.
var factoryModules = []string{
	"gensx",
	"@gensx/core",
}

const (
	workflowFactory  = "Workflow"
	componentFactory = "Component"
)

// FileScan is everything the collector recovers from one file: which local
// names denote the factories, the file's named import bindings, and its
// top-level workflow/component definitions.
type FileScan struct {
	Bindings    []graph.FactoryBinding
	Imports     []graph.ImportRecord
	Definitions []*graph.Definition
}

// Collector finds factory-call definitions in parsed source files.
type Collector struct {
	modules []string
}

// New creates a collector. Extra factory module names extend the built-in
// allow-list.
func New(extraModules ...string) *Collector {
	modules := make([]string, 0, len(factoryModules)+len(extraModules))
	modules = append(modules, factoryModules...)
	modules = append(modules, extraModules...)
	return &Collector{modules: modules}
}

// Collect walks a file's top-level statements and returns its imports,
// factory bindings, and definitions, all in source order.
func (c *Collector) Collect(f *source.File) *FileScan {
	scan := &FileScan{}
	root := f.Root()

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "import_statement" {
			c.collectImport(child, f, scan)
		}
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		decl := child
		if decl.Type() == "export_statement" {
			if inner := decl.ChildByFieldName("declaration"); inner != nil {
				decl = inner
			}
		}
		if decl.Type() != "lexical_declaration" && decl.Type() != "variable_declaration" {
			continue
		}
		c.collectDeclaration(child, decl, f, scan)
	}

	return scan
}

// IsFactoryModule reports whether the specifier names a known factory module,
// exactly or as a sub-path.
func (c *Collector) IsFactoryModule(specifier string) bool {
	for _, m := range c.modules {
		if specifier == m || strings.HasPrefix(specifier, m+"/") {
			return true
		}
	}
	return false
}

func (c *Collector) collectImport(imp *sitter.Node, f *source.File, scan *FileScan) {
	var specifier string
	var clause *sitter.Node
	for i := 0; i < int(imp.ChildCount()); i++ {
		child := imp.Child(i)
		switch child.Type() {
		case "string":
			if v, ok := ast.StringLiteral(child, f.Content); ok {
				specifier = v
			}
		case "import_clause":
			clause = child
		}
	}
	if specifier == "" || clause == nil {
		return
	}

	fromFactory := c.IsFactoryModule(specifier)

	for i := 0; i < int(clause.ChildCount()); i++ {
		child := clause.Child(i)
		switch child.Type() {
		case "identifier":
			// Default import. Only meaningful for the factory module, where
			// the default export carries the factories as members.
			if fromFactory {
				local := child.Content(f.Content)
				scan.Bindings = append(scan.Bindings,
					graph.FactoryBinding{Local: local + "." + workflowFactory, Kind: graph.KindWorkflow},
					graph.FactoryBinding{Local: local + "." + componentFactory, Kind: graph.KindComponent},
				)
			}
		case "namespace_import":
			if !fromFactory {
				continue
			}
			for j := 0; j < int(child.ChildCount()); j++ {
				if gc := child.Child(j); gc.Type() == "identifier" {
					local := gc.Content(f.Content)
					scan.Bindings = append(scan.Bindings,
						graph.FactoryBinding{Local: local + "." + workflowFactory, Kind: graph.KindWorkflow},
						graph.FactoryBinding{Local: local + "." + componentFactory, Kind: graph.KindComponent},
					)
				}
			}
		case "named_imports":
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				if gc.Type() != "import_specifier" {
					continue
				}
				name, local := importSpecifierNames(gc, f.Content)
				if name == "" {
					continue
				}
				if fromFactory {
					switch name {
					case workflowFactory:
						scan.Bindings = append(scan.Bindings, graph.FactoryBinding{Local: local, Kind: graph.KindWorkflow})
					case componentFactory:
						scan.Bindings = append(scan.Bindings, graph.FactoryBinding{Local: local, Kind: graph.KindComponent})
					}
					continue
				}
				scan.Imports = append(scan.Imports, graph.ImportRecord{
					Imported: name,
					Local:    local,
					From:     specifier,
				})
			}
		}
	}
}

// importSpecifierNames returns the exported name and the local binding of an
// import specifier. The local name equals the exported name unless aliased.
func importSpecifierNames(spec *sitter.Node, src []byte) (name, local string) {
	for i := 0; i < int(spec.ChildCount()); i++ {
		child := spec.Child(i)
		if child.Type() != "identifier" {
			continue
		}
		if name == "" {
			name = child.Content(src)
			local = name
		} else {
			local = child.Content(src)
		}
	}
	return name, local
}

func (c *Collector) collectDeclaration(stmt, decl *sitter.Node, f *source.File, scan *FileScan) {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		declarator := decl.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		value := declarator.ChildByFieldName("value")
		if nameNode == nil || nameNode.Type() != "identifier" || value == nil || value.Type() != "call_expression" {
			continue
		}

		callee, ok := ast.CalleeName(value, f.Content)
		if !ok {
			continue
		}
		kind, matched := c.matchFactory(scan.Bindings, callee)
		if !matched {
			// Not every `const x = f(...)` is a definition.
			continue
		}

		identifier := nameNode.Content(f.Content)
		name := identifier
		if args := ast.CallArguments(value); len(args) > 0 {
			if label, isString := ast.StringLiteral(args[0], f.Content); isString && label != "" {
				name = label
			}
		}

		scan.Definitions = append(scan.Definitions, &graph.Definition{
			Name:       name,
			Kind:       kind,
			File:       f.Path,
			Identifier: identifier,
			Line:       ast.Line(stmt),
			Column:     ast.Column(stmt),
			EndLine:    ast.EndLine(stmt),
		})
	}
}

func (c *Collector) matchFactory(bindings []graph.FactoryBinding, callee string) (graph.Kind, bool) {
	for _, b := range bindings {
		if b.Local == callee {
			return b.Kind, true
		}
	}
	return "", false
}
