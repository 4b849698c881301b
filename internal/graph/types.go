package graph

// Kind distinguishes the two recognized factory forms.
type Kind string

const (
	KindWorkflow  Kind = "workflow"
	KindComponent Kind = "component"
)

// EdgeType classifies a resolved edge by the kinds of its endpoints.
type EdgeType string

const (
	EdgeWorkflowToComponent  EdgeType = "workflow-to-component"
	EdgeComponentToComponent EdgeType = "component-to-component"
	EdgeWorkflowToWorkflow   EdgeType = "workflow-to-workflow"
)

// Definition is a discovered workflow or component.
//
// A Definition is uniquely identified by (Identifier, File). Name is the
// display label (the factory call's first string-literal argument when
// present); Identifier is the declared variable name used for call matching.
// The two may differ and must not be collapsed.
type Definition struct {
	Name         string           `json:"name"`
	Kind         Kind             `json:"kind"`
	File         string           `json:"file"`
	Identifier   string           `json:"identifier"`
	Dependencies []DependencyCall `json:"dependencies"`
	Line         int              `json:"line"`
	Column       int              `json:"column"`
	EndLine      int              `json:"end_line"`
}

// DependencyCall is one recognized call site inside a Definition's body,
// recorded before cross-file resolution.
type DependencyCall struct {
	Target  string `json:"target"`
	Order   int    `json:"order"`
	Line    int    `json:"line"`
	Awaited bool   `json:"awaited"`
}

// ImportRecord is one named import binding within a file. From holds the raw
// module specifier as written, unresolved.
type ImportRecord struct {
	Imported string `json:"imported"`
	Local    string `json:"local"`
	From     string `json:"from"`
}

// FactoryBinding marks a local name that denotes the workflow or component
// factory in a given file. Local is either a bare identifier or a dotted
// "namespace.Member" form.
type FactoryBinding struct {
	Local string `json:"local"`
	Kind  Kind   `json:"kind"`
}

// Edge is a resolved, directed "From calls To" relationship. Edges are
// derived at report time from Definitions and their DependencyCalls; they are
// never a source of truth on their own.
type Edge struct {
	From     string   `json:"from"`
	FromFile string   `json:"from_file"`
	To       string   `json:"to"`
	ToFile   string   `json:"to_file"`
	Type     EdgeType `json:"type"`
	Order    int      `json:"order"`
	Line     int      `json:"line"`
	Awaited  bool     `json:"awaited"`
}

// Result is the full output of one analysis run.
type Result struct {
	Workflows    []*Definition `json:"workflows"`
	Components   []*Definition `json:"components"`
	Dependencies []Edge        `json:"dependencies"`
	Files        []string      `json:"files"`
}

// ClassifyEdge maps the kinds of an edge's endpoints onto the fixed three-way
// classification. workflow->component and component->component are the named
// buckets; every other combination falls into workflow-to-workflow.
func ClassifyEdge(from, to Kind) EdgeType {
	switch {
	case from == KindWorkflow && to == KindComponent:
		return EdgeWorkflowToComponent
	case from == KindComponent && to == KindComponent:
		return EdgeComponentToComponent
	default:
		return EdgeWorkflowToWorkflow
	}
}
