package report

import (
	"fmt"
	"regexp"
	"strings"

	"flowmap/internal/graph"
)

// RenderMermaid emits a flowchart of the call graph: one node per
// definition, one arrow per resolved edge. Awaited calls use a solid arrow,
// fire-and-forget calls a dotted one.
func RenderMermaid(r *graph.Result) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("graph TD\n")

	ids := make(map[string]string)
	for _, def := range r.AllDefinitions() {
		id := nodeID(def, ids)
		if def.Kind == graph.KindWorkflow {
			fmt.Fprintf(&sb, "    %s[%q]\n", id, def.Name)
		} else {
			fmt.Fprintf(&sb, "    %s(%q)\n", id, def.Name)
		}
	}

	for _, e := range r.Dependencies {
		from := ids[e.FromFile+":"+e.From]
		to := ids[e.ToFile+":"+e.To]
		if from == "" || to == "" {
			continue
		}
		if e.Awaited {
			fmt.Fprintf(&sb, "    %s -->|await| %s\n", from, to)
		} else {
			fmt.Fprintf(&sb, "    %s -.-> %s\n", from, to)
		}
	}

	sb.WriteString("```\n")
	return sb.String()
}

// nodeID assigns a stable mermaid-safe identifier per definition, indexed by
// (file, name) so same-named definitions in different files stay distinct.
func nodeID(def *graph.Definition, ids map[string]string) string {
	key := def.File + ":" + def.Name
	if id, ok := ids[key]; ok {
		return id
	}
	id := sanitizeMermaidID(def.Name)
	// Disambiguate collisions across files.
	base := id
	for n := 2; inUse(ids, id); n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	ids[key] = id
	return id
}

func inUse(ids map[string]string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

var mermaidIDPattern = regexp.MustCompile(`[^a-z0-9_]`)

func sanitizeMermaidID(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	v = mermaidIDPattern.ReplaceAllString(strings.ReplaceAll(v, "-", "_"), "_")
	if v == "" {
		return "node"
	}
	if v[0] >= '0' && v[0] <= '9' {
		v = "n_" + v
	}
	return v
}
