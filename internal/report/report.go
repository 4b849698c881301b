package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"flowmap/internal/graph"
)

// Options control report verbosity.
type Options struct {
	// Verbose lists analyzed files and per-call line numbers.
	Verbose bool
	// BaseDir, when set, is used to relativize file paths for display.
	BaseDir string
}

// Render produces the human-readable analysis report.
func Render(r *graph.Result, opts Options) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Analyzed %d files\n", len(r.Files))
	if opts.Verbose {
		for _, f := range r.Files {
			fmt.Fprintf(&sb, "  %s\n", displayPath(f, opts.BaseDir))
		}
	}

	sb.WriteString("\nWorkflows:\n")
	renderDefinitions(&sb, r.Workflows, opts)

	sb.WriteString("\nComponents:\n")
	renderDefinitions(&sb, r.Components, opts)

	sb.WriteString("\nDependency Graph:\n")
	renderEdges(&sb, r.Dependencies, opts)

	fmt.Fprintf(&sb, "\nSummary: %d workflows, %d components, %d dependencies, %d files\n",
		len(r.Workflows), len(r.Components), len(r.Dependencies), len(r.Files))

	return sb.String()
}

// RenderJSON serializes the full graph object.
func RenderJSON(r *graph.Result) (string, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode graph: %w", err)
	}
	return string(out), nil
}

func renderDefinitions(sb *strings.Builder, defs []*graph.Definition, opts Options) {
	if len(defs) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	for _, def := range defs {
		fmt.Fprintf(sb, "  - %s (%s) @ %s\n", def.Name, def.Identifier, displayPath(def.File, opts.BaseDir))
		if len(def.Dependencies) == 0 {
			continue
		}
		parts := make([]string, 0, len(def.Dependencies))
		for _, call := range def.Dependencies {
			part := call.Target
			if call.Awaited {
				part += " (await)"
			}
			if opts.Verbose {
				part += fmt.Sprintf(" [line %d]", call.Line)
			}
			parts = append(parts, part)
		}
		fmt.Fprintf(sb, "    calls: %s\n", strings.Join(parts, " -> "))
	}
}

func renderEdges(sb *strings.Builder, edges []graph.Edge, opts Options) {
	if len(edges) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	// Edges arrive grouped by source and ordered by call order.
	lastFrom := ""
	for _, e := range edges {
		if e.From != lastFrom {
			fmt.Fprintf(sb, "  %s:\n", e.From)
			lastFrom = e.From
		}
		annotation := ""
		if e.Awaited {
			annotation = " (await)"
		}
		fmt.Fprintf(sb, "    -> %s%s [%s, line %d]\n", e.To, annotation, e.Type, e.Line)
	}
}

func displayPath(path, baseDir string) string {
	if baseDir == "" {
		return path
	}
	if rel, err := filepath.Rel(baseDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
