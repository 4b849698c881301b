package analysis

import (
	"path/filepath"
	"strings"

	"flowmap/internal/git"
	"flowmap/internal/graph"
)

// ImpactReport summarizes which definitions are touched by a set of changes.
type ImpactReport struct {
	// DirectlyChanged definitions have changed lines inside their
	// declaration span.
	DirectlyChanged []*graph.Definition
	// AffectedCallers reach a changed definition through one or more edges.
	AffectedCallers []*graph.Definition
}

// Impact maps git changes onto the recovered graph. Change paths are
// repo-relative while definition files are absolute, so files match on path
// suffix.
func Impact(r *graph.Result, changes []git.Change) *ImpactReport {
	report := &ImpactReport{}

	direct := make(map[*graph.Definition]bool)
	for _, change := range changes {
		for _, def := range r.AllDefinitions() {
			if !fileMatches(def.File, change.Path) {
				continue
			}
			if linesIntersect(change.Lines, def.Line, def.EndLine) && !direct[def] {
				direct[def] = true
				report.DirectlyChanged = append(report.DirectlyChanged, def)
			}
		}
	}

	// Walk reversed edges to collect transitive callers.
	affected := make(map[*graph.Definition]bool)
	queue := append([]*graph.Definition(nil), report.DirectlyChanged...)
	for len(queue) > 0 {
		target := queue[0]
		queue = queue[1:]
		for _, e := range r.Callers(target) {
			caller := findDefinition(r, e.From, e.FromFile)
			if caller == nil || direct[caller] || affected[caller] {
				continue
			}
			affected[caller] = true
			report.AffectedCallers = append(report.AffectedCallers, caller)
			queue = append(queue, caller)
		}
	}

	return report
}

func fileMatches(absolute, relative string) bool {
	if absolute == relative {
		return true
	}
	return strings.HasSuffix(absolute, string(filepath.Separator)+filepath.FromSlash(relative))
}

func linesIntersect(lines []int, start, end int) bool {
	if end < start {
		end = start
	}
	for _, l := range lines {
		if l >= start && l <= end {
			return true
		}
	}
	return false
}

func findDefinition(r *graph.Result, name, file string) *graph.Definition {
	for _, def := range r.AllDefinitions() {
		if def.Name == name && def.File == file {
			return def
		}
	}
	return nil
}
