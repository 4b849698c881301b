package analyzer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"flowmap/internal/collector"
	"flowmap/internal/extractor"
	"flowmap/internal/graph"
	"flowmap/internal/resolver"
	"flowmap/internal/source"
)

// Options tune an analysis session. Zero value uses the built-in factory
// module allow-list and call deny-list.
type Options struct {
	// FactoryModules adds module specifiers recognized as factory providers.
	FactoryModules []string
	// DeniedCalls adds call names excluded from dependency extraction.
	DeniedCalls []string
}

// defKey uniquely identifies a definition: two definitions with the same
// identifier in different files are distinct and never merged.
type defKey struct {
	identifier string
	file       string
}

// Session owns all mutable state of one analysis run. Nothing survives
// between sessions, so a long-lived host can run analyses repeatedly or
// concurrently by creating one Session per call.
type Session struct {
	loader    *source.Loader
	collector *collector.Collector
	extractor *extractor.Extractor

	visited   map[string]bool
	fileOrder []string

	defs     map[defKey]*graph.Definition
	defOrder []*graph.Definition

	scans map[string]*collector.FileScan
}

// NewSession creates a fresh session.
func NewSession(opts Options) *Session {
	return &Session{
		loader:    source.NewLoader(),
		collector: collector.New(opts.FactoryModules...),
		extractor: extractor.New(opts.DeniedCalls...),
		visited:   make(map[string]bool),
		defs:      make(map[defKey]*graph.Definition),
		scans:     make(map[string]*collector.FileScan),
	}
}

// Analyze recovers the workflow/component call graph reachable from the
// entry file. The entry file must exist; every other anomaly (unreadable
// file, unresolvable import, unresolvable call target) degrades to missing
// information rather than an error.
func Analyze(entryFile string, opts Options) (*graph.Result, error) {
	return NewSession(opts).Run(entryFile)
}

// Run performs the analysis. A Session must not be reused after Run returns.
func (s *Session) Run(entryFile string) (*graph.Result, error) {
	entry, err := filepath.Abs(entryFile)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(entry); err != nil {
		return nil, fmt.Errorf("entry file not found: %s", entryFile)
	}

	s.analyzeFile(entry)

	result := &graph.Result{Files: s.fileOrder}
	for _, def := range s.defOrder {
		switch def.Kind {
		case graph.KindWorkflow:
			result.Workflows = append(result.Workflows, def)
		case graph.KindComponent:
			result.Components = append(result.Components, def)
		}
	}
	result.Dependencies = s.buildEdges()
	return result, nil
}

// analyzeFile loads, collects, and extracts one file, then descends into its
// resolvable imports. The visited set guarantees termination on import
// cycles.
func (s *Session) analyzeFile(path string) {
	if s.visited[path] {
		return
	}
	s.visited[path] = true

	f, err := s.loader.Load(path)
	if err != nil {
		// A broken file contributes nothing; the rest of the graph is
		// still produced.
		log.Printf("warning: skipping %s: %v", path, err)
		return
	}
	s.fileOrder = append(s.fileOrder, path)

	scan := s.collector.Collect(f)
	s.scans[path] = scan

	for _, def := range scan.Definitions {
		key := defKey{identifier: def.Identifier, file: def.File}
		if _, exists := s.defs[key]; exists {
			continue
		}
		s.defs[key] = def
		s.defOrder = append(s.defOrder, def)
	}

	for _, def := range scan.Definitions {
		def.Dependencies = s.extractor.Extract(def, f, scan.Imports, scan.Definitions)
	}

	for _, imp := range scan.Imports {
		if resolved := resolver.Resolve(imp.From, path); resolved != "" {
			s.analyzeFile(resolved)
		}
	}
}

// buildEdges joins every DependencyCall to its target definition. Targets
// are matched against the caller's own file first, then through the file's
// import table; calls that resolve to nothing are dropped silently.
func (s *Session) buildEdges() []graph.Edge {
	var edges []graph.Edge
	for _, def := range s.defOrder {
		scan := s.scans[def.File]
		for _, call := range def.Dependencies {
			target := s.resolveTarget(def.File, scan, call.Target)
			if target == nil {
				continue
			}
			edges = append(edges, graph.Edge{
				From:     def.Name,
				FromFile: def.File,
				To:       target.Name,
				ToFile:   target.File,
				Type:     graph.ClassifyEdge(def.Kind, target.Kind),
				Order:    call.Order,
				Line:     call.Line,
				Awaited:  call.Awaited,
			})
		}
	}
	return edges
}

func (s *Session) resolveTarget(file string, scan *collector.FileScan, name string) *graph.Definition {
	if def, ok := s.defs[defKey{identifier: name, file: file}]; ok {
		return def
	}
	if scan == nil {
		return nil
	}
	for _, imp := range scan.Imports {
		if imp.Local != name {
			continue
		}
		resolved := resolver.Resolve(imp.From, file)
		if resolved == "" {
			continue
		}
		if def, ok := s.defs[defKey{identifier: imp.Imported, file: resolved}]; ok {
			return def
		}
	}
	return nil
}
