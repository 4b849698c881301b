package graph

// AllDefinitions returns workflows followed by components, preserving
// registration order within each group.
func (r *Result) AllDefinitions() []*Definition {
	defs := make([]*Definition, 0, len(r.Workflows)+len(r.Components))
	defs = append(defs, r.Workflows...)
	defs = append(defs, r.Components...)
	return defs
}

// DefinitionsByFile groups all definitions by their defining file.
func (r *Result) DefinitionsByFile() map[string][]*Definition {
	byFile := make(map[string][]*Definition)
	for _, d := range r.AllDefinitions() {
		byFile[d.File] = append(byFile[d.File], d)
	}
	return byFile
}

// Callers returns the edges pointing at the given definition.
func (r *Result) Callers(d *Definition) []Edge {
	var in []Edge
	for _, e := range r.Dependencies {
		if e.To == d.Name && e.ToFile == d.File {
			in = append(in, e)
		}
	}
	return in
}
