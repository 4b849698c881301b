package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEdge(t *testing.T) {
	t.Run("workflow to component", func(t *testing.T) {
		assert.Equal(t, EdgeWorkflowToComponent, ClassifyEdge(KindWorkflow, KindComponent))
	})

	t.Run("component to component", func(t *testing.T) {
		assert.Equal(t, EdgeComponentToComponent, ClassifyEdge(KindComponent, KindComponent))
	})

	t.Run("everything else is workflow-to-workflow", func(t *testing.T) {
		assert.Equal(t, EdgeWorkflowToWorkflow, ClassifyEdge(KindWorkflow, KindWorkflow))
		assert.Equal(t, EdgeWorkflowToWorkflow, ClassifyEdge(KindComponent, KindWorkflow))
	})
}

func TestResult_Callers(t *testing.T) {
	target := &Definition{Name: "Research", File: "components.ts", Identifier: "Research", Kind: KindComponent}
	r := &Result{
		Workflows:  []*Definition{{Name: "WriteBlog", File: "workflows.ts", Identifier: "WriteBlog", Kind: KindWorkflow}},
		Components: []*Definition{target},
		Dependencies: []Edge{
			{From: "WriteBlog", FromFile: "workflows.ts", To: "Research", ToFile: "components.ts", Type: EdgeWorkflowToComponent, Order: 1},
			{From: "WriteBlog", FromFile: "workflows.ts", To: "Other", ToFile: "components.ts", Type: EdgeWorkflowToComponent, Order: 2},
		},
	}

	callers := r.Callers(target)
	assert.Len(t, callers, 1)
	assert.Equal(t, "WriteBlog", callers[0].From)
}
