package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowmap/internal/collector"
	"flowmap/internal/graph"
	"flowmap/internal/source"
)

func extractFirst(t *testing.T, src string) []graph.DependencyCall {
	t.Helper()
	f, err := source.Parse([]byte(src), "test.ts")
	require.NoError(t, err)
	scan := collector.New().Collect(f)
	require.NotEmpty(t, scan.Definitions)
	return New().Extract(scan.Definitions[0], f, scan.Imports, scan.Definitions)
}

func TestExtract_AwaitFidelity(t *testing.T) {
	calls := extractFirst(t, `
import * as gensx from "gensx";
import { Research, WriteDraft } from "./components.js";

const WriteBlog = gensx.Workflow("WriteBlog", async (props) => {
  const r = await Research(props);
  const d = WriteDraft({ research: r });
  return d;
});
`)

	require.Len(t, calls, 2)
	assert.Equal(t, graph.DependencyCall{Target: "Research", Order: 1, Line: 6, Awaited: true}, calls[0])
	assert.Equal(t, graph.DependencyCall{Target: "WriteDraft", Order: 2, Line: 7, Awaited: false}, calls[1])
}

func TestExtract_DedupKeepsFirstOccurrence(t *testing.T) {
	calls := extractFirst(t, `
import * as gensx from "gensx";
import { Research } from "./components.js";

const Flow = gensx.Workflow("Flow", async () => {
  await Research(1);
  await Research(2);
});
`)

	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].Order)
	assert.Equal(t, 6, calls[0].Line)
}

func TestExtract_DenyListExclusion(t *testing.T) {
	calls := extractFirst(t, `
import * as gensx from "gensx";
import { generateText } from "ai";

const Summarize = gensx.Component("Summarize", async (props) => {
  return await generateText({ prompt: props.prompt });
});
`)

	assert.Empty(t, calls)
}

func TestExtract_SkippedCallsDoNotConsumeOrder(t *testing.T) {
	calls := extractFirst(t, `
import * as gensx from "gensx";
import { generateText } from "ai";
import { Research } from "./components.js";

const Flow = gensx.Workflow("Flow", async () => {
  await generateText({});
  unknownHelper();
  await Research();
});
`)

	require.Len(t, calls, 1)
	assert.Equal(t, "Research", calls[0].Target)
	assert.Equal(t, 1, calls[0].Order)
}

func TestExtract_LocalSiblingVisible(t *testing.T) {
	src := `
import * as gensx from "gensx";

const Research = gensx.Component("Research", async () => "data");
const Pipeline = gensx.Workflow("Pipeline", async () => {
  return await Research();
});
`
	f, err := source.Parse([]byte(src), "test.ts")
	require.NoError(t, err)
	scan := collector.New().Collect(f)
	require.Len(t, scan.Definitions, 2)

	calls := New().Extract(scan.Definitions[1], f, scan.Imports, scan.Definitions)
	require.Len(t, calls, 1)
	assert.Equal(t, "Research", calls[0].Target)
	assert.True(t, calls[0].Awaited)
}

func TestExtract_NoFunctionLiteral(t *testing.T) {
	calls := extractFirst(t, `
import * as gensx from "gensx";

const Odd = gensx.Workflow("Odd", 42);
`)

	assert.Empty(t, calls)
}

func TestExtract_MemberCallsIgnored(t *testing.T) {
	calls := extractFirst(t, `
import * as gensx from "gensx";
import { Research } from "./components.js";

const Flow = gensx.Workflow("Flow", async () => {
  await client.chat.completions.create({});
  return Research();
});
`)

	require.Len(t, calls, 1)
	assert.Equal(t, "Research", calls[0].Target)
	assert.False(t, calls[0].Awaited)
}

func TestExtract_NestedCallsFoundInTraversalOrder(t *testing.T) {
	calls := extractFirst(t, `
import * as gensx from "gensx";
import { Outer, Inner } from "./components.js";

const Flow = gensx.Workflow("Flow", async () => {
  return await Outer(Inner());
});
`)

	require.Len(t, calls, 2)
	assert.Equal(t, "Outer", calls[0].Target)
	assert.True(t, calls[0].Awaited)
	assert.Equal(t, "Inner", calls[1].Target)
	assert.False(t, calls[1].Awaited)
}

func TestExtract_ExtraDeniedNames(t *testing.T) {
	src := `
import * as gensx from "gensx";
import { helper } from "./helpers.js";

const Flow = gensx.Workflow("Flow", async () => helper());
`
	f, err := source.Parse([]byte(src), "test.ts")
	require.NoError(t, err)
	scan := collector.New().Collect(f)
	require.Len(t, scan.Definitions, 1)

	calls := New("helper").Extract(scan.Definitions[0], f, scan.Imports, scan.Definitions)
	assert.Empty(t, calls)
}
