package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/src/workflows.ts b/src/workflows.ts
index 1111111..2222222 100644
--- a/src/workflows.ts
+++ b/src/workflows.ts
@@ -5,0 +6,2 @@ const WriteBlog = gensx.Workflow("WriteBlog", async (props) => {
+  const extra = await Research(props);
+  console.log(extra);
@@ -12 +14 @@ export const other = 1;
-const a = 1;
+const a = 2;
diff --git a/src/components.ts b/src/components.ts
index 3333333..4444444 100644
--- a/src/components.ts
+++ b/src/components.ts
@@ -3 +3 @@
-export const Research = gensx.Component("Research", () => "a");
+export const Research = gensx.Component("Research", () => "b");
`

func TestParseDiff(t *testing.T) {
	changes := parseDiff([]byte(sampleDiff))
	require.Len(t, changes, 2)

	assert.Equal(t, "src/workflows.ts", changes[0].Path)
	assert.Equal(t, []int{6, 7, 14}, changes[0].Lines)

	assert.Equal(t, "src/components.ts", changes[1].Path)
	assert.Equal(t, []int{3}, changes[1].Lines)
}

func TestParseDiff_Empty(t *testing.T) {
	assert.Empty(t, parseDiff(nil))
}
