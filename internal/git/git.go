package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Change is one modified file with the line numbers touched in its new
// version.
type Change struct {
	Path  string
	Lines []int
}

// chunk header: @@ -oldStart,oldLen +newStart,newLen @@
var chunkHeader = regexp.MustCompile(`^@@ \-\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

// DiffAgainst runs git diff against baseRef in dir and returns the changed
// files with their touched line numbers.
func DiffAgainst(baseRef, dir string) ([]Change, error) {
	cmd := exec.Command("git", "diff", "-U0", baseRef)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}
	return parseDiff(output), nil
}

func parseDiff(output []byte) []Change {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var changes []Change
	var current *Change

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "diff --git") {
			if current != nil {
				changes = append(changes, *current)
			}
			current = nil
			// want the b/ side: the new version of the file
			parts := strings.Fields(line)
			if len(parts) >= 4 {
				current = &Change{Path: strings.TrimPrefix(parts[3], "b/")}
			}
			continue
		}

		if current == nil || !strings.HasPrefix(line, "@@") {
			continue
		}

		matches := chunkHeader.FindStringSubmatch(line)
		if len(matches) < 2 {
			continue
		}
		start, _ := strconv.Atoi(matches[1])
		count := 1
		if len(matches) > 2 && matches[2] != "" {
			count, _ = strconv.Atoi(matches[2])
		}
		for i := 0; i < count; i++ {
			current.Lines = append(current.Lines, start+i)
		}
	}

	if current != nil {
		changes = append(changes, *current)
	}
	return changes
}
