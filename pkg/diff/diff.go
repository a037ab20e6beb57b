// Package diff computes textual diffs between document versions: a
// line-oriented unified diff for the persisted audit trail and inline
// change segments for display.
package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Side labels in the unified diff header. Kept stable because stored
// diffs are part of the audit trail.
const (
	FromLabel = "Previous Version"
	ToLabel   = "New Version"
)

// Unified compares two document versions line by line and returns a
// unified diff labeled with FromLabel/ToLabel. Identical inputs yield an
// empty string. Any internal failure is reported inside the returned
// string so the caller always gets a value (degraded-mode contract).
func Unified(oldText, newText string) string {
	out, err := unified(oldText, newText)
	if err != nil {
		return fmt.Sprintf("Error computing diff: %v", err)
	}
	return out
}

func unified(oldText, newText string) (string, error) {
	oldText = normalizeLineEndings(oldText)
	newText = normalizeLineEndings(newText)
	if oldText == newText {
		return "", nil
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldText),
		B:        difflib.SplitLines(newText),
		FromFile: FromLabel,
		ToFile:   ToLabel,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}

// Changes computes character-level change segments between two versions
// with semantic cleanup applied, for inline rendering in clients.
func Changes(oldText, newText string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	return dmp.DiffCleanupSemantic(diffs)
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
