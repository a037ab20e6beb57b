package diff

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
)

func TestUnified_IdenticalInputsAreEmpty(t *testing.T) {
	tests := []string{
		"",
		"single line",
		"line one\nline two\n",
		"unicode 中文 content",
	}
	for _, text := range tests {
		assert.Equal(t, "", Unified(text, text))
	}
}

func TestUnified_LineEndingNormalization(t *testing.T) {
	// CRLF vs LF versions of the same text are not a change
	assert.Equal(t, "", Unified("a\r\nb\r\n", "a\nb\n"))
}

func TestUnified_SingleLineChange(t *testing.T) {
	got := Unified("Initial content", "Updated content")

	assert.NotEmpty(t, got)
	assert.Contains(t, got, "--- "+FromLabel)
	assert.Contains(t, got, "+++ "+ToLabel)
	assert.Contains(t, got, "-Initial content")
	assert.Contains(t, got, "+Updated content")
}

func TestUnified_AddedLine(t *testing.T) {
	got := Unified("one\ntwo\n", "one\ntwo\nthree\n")
	assert.Contains(t, got, "+three")
	assert.False(t, strings.Contains(got, "-one"))
}

func TestChanges_InlineSegments(t *testing.T) {
	segments := Changes("the old text", "the new text")

	var hasDelete, hasInsert bool
	for _, seg := range segments {
		switch seg.Type {
		case diffmatchpatch.DiffDelete:
			hasDelete = true
		case diffmatchpatch.DiffInsert:
			hasInsert = true
		}
	}
	assert.True(t, hasDelete)
	assert.True(t, hasInsert)
}

func TestChanges_EqualInputs(t *testing.T) {
	segments := Changes("same", "same")
	for _, seg := range segments {
		assert.Equal(t, diffmatchpatch.DiffEqual, seg.Type)
	}
}
