// Package domain defines the core entities and repository contracts.
package domain

import (
	"time"

	"github.com/safedocs/doc-audit-service/pkg/textscan"
)

// Revision is one immutable, numbered snapshot of a document: the
// submitted text plus the analysis, annotated revision and diff derived
// from it at write time.
type Revision struct {
	ID              int64
	DocID           string
	RevisionNumber  int64
	Timestamp       time.Time
	OriginalText    string
	Analysis        textscan.Findings
	RevisedDocument string
	// Diff is the unified diff against the immediately preceding
	// revision's original text; nil for revision 1. It is fixed at
	// write time and never recomputed, so the audit trail stays
	// faithful even if diffing logic changes later.
	Diff *string
}
