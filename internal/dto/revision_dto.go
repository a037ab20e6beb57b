// Package dto defines data transfer objects (request parameters and
// response structs).
package dto

import (
	"github.com/safedocs/doc-audit-service/pkg/textscan"
	"github.com/safedocs/doc-audit-service/pkg/timex"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RevisionDTO is one stored revision as returned to clients. Field names
// match the persisted revision record shape.
type RevisionDTO struct {
	DocID           string            `json:"doc_id"`
	RevisionNumber  int64             `json:"revision_number"`
	Timestamp       timex.Time        `json:"timestamp"`
	OriginalText    string            `json:"original_text"`
	Analysis        textscan.Findings `json:"analysis"`
	RevisedDocument string            `json:"revised_document"`
	// Diff is null for the first revision.
	Diff *string `json:"diff"`
	// Changes are inline change segments against the previous revision,
	// rendered at read time for display. Not part of the stored record.
	Changes []diffmatchpatch.Diff `json:"changes,omitempty"`
}

// HistoryDTO is the full ordered revision history of one document.
type HistoryDTO struct {
	DocID     string         `json:"doc_id"`
	Revisions []*RevisionDTO `json:"revisions"`
}
