package domain

import (
	"context"
	"errors"
)

// ErrDocumentNotFound marks a document id with zero stored revisions.
// Callers distinguish it from storage failures with errors.Is.
var ErrDocumentNotFound = errors.New("document not found")

// RevisionRepository is the append-only revision store. Revisions are
// never updated or deleted.
type RevisionRepository interface {
	// Append assigns the next revision number for rev.DocID, persists
	// the record atomically and returns the stored revision. When
	// prepare is non-nil it runs inside the same per-document critical
	// section, before the number is assigned, with the current latest
	// revision (nil for a first revision); write-time fields derived
	// from the predecessor, such as the diff, belong there so a racing
	// append can never slip in between the read and the write.
	// Concurrent appends to the same document are serialized; appends
	// to different documents do not block each other.
	Append(ctx context.Context, rev *Revision, prepare func(prev *Revision) error) (*Revision, error)

	// GetHistory returns all revisions for docID ordered by revision
	// number ascending, or ErrDocumentNotFound.
	GetHistory(ctx context.Context, docID string) ([]*Revision, error)

	// LatestRevisionNumber returns the max stored revision number for
	// docID, or 0 when the id has never been used.
	LatestRevisionNumber(ctx context.Context, docID string) (int64, error)
}
