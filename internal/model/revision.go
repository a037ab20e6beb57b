package model

import (
	"github.com/safedocs/doc-audit-service/pkg/timex"
)

// Revision is the stored form of a document revision. Analysis is the
// findings object serialized to JSON so it round-trips structurally
// through any supported database.
type Revision struct {
	ID              int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DocID           string     `gorm:"column:doc_id;size:128;index:idx_doc_revision,unique,priority:1;not null" json:"docId"`
	RevisionNumber  int64      `gorm:"column:revision_number;index:idx_doc_revision,unique,priority:2;not null" json:"revisionNumber"`
	Timestamp       timex.Time `gorm:"column:timestamp;not null" json:"timestamp"`
	OriginalText    string     `gorm:"column:original_text;type:text" json:"originalText"`
	Analysis        string     `gorm:"column:analysis;type:text" json:"analysis"`
	RevisedDocument string     `gorm:"column:revised_document;type:text" json:"revisedDocument"`
	// Diff is NULL for the first revision of a document.
	Diff *string `gorm:"column:diff;type:text" json:"diff"`
}

// TableName returns the table name.
func (*Revision) TableName() string {
	return "revision"
}
