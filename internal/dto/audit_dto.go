package dto

// ReAuditRequest carries the document id of a re-audit submission; the
// document content itself arrives as an upload or text field.
type ReAuditRequest struct {
	DocID string `json:"docId" form:"docId" binding:"required,docid"`
}

// HistoryRequest identifies the document whose history is requested.
type HistoryRequest struct {
	DocID string `json:"docId" form:"docId" binding:"required,docid"`
}
