package logger

// Shared log field names so queries stay consistent across the project.
const (
	// FieldDocID document identifier field
	FieldDocID = "docId"

	// FieldRevision revision number field
	FieldRevision = "revision"

	// FieldMethod method name field
	FieldMethod = "method"

	// FieldDuration elapsed time field
	FieldDuration = "duration"

	// FieldSize document size field
	FieldSize = "size"
)
