package models

// Document is the row shape for the documents table.
type Document struct {
	DocumentID string `db:"document_id"`
	ScholarID  string `db:"scholar_id"`
	Title      string `db:"title"`
	Kind       string `db:"kind"`
	FileRef    string `db:"file_ref"`
	Generated  bool   `db:"generated"`
	AuditFields
}
