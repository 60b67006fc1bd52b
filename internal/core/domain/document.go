package domain

// DocumentKind classifies uploaded or generated paperwork.
type DocumentKind string

const (
	DocumentReceipt     DocumentKind = "RECEIPT"
	DocumentGradeReport DocumentKind = "GRADE_REPORT"
	DocumentCertificate DocumentKind = "CERTIFICATE"
	DocumentOther       DocumentKind = "OTHER"
)

// Document is a piece of scholarship paperwork owned by exactly one scholar.
// Ownership is fixed at creation and never reassigned. The file itself lives
// in external storage; only FileRef is kept here.
type Document struct {
	DocumentID string       `json:"documentID"` // Primary Key (UUID)
	ScholarID  string       `json:"scholarID"`  // FK -> actors.actor_id, immutable
	Title      string       `json:"title"`
	Kind       DocumentKind `json:"kind"`
	FileRef    string       `json:"fileRef"`
	Generated  bool         `json:"generated"` // true when produced by the portal, not uploaded
	AuditFields
}
