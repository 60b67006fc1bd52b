package dto

import (
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// CreateDocumentRequest defines a student upload. The owner is always the
// calling scholar; ownership cannot be assigned.
type CreateDocumentRequest struct {
	Title   string              `json:"title" binding:"required"`
	Kind    domain.DocumentKind `json:"kind" binding:"required,oneof=RECEIPT GRADE_REPORT CERTIFICATE OTHER"`
	FileRef string              `json:"fileRef" binding:"required"`
}

// GenerateDocumentRequest defines an admin-side generation on behalf of a scholar.
type GenerateDocumentRequest struct {
	ScholarID string              `json:"scholarID" binding:"required"`
	Title     string              `json:"title" binding:"required"`
	Kind      domain.DocumentKind `json:"kind" binding:"required,oneof=RECEIPT GRADE_REPORT CERTIFICATE OTHER"`
	FileRef   string              `json:"fileRef" binding:"required"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID string              `json:"documentID"`
	ScholarID  string              `json:"scholarID"`
	Title      string              `json:"title"`
	Kind       domain.DocumentKind `json:"kind"`
	FileRef    string              `json:"fileRef"`
	Generated  bool                `json:"generated"`
	CreatedAt  time.Time           `json:"createdAt"`
	CreatedBy  string              `json:"createdBy"`
}

// ListDocumentsResponse wraps a paginated document listing.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToDocumentResponse converts a domain.Document to its response DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: d.DocumentID,
		ScholarID:  d.ScholarID,
		Title:      d.Title,
		Kind:       d.Kind,
		FileRef:    d.FileRef,
		Generated:  d.Generated,
		CreatedAt:  d.CreatedAt,
		CreatedBy:  d.CreatedBy,
	}
}

// ToListDocumentsResponse converts a domain slice plus pagination token.
func ToListDocumentsResponse(documents []domain.Document, nextToken *string) *ListDocumentsResponse {
	out := make([]DocumentResponse, len(documents))
	for i := range documents {
		out[i] = ToDocumentResponse(&documents[i])
	}
	return &ListDocumentsResponse{Documents: out, NextToken: nextToken}
}
