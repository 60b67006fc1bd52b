package repositories

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// DocumentReader defines read operations for documents.
type DocumentReader interface {
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocumentsByScholar(ctx context.Context, scholarID string, limit int, nextToken *string) ([]domain.Document, *string, error)
}

// DocumentWriter defines write operations for documents.
type DocumentWriter interface {
	SaveDocument(ctx context.Context, document domain.Document, audit domain.AuditRecord) error
	DeleteDocument(ctx context.Context, documentID string, audit domain.AuditRecord) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
