package services

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

// DocumentSvcFacade covers document reads and audited mutations. Students
// act only on documents they own; GenerateDocument is admin-side and audits
// with the GENERATE action.
type DocumentSvcFacade interface {
	GetDocumentByID(ctx context.Context, actor domain.ActorRef, documentID string) (*domain.Document, error)
	ListDocumentsByScholar(ctx context.Context, actor domain.ActorRef, scholarID string, params dto.ListParams) (*dto.ListDocumentsResponse, error)

	CreateDocument(ctx context.Context, actor domain.ActorRef, req dto.CreateDocumentRequest) (*domain.Document, error)
	GenerateDocument(ctx context.Context, actor domain.ActorRef, req dto.GenerateDocumentRequest) (*domain.Document, error)
	DeleteDocument(ctx context.Context, actor domain.ActorRef, documentID string) error
}
