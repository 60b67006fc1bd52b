package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	authorizer   portssvc.AuthorizerSvc
	notifier     portssvc.NotificationPublisherSvc
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, authorizer portssvc.AuthorizerSvc, notifier portssvc.NotificationPublisherSvc) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		authorizer:   authorizer,
		notifier:     notifier,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument records a student upload. The owner is always the calling
// scholar; the document admins get a broadcast after the commit.
func (s *documentService) CreateDocument(ctx context.Context, actor domain.ActorRef, req dto.CreateDocumentRequest) (*domain.Document, error) {
	if actor.Role != domain.RoleStudent {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	document := domain.Document{
		DocumentID: uuid.NewString(),
		ScholarID:  actor.ActorID,
		Title:      req.Title,
		Kind:       req.Kind,
		FileRef:    req.FileRef,
		Generated:  false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	audit := newAuditRecord(domain.ActionCreate, domain.KindDocument, document.DocumentID, actor.ActorID)
	if err := s.documentRepo.SaveDocument(ctx, document, audit); err != nil {
		s.LogError(ctx, err, "Failed to save document", slog.String("document_id", document.DocumentID))
		return nil, err
	}

	s.LogInfo(ctx, "Document uploaded", slog.String("document_id", document.DocumentID), slog.String("scholar_id", actor.ActorID))
	role := domain.RoleManageDocuments
	s.notifier.NotifyAdmins(ctx, &role,
		domain.NotifyDocument,
		"Document uploaded",
		"A scholar uploaded \""+document.Title+"\".",
		"/documents/"+document.DocumentID,
	)
	return &document, nil
}

// GenerateDocument produces a portal-generated document for a scholar. The
// ledger records it with the GENERATE action and the owner is notified.
func (s *documentService) GenerateDocument(ctx context.Context, actor domain.ActorRef, req dto.GenerateDocumentRequest) (*domain.Document, error) {
	if err := s.authorizer.Authorize(actor.Role, domain.ActionGenerate, domain.KindDocument); err != nil {
		return nil, err
	}

	now := time.Now()
	document := domain.Document{
		DocumentID: uuid.NewString(),
		ScholarID:  req.ScholarID,
		Title:      req.Title,
		Kind:       req.Kind,
		FileRef:    req.FileRef,
		Generated:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	audit := newAuditRecord(domain.ActionGenerate, domain.KindDocument, document.DocumentID, actor.ActorID)
	if err := s.documentRepo.SaveDocument(ctx, document, audit); err != nil {
		s.LogError(ctx, err, "Failed to save generated document", slog.String("document_id", document.DocumentID))
		return nil, err
	}

	s.LogInfo(ctx, "Document generated", slog.String("document_id", document.DocumentID), slog.String("scholar_id", req.ScholarID))
	s.notifier.NotifyScholar(ctx, document.ScholarID,
		domain.NotifyDocument,
		"Document ready",
		"\""+document.Title+"\" has been generated for you.",
		"/documents/"+document.DocumentID,
	)
	return &document, nil
}

// DeleteDocument removes a document. Students may delete only their own
// uploads; admins with document scope may delete any.
func (s *documentService) DeleteDocument(ctx context.Context, actor domain.ActorRef, documentID string) error {
	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document for delete", slog.String("document_id", documentID))
		}
		return err
	}

	if actor.Role == domain.RoleStudent {
		if document.ScholarID != actor.ActorID || document.Generated {
			return apperrors.ErrForbidden
		}
	} else if err := s.authorizer.Authorize(actor.Role, domain.ActionDelete, domain.KindDocument); err != nil {
		return err
	}

	audit := newAuditRecord(domain.ActionDelete, domain.KindDocument, documentID, actor.ActorID)
	if err := s.documentRepo.DeleteDocument(ctx, documentID, audit); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete document", slog.String("document_id", documentID))
		}
		return err
	}

	s.LogInfo(ctx, "Document deleted", slog.String("document_id", documentID))
	return nil
}

// GetDocumentByID retrieves a single document. Students see only their own.
func (s *documentService) GetDocumentByID(ctx context.Context, actor domain.ActorRef, documentID string) (*domain.Document, error) {
	if !s.authorizer.CanRead(actor.Role, domain.KindDocument) {
		return nil, apperrors.ErrForbidden
	}
	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document", slog.String("document_id", documentID))
		}
		return nil, err
	}
	if actor.Role == domain.RoleStudent && document.ScholarID != actor.ActorID {
		return nil, apperrors.ErrForbidden
	}
	return document, nil
}

// ListDocumentsByScholar retrieves a paginated list of one scholar's documents.
func (s *documentService) ListDocumentsByScholar(ctx context.Context, actor domain.ActorRef, scholarID string, params dto.ListParams) (*dto.ListDocumentsResponse, error) {
	if actor.Role == domain.RoleStudent && actor.ActorID != scholarID {
		return nil, apperrors.ErrForbidden
	}
	if !s.authorizer.CanRead(actor.Role, domain.KindDocument) {
		return nil, apperrors.ErrForbidden
	}
	documents, nextToken, err := s.documentRepo.ListDocumentsByScholar(ctx, scholarID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.String("scholar_id", scholarID))
		return nil, err
	}
	return dto.ToListDocumentsResponse(documents, nextToken), nil
}
