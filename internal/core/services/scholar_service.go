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
	"github.com/scholarbase/scholarship_portal_api/internal/utils"
)

type scholarService struct {
	BaseService
	actorRepo  portsrepo.ActorRepositoryFacade
	authorizer portssvc.AuthorizerSvc
}

// NewScholarService creates a new scholar directory service.
func NewScholarService(actorRepo portsrepo.ActorRepositoryFacade, authorizer portssvc.AuthorizerSvc) portssvc.ScholarSvcFacade {
	return &scholarService{
		actorRepo:  actorRepo,
		authorizer: authorizer,
	}
}

var _ portssvc.ScholarSvcFacade = (*scholarService)(nil)

// CreateScholar enrolls a new scholar. The row and its CREATE ledger entry
// commit in one transaction.
func (s *scholarService) CreateScholar(ctx context.Context, actor domain.ActorRef, req dto.CreateScholarRequest) (*domain.Actor, error) {
	if err := s.authorizer.Authorize(actor.Role, domain.ActionCreate, domain.KindScholar); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash scholar password")
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now()
	scholar := domain.Actor{
		ActorID:      uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         domain.RoleStudent,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	audit := newAuditRecord(domain.ActionCreate, domain.KindScholar, scholar.ActorID, actor.ActorID)
	if err := s.actorRepo.SaveScholar(ctx, scholar, audit); err != nil {
		s.LogError(ctx, err, "Failed to save scholar", slog.String("scholar_id", scholar.ActorID))
		return nil, err
	}

	s.LogInfo(ctx, "Scholar enrolled", slog.String("scholar_id", scholar.ActorID))
	return &scholar, nil
}

// UpdateScholar updates a scholar's profile.
func (s *scholarService) UpdateScholar(ctx context.Context, actor domain.ActorRef, scholarID string, req dto.UpdateScholarRequest) (*domain.Actor, error) {
	if err := s.authorizer.Authorize(actor.Role, domain.ActionUpdate, domain.KindScholar); err != nil {
		return nil, err
	}

	scholar, err := s.actorRepo.FindActorByID(ctx, scholarID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find scholar for update", slog.String("scholar_id", scholarID))
		}
		return nil, err
	}
	if scholar.Role != domain.RoleStudent {
		// Admin accounts are not editable through the scholar surface.
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		scholar.Name = *req.Name
	}
	if req.Email != nil {
		scholar.Email = *req.Email
	}
	scholar.LastUpdatedAt = time.Now()
	scholar.LastUpdatedBy = actor.ActorID

	audit := newAuditRecord(domain.ActionUpdate, domain.KindScholar, scholar.ActorID, actor.ActorID)
	if err := s.actorRepo.UpdateScholar(ctx, *scholar, audit); err != nil {
		s.LogError(ctx, err, "Failed to update scholar", slog.String("scholar_id", scholarID))
		return nil, err
	}

	s.LogInfo(ctx, "Scholar updated", slog.String("scholar_id", scholarID))
	return scholar, nil
}

// GetScholarByID retrieves one scholar. Students may only fetch themselves.
func (s *scholarService) GetScholarByID(ctx context.Context, actor domain.ActorRef, scholarID string) (*domain.Actor, error) {
	if actor.Role == domain.RoleStudent && actor.ActorID != scholarID {
		return nil, apperrors.ErrForbidden
	}
	scholar, err := s.actorRepo.FindActorByID(ctx, scholarID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find scholar", slog.String("scholar_id", scholarID))
		}
		return nil, err
	}
	return scholar, nil
}

// ListScholars retrieves a paginated list of scholars. Admin only.
func (s *scholarService) ListScholars(ctx context.Context, actor domain.ActorRef, params dto.ListParams) (*dto.ListScholarsResponse, error) {
	if !s.authorizer.CanRead(actor.Role, domain.KindScholar) {
		return nil, apperrors.ErrForbidden
	}
	scholars, nextToken, err := s.actorRepo.ListScholars(ctx, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list scholars")
		return nil, err
	}
	return dto.ToListScholarsResponse(scholars, nextToken), nil
}
