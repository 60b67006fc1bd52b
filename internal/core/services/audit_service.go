package services

import (
	"context"
	"log/slog"

	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new read-only ledger service.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// ListAuditRecords retrieves a filtered, paginated ledger slice. The ledger
// is admin-only; scholars never see it.
func (s *auditService) ListAuditRecords(ctx context.Context, actor domain.ActorRef, filter portsrepo.AuditListFilter, params dto.ListParams) (*dto.ListAuditRecordsResponse, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	records, nextToken, err := s.auditRepo.ListAuditRecords(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit records")
		return nil, err
	}
	return dto.ToListAuditRecordsResponse(records, nextToken), nil
}

// GetEntityTrail retrieves every ledger entry referencing one entity,
// oldest first.
func (s *auditService) GetEntityTrail(ctx context.Context, actor domain.ActorRef, kind domain.EntityKind, entityID string) ([]domain.AuditRecord, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	records, err := s.auditRepo.FindAuditByEntity(ctx, kind, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load audit trail", slog.String("entity_kind", string(kind)), slog.String("entity_id", entityID))
		return nil, err
	}
	return records, nil
}
