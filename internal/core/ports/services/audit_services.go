package services

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

// AuditSvcFacade exposes the ledger to admin readers. There is no write
// surface: ledger entries exist only as a by-product of committed mutations.
type AuditSvcFacade interface {
	// ListAuditRecords retrieves a filtered, paginated ledger slice.
	ListAuditRecords(ctx context.Context, actor domain.ActorRef, filter portsrepo.AuditListFilter, params dto.ListParams) (*dto.ListAuditRecordsResponse, error)

	// GetEntityTrail retrieves every ledger entry referencing one entity.
	GetEntityTrail(ctx context.Context, actor domain.ActorRef, kind domain.EntityKind, entityID string) ([]domain.AuditRecord, error)
}
