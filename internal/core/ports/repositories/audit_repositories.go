package repositories

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// AuditListFilter narrows a ledger listing. Zero values mean "any".
type AuditListFilter struct {
	EntityKind domain.EntityKind
	EntityID   string
	ActorID    string
}

// AuditReader defines read operations over the audit ledger. There is
// deliberately no standalone writer port: ledger rows are appended only
// inside the entity repositories' transactions, never on their own.
type AuditReader interface {
	// ListAuditRecords retrieves a paginated, newest-first slice of the ledger.
	ListAuditRecords(ctx context.Context, filter AuditListFilter, limit int, nextToken *string) ([]domain.AuditRecord, *string, error)

	// FindAuditByEntity retrieves all ledger entries referencing one entity.
	FindAuditByEntity(ctx context.Context, kind domain.EntityKind, entityID string) ([]domain.AuditRecord, error)
}

// AuditRepositoryFacade is the full ledger surface available to services.
type AuditRepositoryFacade interface {
	AuditReader
}
