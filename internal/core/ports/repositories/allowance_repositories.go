package repositories

import (
	"context"
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// AllowanceReader defines read operations for allowance data.
type AllowanceReader interface {
	// FindAllowanceByID retrieves an allowance with its components.
	FindAllowanceByID(ctx context.Context, allowanceID string) (*domain.Allowance, error)

	// ListAllowancesByScholar retrieves a paginated list of a scholar's allowances.
	ListAllowancesByScholar(ctx context.Context, scholarID string, limit int, nextToken *string) ([]domain.Allowance, *string, error)
}

// AllowanceWriter defines write operations for allowance data. Every write
// appends the given audit record inside the same transaction.
type AllowanceWriter interface {
	// SaveAllowance persists an allowance and its components atomically.
	SaveAllowance(ctx context.Context, allowance domain.Allowance, audit domain.AuditRecord) error

	// MarkAllowanceClaimed flips the claimed flag for an unclaimed allowance.
	MarkAllowanceClaimed(ctx context.Context, allowanceID string, claimedAt time.Time, audit domain.AuditRecord) error
}

// AllowanceRepositoryFacade combines all allowance-related repository interfaces.
type AllowanceRepositoryFacade interface {
	AllowanceReader
	AllowanceWriter
}
