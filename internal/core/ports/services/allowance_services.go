package services

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

// AllowanceReaderSvc defines read operations for allowances.
type AllowanceReaderSvc interface {
	// GetAllowanceByID retrieves one allowance with components. Students may
	// only read their own.
	GetAllowanceByID(ctx context.Context, actor domain.ActorRef, allowanceID string) (*domain.Allowance, error)

	// ListAllowancesByScholar retrieves a scholar's allowances.
	ListAllowancesByScholar(ctx context.Context, actor domain.ActorRef, scholarID string, params dto.ListParams) (*dto.ListAllowancesResponse, error)
}

// AllowanceWriterSvc defines audited allowance mutations.
type AllowanceWriterSvc interface {
	// CreateAllowance creates an allowance whose total must equal the sum of
	// its components.
	CreateAllowance(ctx context.Context, actor domain.ActorRef, req dto.CreateAllowanceRequest) (*domain.Allowance, error)

	// ClaimAllowance marks an unclaimed allowance as claimed by its owner.
	ClaimAllowance(ctx context.Context, actor domain.ActorRef, allowanceID string) (*domain.Allowance, error)
}

// AllowanceSvcFacade combines all allowance service interfaces.
type AllowanceSvcFacade interface {
	AllowanceReaderSvc
	AllowanceWriterSvc
}
