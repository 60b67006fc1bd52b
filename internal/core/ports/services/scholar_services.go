package services

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

// ScholarReaderSvc defines read operations over the scholar directory.
type ScholarReaderSvc interface {
	// GetScholarByID retrieves one scholar.
	GetScholarByID(ctx context.Context, actor domain.ActorRef, scholarID string) (*domain.Actor, error)

	// ListScholars retrieves a paginated list of scholars.
	ListScholars(ctx context.Context, actor domain.ActorRef, params dto.ListParams) (*dto.ListScholarsResponse, error)
}

// ScholarWriterSvc defines audited scholar mutations.
type ScholarWriterSvc interface {
	// CreateScholar enrolls a new scholar.
	CreateScholar(ctx context.Context, actor domain.ActorRef, req dto.CreateScholarRequest) (*domain.Actor, error)

	// UpdateScholar updates a scholar's profile.
	UpdateScholar(ctx context.Context, actor domain.ActorRef, scholarID string, req dto.UpdateScholarRequest) (*domain.Actor, error)
}

// ScholarSvcFacade combines all scholar service interfaces.
type ScholarSvcFacade interface {
	ScholarReaderSvc
	ScholarWriterSvc
}
