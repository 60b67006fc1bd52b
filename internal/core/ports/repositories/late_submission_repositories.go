package repositories

import (
	"context"
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// LateSubmissionReader defines read operations for late-submission requests.
type LateSubmissionReader interface {
	// FindRequestByID retrieves a single request.
	FindRequestByID(ctx context.Context, requestID string) (*domain.LateSubmissionRequest, error)

	// FindRequestByPeriod retrieves the request for one (scholar, month, year)
	// triple, if any. Used only as a fast-path pre-check; the unique index is
	// the actual duplicate guard.
	FindRequestByPeriod(ctx context.Context, scholarID string, month, year int) (*domain.LateSubmissionRequest, error)

	// ListRequests retrieves requests, optionally only the undecided ones.
	ListRequests(ctx context.Context, pendingOnly bool, limit int, nextToken *string) ([]domain.LateSubmissionRequest, *string, error)

	// ListRequestsByScholar retrieves one scholar's requests.
	ListRequestsByScholar(ctx context.Context, scholarID string) ([]domain.LateSubmissionRequest, error)
}

// LateSubmissionWriter defines write operations for late-submission requests.
type LateSubmissionWriter interface {
	// CreateRequest inserts a new pending request. A concurrent or earlier
	// request for the same (scholar, month, year) surfaces as ErrConflict.
	CreateRequest(ctx context.Context, request domain.LateSubmissionRequest) error

	// DecideRequest records the decision on a pending request.
	DecideRequest(ctx context.Context, requestID string, approve bool, decidedBy string, decidedAt time.Time, openUntil *time.Time) error

	// UpdateOpenUntil adjusts the reopened deadline of an approved request.
	// A nil openUntil clears the stored deadline.
	UpdateOpenUntil(ctx context.Context, requestID string, openUntil *time.Time) error
}

// LateSubmissionRepositoryFacade combines all late-submission repository interfaces.
type LateSubmissionRepositoryFacade interface {
	LateSubmissionReader
	LateSubmissionWriter
}
