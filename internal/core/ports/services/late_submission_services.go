package services

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

// LateSubmissionSvcFacade is the request/decide workflow. A scholar may hold
// at most one request per (month, year); requesting again fails with
// ErrConflict. Deciding is terminal except for adjusting an approved
// request's openUntil deadline.
type LateSubmissionSvcFacade interface {
	// RequestLateSubmission files a new pending request for the calling scholar.
	RequestLateSubmission(ctx context.Context, actor domain.ActorRef, req dto.LateSubmissionRequestInput) (*domain.LateSubmissionRequest, error)

	// DecideLateSubmission approves or rejects a pending request. openUntil
	// is optional on approval. On an already-decided request only openUntil
	// may change (set, moved or cleared); attempting to flip the outcome
	// fails with ErrConflict.
	DecideLateSubmission(ctx context.Context, actor domain.ActorRef, requestID string, req dto.LateSubmissionDecisionInput) (*domain.LateSubmissionRequest, error)

	// GetRequestByID retrieves one request. Students see only their own.
	GetRequestByID(ctx context.Context, actor domain.ActorRef, requestID string) (*domain.LateSubmissionRequest, error)

	// ListRequests lists requests for admins, optionally pending only.
	ListRequests(ctx context.Context, actor domain.ActorRef, pendingOnly bool, params dto.ListParams) (*dto.ListLateSubmissionsResponse, error)

	// ListOwnRequests lists the calling scholar's requests.
	ListOwnRequests(ctx context.Context, actor domain.ActorRef) ([]domain.LateSubmissionRequest, error)
}
