package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

const openUntilLayout = "2006-01-02"

type lateSubmissionService struct {
	BaseService
	lateSubmissionRepo portsrepo.LateSubmissionRepositoryFacade
	notifier           portssvc.NotificationPublisherSvc
}

// NewLateSubmissionService creates a new late-submission workflow service.
func NewLateSubmissionService(lateSubmissionRepo portsrepo.LateSubmissionRepositoryFacade, notifier portssvc.NotificationPublisherSvc) portssvc.LateSubmissionSvcFacade {
	return &lateSubmissionService{
		lateSubmissionRepo: lateSubmissionRepo,
		notifier:           notifier,
	}
}

var _ portssvc.LateSubmissionSvcFacade = (*lateSubmissionService)(nil)

// canDecide reports whether the role may decide late-submission requests.
// The workflow belongs to the documents office.
func canDecide(role domain.Role) bool {
	return role == domain.RoleSuperAdmin || role == domain.RoleManageDocuments
}

// RequestLateSubmission files a new pending request for the calling scholar.
// The FindRequestByPeriod read is only a fast path for a friendly error; the
// unique index on (scholar_id, month, year) is what actually decides races.
func (s *lateSubmissionService) RequestLateSubmission(ctx context.Context, actor domain.ActorRef, req dto.LateSubmissionRequestInput) (*domain.LateSubmissionRequest, error) {
	if actor.Role != domain.RoleStudent {
		return nil, apperrors.ErrForbidden
	}

	if existing, err := s.lateSubmissionRepo.FindRequestByPeriod(ctx, actor.ActorID, req.Month, req.Year); err == nil && existing != nil {
		return nil, apperrors.NewAppError(409, "a request for this period already exists", apperrors.ErrConflict)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to pre-check late submission period")
		return nil, err
	}

	request := domain.LateSubmissionRequest{
		RequestID: uuid.NewString(),
		ScholarID: actor.ActorID,
		Month:     req.Month,
		Year:      req.Year,
		Reason:    req.Reason,
		CreatedAt: time.Now(),
	}

	if err := s.lateSubmissionRepo.CreateRequest(ctx, request); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to create late submission request", slog.String("request_id", request.RequestID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Late submission requested", slog.String("request_id", request.RequestID), slog.Int("month", req.Month), slog.Int("year", req.Year))
	role := domain.RoleManageDocuments
	s.notifier.NotifyAdmins(ctx, &role,
		domain.NotifyLateSubmission,
		"Late submission requested",
		fmt.Sprintf("A scholar asked to reopen the %d/%d submission window.", req.Month, req.Year),
		"/late-submissions/"+request.RequestID,
	)
	return &request, nil
}

// DecideLateSubmission approves or rejects a pending request. openUntil is
// optional on approval; omitted it stores no deadline. Decisions are
// terminal: once decided, only an approved request's openUntil may still be
// set, moved or cleared, and attempting to flip the outcome fails with
// ErrConflict.
func (s *lateSubmissionService) DecideLateSubmission(ctx context.Context, actor domain.ActorRef, requestID string, req dto.LateSubmissionDecisionInput) (*domain.LateSubmissionRequest, error) {
	if !canDecide(actor.Role) {
		return nil, apperrors.ErrForbidden
	}

	request, err := s.lateSubmissionRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find late submission request", slog.String("request_id", requestID))
		}
		return nil, err
	}

	var openUntil *time.Time
	if req.Approve && req.OpenUntil != nil {
		day, parseErr := time.ParseInLocation(openUntilLayout, *req.OpenUntil, time.Local)
		if parseErr != nil {
			return nil, apperrors.NewAppError(400, "openUntil must be a calendar date", apperrors.ErrValidation)
		}
		deadline := domain.EndOfDay(day, time.Local)
		openUntil = &deadline
	}

	if request.Decided() {
		if *request.IsApproved != req.Approve {
			return nil, apperrors.NewAppError(409, "request "+requestID+" is already decided", apperrors.ErrConflict)
		}
		if !req.Approve {
			// Re-rejecting changes nothing.
			return request, nil
		}
		if err := s.lateSubmissionRepo.UpdateOpenUntil(ctx, requestID, openUntil); err != nil {
			s.LogError(ctx, err, "Failed to adjust openUntil", slog.String("request_id", requestID))
			return nil, err
		}
		request.OpenUntil = openUntil
		s.LogInfo(ctx, "Late submission deadline adjusted", slog.String("request_id", requestID))
		title := "Late submission deadline cleared"
		if openUntil != nil {
			title = "Late submission deadline moved"
		}
		s.notifyDecision(ctx, request, title)
		return request, nil
	}

	decidedAt := time.Now()
	if err := s.lateSubmissionRepo.DecideRequest(ctx, requestID, req.Approve, actor.ActorID, decidedAt, openUntil); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to decide late submission request", slog.String("request_id", requestID))
		}
		return nil, err
	}

	request.IsApproved = &req.Approve
	request.DecidedBy = &actor.ActorID
	request.DecidedAt = &decidedAt
	request.OpenUntil = openUntil

	s.LogInfo(ctx, "Late submission decided", slog.String("request_id", requestID), slog.Bool("approved", req.Approve))
	title := "Late submission rejected"
	if req.Approve {
		title = "Late submission approved"
	}
	s.notifyDecision(ctx, request, title)
	return request, nil
}

func (s *lateSubmissionService) notifyDecision(ctx context.Context, request *domain.LateSubmissionRequest, title string) {
	message := fmt.Sprintf("Your request for %d/%d was reviewed.", request.Month, request.Year)
	if request.OpenUntil != nil {
		message = fmt.Sprintf("Your request for %d/%d was reviewed. The window is open until %s.",
			request.Month, request.Year, request.OpenUntil.Format(openUntilLayout))
	}
	s.notifier.NotifyScholar(ctx, request.ScholarID, domain.NotifyLateSubmission, title, message, "/late-submissions/"+request.RequestID)
}

// GetRequestByID retrieves one request. Students see only their own.
func (s *lateSubmissionService) GetRequestByID(ctx context.Context, actor domain.ActorRef, requestID string) (*domain.LateSubmissionRequest, error) {
	request, err := s.lateSubmissionRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find late submission request", slog.String("request_id", requestID))
		}
		return nil, err
	}
	if actor.Role == domain.RoleStudent && request.ScholarID != actor.ActorID {
		return nil, apperrors.ErrForbidden
	}
	if !actor.Role.IsAdmin() && actor.Role != domain.RoleStudent {
		return nil, apperrors.ErrForbidden
	}
	return request, nil
}

// ListRequests lists requests for admins, optionally pending only.
func (s *lateSubmissionService) ListRequests(ctx context.Context, actor domain.ActorRef, pendingOnly bool, params dto.ListParams) (*dto.ListLateSubmissionsResponse, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	requests, nextToken, err := s.lateSubmissionRepo.ListRequests(ctx, pendingOnly, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list late submission requests")
		return nil, err
	}
	return dto.ToListLateSubmissionsResponse(requests, nextToken), nil
}

// ListOwnRequests lists the calling scholar's requests.
func (s *lateSubmissionService) ListOwnRequests(ctx context.Context, actor domain.ActorRef) ([]domain.LateSubmissionRequest, error) {
	if actor.Role != domain.RoleStudent {
		return nil, apperrors.ErrForbidden
	}
	requests, err := s.lateSubmissionRepo.ListRequestsByScholar(ctx, actor.ActorID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list own late submission requests")
		return nil, err
	}
	return requests, nil
}
