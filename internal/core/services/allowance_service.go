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

type allowanceService struct {
	BaseService
	allowanceRepo portsrepo.AllowanceRepositoryFacade
	authorizer    portssvc.AuthorizerSvc
	notifier      portssvc.NotificationPublisherSvc
}

// NewAllowanceService creates a new allowance service.
func NewAllowanceService(allowanceRepo portsrepo.AllowanceRepositoryFacade, authorizer portssvc.AuthorizerSvc, notifier portssvc.NotificationPublisherSvc) portssvc.AllowanceSvcFacade {
	return &allowanceService{
		allowanceRepo: allowanceRepo,
		authorizer:    authorizer,
		notifier:      notifier,
	}
}

var _ portssvc.AllowanceSvcFacade = (*allowanceService)(nil)

// CreateAllowance creates an allowance whose total must equal the sum of its
// components. Row, components and CREATE ledger entry commit together; the
// owner's notification goes out only after that commit succeeds.
func (s *allowanceService) CreateAllowance(ctx context.Context, actor domain.ActorRef, req dto.CreateAllowanceRequest) (*domain.Allowance, error) {
	if err := s.authorizer.Authorize(actor.Role, domain.ActionCreate, domain.KindAllowance); err != nil {
		return nil, err
	}

	now := time.Now()
	allowance := domain.Allowance{
		AllowanceID: uuid.NewString(),
		ScholarID:   req.ScholarID,
		Month:       req.Month,
		Year:        req.Year,
		TotalAmount: req.TotalAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}
	allowance.Components = make([]domain.AllowanceComponent, len(req.Components))
	for i, c := range req.Components {
		allowance.Components[i] = domain.AllowanceComponent{
			ComponentID: uuid.NewString(),
			AllowanceID: allowance.AllowanceID,
			Name:        c.Name,
			Amount:      c.Amount,
		}
	}

	if !allowance.TotalAmount.Equal(allowance.ComponentSum()) {
		return nil, apperrors.NewAppError(400, "total amount does not equal the sum of components", apperrors.ErrValidation)
	}

	audit := newAuditRecord(domain.ActionCreate, domain.KindAllowance, allowance.AllowanceID, actor.ActorID)
	if err := s.allowanceRepo.SaveAllowance(ctx, allowance, audit); err != nil {
		s.LogError(ctx, err, "Failed to save allowance", slog.String("allowance_id", allowance.AllowanceID))
		return nil, err
	}

	s.LogInfo(ctx, "Allowance created", slog.String("allowance_id", allowance.AllowanceID), slog.String("scholar_id", allowance.ScholarID))
	s.notifier.NotifyScholar(ctx, allowance.ScholarID,
		domain.NotifyAllowance,
		"New allowance posted",
		fmt.Sprintf("Your allowance for %d/%d is ready.", allowance.Month, allowance.Year),
		"/allowances/"+allowance.AllowanceID,
	)
	return &allowance, nil
}

// ClaimAllowance marks an unclaimed allowance as claimed. Only the owning
// scholar may claim; the flip and its UPDATE ledger entry commit together and
// the document admins get a broadcast afterwards.
func (s *allowanceService) ClaimAllowance(ctx context.Context, actor domain.ActorRef, allowanceID string) (*domain.Allowance, error) {
	allowance, err := s.allowanceRepo.FindAllowanceByID(ctx, allowanceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find allowance for claim", slog.String("allowance_id", allowanceID))
		}
		return nil, err
	}
	if allowance.ScholarID != actor.ActorID {
		return nil, apperrors.ErrForbidden
	}

	claimedAt := time.Now()
	audit := newAuditRecord(domain.ActionUpdate, domain.KindAllowance, allowanceID, actor.ActorID)
	if err := s.allowanceRepo.MarkAllowanceClaimed(ctx, allowanceID, claimedAt, audit); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to claim allowance", slog.String("allowance_id", allowanceID))
		}
		return nil, err
	}

	allowance.Claimed = true
	allowance.ClaimedAt = &claimedAt
	allowance.LastUpdatedAt = claimedAt
	allowance.LastUpdatedBy = actor.ActorID

	s.LogInfo(ctx, "Allowance claimed", slog.String("allowance_id", allowanceID), slog.String("scholar_id", actor.ActorID))
	role := domain.RoleManageDocuments
	s.notifier.NotifyAdmins(ctx, &role,
		domain.NotifyAllowance,
		"Allowance claimed",
		fmt.Sprintf("Allowance for %d/%d was claimed by its scholar.", allowance.Month, allowance.Year),
		"/allowances/"+allowanceID,
	)
	return allowance, nil
}

// GetAllowanceByID retrieves one allowance with components. Students may only
// read their own.
func (s *allowanceService) GetAllowanceByID(ctx context.Context, actor domain.ActorRef, allowanceID string) (*domain.Allowance, error) {
	if !s.authorizer.CanRead(actor.Role, domain.KindAllowance) {
		return nil, apperrors.ErrForbidden
	}
	allowance, err := s.allowanceRepo.FindAllowanceByID(ctx, allowanceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find allowance", slog.String("allowance_id", allowanceID))
		}
		return nil, err
	}
	if actor.Role == domain.RoleStudent && allowance.ScholarID != actor.ActorID {
		return nil, apperrors.ErrForbidden
	}
	return allowance, nil
}

// ListAllowancesByScholar retrieves a scholar's allowances.
func (s *allowanceService) ListAllowancesByScholar(ctx context.Context, actor domain.ActorRef, scholarID string, params dto.ListParams) (*dto.ListAllowancesResponse, error) {
	if actor.Role == domain.RoleStudent && actor.ActorID != scholarID {
		return nil, apperrors.ErrForbidden
	}
	if !s.authorizer.CanRead(actor.Role, domain.KindAllowance) {
		return nil, apperrors.ErrForbidden
	}
	allowances, nextToken, err := s.allowanceRepo.ListAllowancesByScholar(ctx, scholarID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list allowances", slog.String("scholar_id", scholarID))
		return nil, err
	}
	return dto.ToListAllowancesResponse(allowances, nextToken), nil
}
