package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

type announcementService struct {
	BaseService
	announcementRepo portsrepo.AnnouncementRepositoryFacade
	actorRepo        portsrepo.ActorReader
	authorizer       portssvc.AuthorizerSvc
	notifier         portssvc.NotificationPublisherSvc
}

// NewAnnouncementService creates a new announcement service.
func NewAnnouncementService(announcementRepo portsrepo.AnnouncementRepositoryFacade, actorRepo portsrepo.ActorReader, authorizer portssvc.AuthorizerSvc, notifier portssvc.NotificationPublisherSvc) portssvc.AnnouncementSvcFacade {
	return &announcementService{
		announcementRepo: announcementRepo,
		actorRepo:        actorRepo,
		authorizer:       authorizer,
		notifier:         notifier,
	}
}

var _ portssvc.AnnouncementSvcFacade = (*announcementService)(nil)

// CreateAnnouncement posts a new announcement and fans a targeted
// notification out to every active scholar after the commit.
func (s *announcementService) CreateAnnouncement(ctx context.Context, actor domain.ActorRef, req dto.CreateAnnouncementRequest) (*domain.Announcement, error) {
	if err := s.authorizer.Authorize(actor.Role, domain.ActionCreate, domain.KindAnnouncement); err != nil {
		return nil, err
	}

	now := time.Now()
	announcement := domain.Announcement{
		AnnouncementID: uuid.NewString(),
		Title:          req.Title,
		Body:           req.Body,
		Pinned:         req.Pinned,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	audit := newAuditRecord(domain.ActionCreate, domain.KindAnnouncement, announcement.AnnouncementID, actor.ActorID)
	if err := s.announcementRepo.SaveAnnouncement(ctx, announcement, audit); err != nil {
		s.LogError(ctx, err, "Failed to save announcement", slog.String("announcement_id", announcement.AnnouncementID))
		return nil, err
	}

	s.LogInfo(ctx, "Announcement created", slog.String("announcement_id", announcement.AnnouncementID))
	s.fanOutToScholars(ctx, "New announcement", announcement.Title, "/announcements/"+announcement.AnnouncementID)
	return &announcement, nil
}

// UpdateAnnouncement updates an announcement in place. Edits do not re-notify.
func (s *announcementService) UpdateAnnouncement(ctx context.Context, actor domain.ActorRef, announcementID string, req dto.UpdateAnnouncementRequest) (*domain.Announcement, error) {
	if err := s.authorizer.Authorize(actor.Role, domain.ActionUpdate, domain.KindAnnouncement); err != nil {
		return nil, err
	}

	announcement, err := s.announcementRepo.FindAnnouncementByID(ctx, announcementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find announcement for update", slog.String("announcement_id", announcementID))
		}
		return nil, err
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Body != nil {
		announcement.Body = *req.Body
	}
	if req.Pinned != nil {
		announcement.Pinned = *req.Pinned
	}
	announcement.LastUpdatedAt = time.Now()
	announcement.LastUpdatedBy = actor.ActorID

	audit := newAuditRecord(domain.ActionUpdate, domain.KindAnnouncement, announcementID, actor.ActorID)
	if err := s.announcementRepo.UpdateAnnouncement(ctx, *announcement, audit); err != nil {
		s.LogError(ctx, err, "Failed to update announcement", slog.String("announcement_id", announcementID))
		return nil, err
	}

	s.LogInfo(ctx, "Announcement updated", slog.String("announcement_id", announcementID))
	return announcement, nil
}

// DeleteAnnouncement removes an announcement. The DELETE ledger entry
// survives the row.
func (s *announcementService) DeleteAnnouncement(ctx context.Context, actor domain.ActorRef, announcementID string) error {
	if err := s.authorizer.Authorize(actor.Role, domain.ActionDelete, domain.KindAnnouncement); err != nil {
		return err
	}

	audit := newAuditRecord(domain.ActionDelete, domain.KindAnnouncement, announcementID, actor.ActorID)
	if err := s.announcementRepo.DeleteAnnouncement(ctx, announcementID, audit); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete announcement", slog.String("announcement_id", announcementID))
		}
		return err
	}

	s.LogInfo(ctx, "Announcement deleted", slog.String("announcement_id", announcementID))
	return nil
}

// GetAnnouncementByID retrieves a single announcement.
func (s *announcementService) GetAnnouncementByID(ctx context.Context, actor domain.ActorRef, announcementID string) (*domain.Announcement, error) {
	if !s.authorizer.CanRead(actor.Role, domain.KindAnnouncement) {
		return nil, apperrors.ErrForbidden
	}
	announcement, err := s.announcementRepo.FindAnnouncementByID(ctx, announcementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find announcement", slog.String("announcement_id", announcementID))
		}
		return nil, err
	}
	return announcement, nil
}

// ListAnnouncements retrieves a paginated, newest-first list.
func (s *announcementService) ListAnnouncements(ctx context.Context, actor domain.ActorRef, params dto.ListParams) (*dto.ListAnnouncementsResponse, error) {
	if !s.authorizer.CanRead(actor.Role, domain.KindAnnouncement) {
		return nil, apperrors.ErrForbidden
	}
	announcements, nextToken, err := s.announcementRepo.ListAnnouncements(ctx, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list announcements")
		return nil, err
	}
	return dto.ToListAnnouncementsResponse(announcements, nextToken), nil
}

// fanOutToScholars targets every active scholar with one notification each.
func (s *announcementService) fanOutToScholars(ctx context.Context, title, message, link string) {
	scholarIDs, err := s.actorRepo.ListScholarIDs(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list scholar ids for announcement fan-out")
		return
	}
	s.notifier.NotifyScholars(ctx, scholarIDs, domain.NotifyAnnouncement, title, message, link)
}
