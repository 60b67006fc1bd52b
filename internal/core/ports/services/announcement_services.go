package services

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

// AnnouncementSvcFacade covers announcement reads and audited mutations.
type AnnouncementSvcFacade interface {
	GetAnnouncementByID(ctx context.Context, actor domain.ActorRef, announcementID string) (*domain.Announcement, error)
	ListAnnouncements(ctx context.Context, actor domain.ActorRef, params dto.ListParams) (*dto.ListAnnouncementsResponse, error)

	CreateAnnouncement(ctx context.Context, actor domain.ActorRef, req dto.CreateAnnouncementRequest) (*domain.Announcement, error)
	UpdateAnnouncement(ctx context.Context, actor domain.ActorRef, announcementID string, req dto.UpdateAnnouncementRequest) (*domain.Announcement, error)
	DeleteAnnouncement(ctx context.Context, actor domain.ActorRef, announcementID string) error
}
