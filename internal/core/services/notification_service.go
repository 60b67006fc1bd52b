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
	"github.com/scholarbase/scholarship_portal_api/internal/platform/broker"
)

// notificationService persists notification state and feeds the live bus.
// Publishing is fire-and-forget: it runs after the triggering mutation has
// committed, and a failure here is logged, never surfaced to the caller.
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
	bus              *broker.Broker
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, bus *broker.Broker) portssvc.NotificationSvcFacade {
	return &notificationService{
		notificationRepo: notificationRepo,
		bus:              bus,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// NotifyScholar persists and pushes one targeted notification.
func (s *notificationService) NotifyScholar(ctx context.Context, receiverID string, typ domain.NotificationType, title, message, link string) {
	s.NotifyScholars(ctx, []string{receiverID}, typ, title, message, link)
}

// NotifyScholars fans one message out as individual targeted notifications.
// Each receiver gets their own row with its own read flag.
func (s *notificationService) NotifyScholars(ctx context.Context, receiverIDs []string, typ domain.NotificationType, title, message, link string) {
	if len(receiverIDs) == 0 {
		return
	}
	now := time.Now()
	notifications := make([]domain.ScholarNotification, len(receiverIDs))
	for i, receiverID := range receiverIDs {
		notifications[i] = domain.ScholarNotification{
			NotificationID: uuid.NewString(),
			ReceiverID:     receiverID,
			Type:           typ,
			Title:          title,
			Message:        message,
			Link:           link,
			Read:           false,
			CreatedAt:      now,
		}
	}

	if err := s.notificationRepo.SaveScholarNotifications(ctx, notifications); err != nil {
		s.LogError(ctx, err, "Failed to persist scholar notifications", slog.Int("count", len(notifications)))
		return
	}

	for i := range notifications {
		s.bus.Publish(domain.NotificationEvent{Scholar: &notifications[i]})
	}
	s.LogDebug(ctx, "Scholar notifications published", slog.Int("count", len(notifications)), slog.String("type", string(typ)))
}

// NotifyAdmins persists and pushes one broadcast. A nil role addresses every
// admin role; the record is shared, read state accrues per reader.
func (s *notificationService) NotifyAdmins(ctx context.Context, role *domain.Role, typ domain.NotificationType, title, message, link string) {
	notification := domain.AdminNotification{
		NotificationID: uuid.NewString(),
		Role:           role,
		Type:           typ,
		Title:          title,
		Message:        message,
		Link:           link,
		CreatedAt:      time.Now(),
	}

	if err := s.notificationRepo.SaveAdminNotification(ctx, notification); err != nil {
		s.LogError(ctx, err, "Failed to persist admin notification", slog.String("type", string(typ)))
		return
	}

	s.bus.Publish(domain.NotificationEvent{Admin: &notification})
	s.LogDebug(ctx, "Admin notification published", slog.String("notification_id", notification.NotificationID), slog.String("type", string(typ)))
}

// ListNotifications returns the caller's notification feed, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, actor domain.ActorRef, unreadOnly bool, params dto.ListParams) (*dto.ListNotificationsResponse, error) {
	if actor.Role == domain.RoleStudent {
		notifications, nextToken, err := s.notificationRepo.ListScholarNotifications(ctx, actor.ActorID, unreadOnly, params.Limit, params.NextToken)
		if err != nil {
			s.LogError(ctx, err, "Failed to list scholar notifications")
			return nil, err
		}
		out := make([]dto.NotificationResponse, len(notifications))
		for i := range notifications {
			out[i] = dto.ToScholarNotificationResponse(&notifications[i])
		}
		return &dto.ListNotificationsResponse{Notifications: out, NextToken: nextToken}, nil
	}

	if !actor.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	notifications, nextToken, err := s.notificationRepo.ListAdminNotifications(ctx, actor.Role, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list admin notifications")
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		resp := dto.ToAdminNotificationResponse(&notifications[i], actor.ActorID)
		if unreadOnly && resp.Read {
			continue
		}
		out = append(out, resp)
	}
	return &dto.ListNotificationsResponse{Notifications: out, NextToken: nextToken}, nil
}

// UnreadCount returns how many notifications the caller has not read.
func (s *notificationService) UnreadCount(ctx context.Context, actor domain.ActorRef) (int, error) {
	if actor.Role == domain.RoleStudent {
		return s.notificationRepo.CountUnreadScholar(ctx, actor.ActorID)
	}
	if !actor.Role.IsAdmin() {
		return 0, apperrors.ErrForbidden
	}
	return s.notificationRepo.CountUnreadAdmin(ctx, actor.Role, actor.ActorID)
}

// Subscribe opens a live event stream filtered by the caller's identity.
func (s *notificationService) Subscribe(actor domain.ActorRef) (<-chan domain.NotificationEvent, func()) {
	if actor.Role == domain.RoleStudent {
		return s.bus.Subscribe(broker.Filter{ScholarID: actor.ActorID})
	}
	return s.bus.Subscribe(broker.Filter{Role: actor.Role})
}

// MarkRead acknowledges one notification for the calling actor. Repeating
// the call leaves state unchanged and succeeds. An admin may only
// acknowledge a broadcast their role can see.
func (s *notificationService) MarkRead(ctx context.Context, actor domain.ActorRef, notificationID string) error {
	if actor.Role == domain.RoleStudent {
		return s.notificationRepo.MarkScholarNotificationRead(ctx, notificationID, actor.ActorID)
	}
	if !actor.Role.IsAdmin() {
		return apperrors.ErrForbidden
	}

	notification, err := s.notificationRepo.FindAdminNotificationByID(ctx, notificationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find admin notification", slog.String("notification_id", notificationID))
		}
		return err
	}
	if !notification.VisibleTo(actor.Role) {
		return apperrors.ErrForbidden
	}
	return s.notificationRepo.MarkAdminNotificationRead(ctx, notificationID, actor.ActorID)
}
