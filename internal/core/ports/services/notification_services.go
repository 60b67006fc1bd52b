package services

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

// NotificationPublisherSvc is the fire-and-forget side used by the domain
// services after their transaction commits. None of these methods return an
// error: publish failures are logged and dropped, they never convert a
// committed mutation into an apparent failure.
type NotificationPublisherSvc interface {
	// NotifyScholar persists and pushes one targeted notification.
	NotifyScholar(ctx context.Context, receiverID string, typ domain.NotificationType, title, message, link string)

	// NotifyScholars fans one message out as individual targeted
	// notifications, one per receiver.
	NotifyScholars(ctx context.Context, receiverIDs []string, typ domain.NotificationType, title, message, link string)

	// NotifyAdmins persists and pushes one broadcast. A nil role addresses
	// every admin role.
	NotifyAdmins(ctx context.Context, role *domain.Role, typ domain.NotificationType, title, message, link string)
}

// NotificationReaderSvc is the pull side for clients.
type NotificationReaderSvc interface {
	// ListNotifications returns the caller's notification feed.
	ListNotifications(ctx context.Context, actor domain.ActorRef, unreadOnly bool, params dto.ListParams) (*dto.ListNotificationsResponse, error)

	// UnreadCount returns how many notifications the caller has not read.
	UnreadCount(ctx context.Context, actor domain.ActorRef) (int, error)
}

// NotificationStreamSvc is the live push side.
type NotificationStreamSvc interface {
	// Subscribe opens a live event stream filtered by the caller's identity:
	// students receive their targeted notifications, admins the broadcasts
	// visible to their role. The returned cancel func must be called when the
	// connection closes.
	Subscribe(actor domain.ActorRef) (<-chan domain.NotificationEvent, func())
}

// NotificationAckSvc flips read state; both operations are idempotent.
// Admins may only acknowledge broadcasts their role can see.
type NotificationAckSvc interface {
	// MarkRead acknowledges one notification for the calling actor.
	MarkRead(ctx context.Context, actor domain.ActorRef, notificationID string) error
}

// NotificationSvcFacade combines all notification service interfaces.
type NotificationSvcFacade interface {
	NotificationPublisherSvc
	NotificationReaderSvc
	NotificationStreamSvc
	NotificationAckSvc
}
