package repositories

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// NotificationReader defines read operations for persisted notification state.
// This is the pull side: clients that were not connected when an event was
// published recover current state through these queries.
type NotificationReader interface {
	// ListScholarNotifications retrieves a scholar's notifications, newest first.
	ListScholarNotifications(ctx context.Context, receiverID string, unreadOnly bool, limit int, nextToken *string) ([]domain.ScholarNotification, *string, error)

	// ListAdminNotifications retrieves the broadcasts visible to the given role,
	// with reader sets populated.
	ListAdminNotifications(ctx context.Context, role domain.Role, limit int, nextToken *string) ([]domain.AdminNotification, *string, error)

	// CountUnreadScholar counts a scholar's unread notifications.
	CountUnreadScholar(ctx context.Context, receiverID string) (int, error)

	// CountUnreadAdmin counts broadcasts visible to role that readerID has not read.
	CountUnreadAdmin(ctx context.Context, role domain.Role, readerID string) (int, error)

	// FindAdminNotificationByID retrieves one broadcast with its reader set.
	FindAdminNotificationByID(ctx context.Context, notificationID string) (*domain.AdminNotification, error)
}

// NotificationWriter defines write operations for notification state. The
// two MarkRead operations are idempotent: repeating them leaves state
// unchanged and returns no error.
type NotificationWriter interface {
	// SaveScholarNotifications persists a batch of targeted notifications.
	SaveScholarNotifications(ctx context.Context, notifications []domain.ScholarNotification) error

	// SaveAdminNotification persists one broadcast notification.
	SaveAdminNotification(ctx context.Context, notification domain.AdminNotification) error

	// MarkScholarNotificationRead flips read=true iff the notification belongs
	// to receiverID. Re-marking is a no-op.
	MarkScholarNotificationRead(ctx context.Context, notificationID, receiverID string) error

	// MarkAdminNotificationRead adds readerID to the broadcast's reader set if absent.
	MarkAdminNotificationRead(ctx context.Context, notificationID, readerID string) error
}

// NotificationRepositoryFacade combines all notification repository interfaces.
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
