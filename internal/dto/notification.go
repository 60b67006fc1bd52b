package dto

import (
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// NotificationResponse is the unified shape for both targeted and broadcast
// notifications. Read is resolved for the calling actor: the single flag for
// scholars, membership in the reader set for admins.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	Type           domain.NotificationType `json:"type"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	Link           string                  `json:"link,omitempty"`
	Read           bool                    `json:"read"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ListNotificationsResponse wraps a paginated notification listing.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// UnreadCountResponse carries the unread badge count for the caller.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// ToScholarNotificationResponse converts a targeted notification.
func ToScholarNotificationResponse(n *domain.ScholarNotification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		Link:           n.Link,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

// ToAdminNotificationResponse converts a broadcast, resolving read state for
// the given reader.
func ToAdminNotificationResponse(n *domain.AdminNotification, readerID string) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		Link:           n.Link,
		Read:           n.ReadBy(readerID),
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationEventResponse converts a broker event for the subscribed
// actor. Live events are always unread for the receiver.
func ToNotificationEventResponse(ev domain.NotificationEvent) NotificationResponse {
	if ev.Scholar != nil {
		return ToScholarNotificationResponse(ev.Scholar)
	}
	return ToAdminNotificationResponse(ev.Admin, "")
}
