package models

import "time"

// ScholarNotification is the row shape for scholar_notifications.
type ScholarNotification struct {
	NotificationID string    `db:"notification_id"`
	ReceiverID     string    `db:"receiver_id"`
	Type           string    `db:"type"`
	Title          string    `db:"title"`
	Message        string    `db:"message"`
	Link           string    `db:"link"`
	Read           bool      `db:"read"`
	CreatedAt      time.Time `db:"created_at"`
}

// AdminNotification is the row shape for admin_notifications. The reader set
// lives in the admin_notification_readers join table keyed by
// (notification_id, reader_id), which is what makes markRead idempotent at
// the storage layer.
type AdminNotification struct {
	NotificationID string    `db:"notification_id"`
	Role           *string   `db:"role"`
	Type           string    `db:"type"`
	Title          string    `db:"title"`
	Message        string    `db:"message"`
	Link           string    `db:"link"`
	CreatedAt      time.Time `db:"created_at"`
}
