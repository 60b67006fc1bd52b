package mapping

import (
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
)

// ToModelScholarNotification converts a targeted notification to its row shape
func ToModelScholarNotification(d domain.ScholarNotification) models.ScholarNotification {
	return models.ScholarNotification{
		NotificationID: d.NotificationID,
		ReceiverID:     d.ReceiverID,
		Type:           string(d.Type),
		Title:          d.Title,
		Message:        d.Message,
		Link:           d.Link,
		Read:           d.Read,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainScholarNotification converts a row shape to its domain form
func ToDomainScholarNotification(m models.ScholarNotification) domain.ScholarNotification {
	return domain.ScholarNotification{
		NotificationID: m.NotificationID,
		ReceiverID:     m.ReceiverID,
		Type:           domain.NotificationType(m.Type),
		Title:          m.Title,
		Message:        m.Message,
		Link:           m.Link,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

// ToModelAdminNotification converts a broadcast to its row shape. The reader
// set is not part of the row; it lives in the join table.
func ToModelAdminNotification(d domain.AdminNotification) models.AdminNotification {
	var role *string
	if d.Role != nil {
		s := string(*d.Role)
		role = &s
	}
	return models.AdminNotification{
		NotificationID: d.NotificationID,
		Role:           role,
		Type:           string(d.Type),
		Title:          d.Title,
		Message:        d.Message,
		Link:           d.Link,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainAdminNotification converts a row shape to its domain form. ReaderIDs
// must be attached by the caller from the join table.
func ToDomainAdminNotification(m models.AdminNotification) domain.AdminNotification {
	var role *domain.Role
	if m.Role != nil {
		r := domain.Role(*m.Role)
		role = &r
	}
	return domain.AdminNotification{
		NotificationID: m.NotificationID,
		Role:           role,
		Type:           domain.NotificationType(m.Type),
		Title:          m.Title,
		Message:        m.Message,
		Link:           m.Link,
		CreatedAt:      m.CreatedAt,
	}
}
