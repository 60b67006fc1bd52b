package domain

import "time"

// NotificationType tags a notification with the entity kind it talks about so
// clients can route the deep link.
type NotificationType string

const (
	NotifyAllowance      NotificationType = "ALLOWANCE"
	NotifyAnnouncement   NotificationType = "ANNOUNCEMENT"
	NotifyGathering      NotificationType = "GATHERING"
	NotifyMeeting        NotificationType = "MEETING"
	NotifyDocument       NotificationType = "DOCUMENT"
	NotifyLateSubmission NotificationType = "LATE_SUBMISSION"
)

// ScholarNotification is addressed to exactly one scholar and carries a
// single read flag.
type ScholarNotification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	ReceiverID     string           `json:"receiverID"`     // FK -> actors.actor_id
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Link           string           `json:"link,omitempty"`
	Read           bool             `json:"read"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// AdminNotification is one record shared by every admin its role filter
// matches. Read state is per reader: an admin has read it when their id is in
// ReaderIDs. A nil role, like RoleSuperAdmin, addresses every admin role.
type AdminNotification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	Role           *Role            `json:"role,omitempty"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Link           string           `json:"link,omitempty"`
	ReaderIDs      []string         `json:"readerIDs"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// VisibleTo reports whether an admin with the given role may see this
// broadcast. SUPER_ADMIN subscribers see everything; a nil or SUPER_ADMIN
// role field addresses all roles; otherwise the roles must match exactly.
func (n AdminNotification) VisibleTo(role Role) bool {
	if role == RoleSuperAdmin {
		return true
	}
	if n.Role == nil || *n.Role == RoleSuperAdmin {
		return true
	}
	return *n.Role == role
}

// ReadBy reports whether the given admin has acknowledged this broadcast.
func (n AdminNotification) ReadBy(readerID string) bool {
	for _, id := range n.ReaderIDs {
		if id == readerID {
			return true
		}
	}
	return false
}

// NotificationEvent is what the live broker carries: either a targeted
// scholar notification or a role-addressed admin broadcast, never both.
type NotificationEvent struct {
	Scholar *ScholarNotification `json:"scholar,omitempty"`
	Admin   *AdminNotification   `json:"admin,omitempty"`
}
