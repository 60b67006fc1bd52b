package domain

// Announcement is a portal-wide notice authored by an admin.
type Announcement struct {
	AnnouncementID string `json:"announcementID"` // Primary Key (UUID)
	Title          string `json:"title"`
	Body           string `json:"body"`
	Pinned         bool   `json:"pinned"`
	AuditFields
}
