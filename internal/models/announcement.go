package models

// Announcement is the row shape for the announcements table.
type Announcement struct {
	AnnouncementID string `db:"announcement_id"`
	Title          string `db:"title"`
	Body           string `db:"body"`
	Pinned         bool   `db:"pinned"`
	AuditFields
}
