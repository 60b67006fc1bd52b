package domain

import "time"

// Meeting is a smaller, agenda-driven session, typically between office staff
// and a cohort of scholars.
type Meeting struct {
	MeetingID   string    `json:"meetingID"` // Primary Key (UUID)
	Title       string    `json:"title"`
	Agenda      string    `json:"agenda"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Location    string    `json:"location"`
	AuditFields
}
