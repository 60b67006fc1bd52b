package models

import "time"

// Gathering is the row shape for the gatherings table.
type Gathering struct {
	GatheringID string    `db:"gathering_id"`
	Title       string    `db:"title"`
	Venue       string    `db:"venue"`
	StartsAt    time.Time `db:"starts_at"`
	EndsAt      time.Time `db:"ends_at"`
	AuditFields
}

// Meeting is the row shape for the meetings table.
type Meeting struct {
	MeetingID   string    `db:"meeting_id"`
	Title       string    `db:"title"`
	Agenda      string    `db:"agenda"`
	ScheduledAt time.Time `db:"scheduled_at"`
	Location    string    `db:"location"`
	AuditFields
}
