package domain

import "time"

// Gathering is a scheduled foundation event scholars are expected to attend.
type Gathering struct {
	GatheringID string    `json:"gatheringID"` // Primary Key (UUID)
	Title       string    `json:"title"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	AuditFields
}
