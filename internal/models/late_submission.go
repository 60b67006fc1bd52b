package models

import "time"

// LateSubmissionRequest is the row shape for late_submission_requests.
// The table carries UNIQUE (scholar_id, month, year); the application treats
// a unique violation on insert as the authoritative duplicate signal.
type LateSubmissionRequest struct {
	RequestID  string     `db:"request_id"`
	ScholarID  string     `db:"scholar_id"`
	Month      int        `db:"month"`
	Year       int        `db:"year"`
	Reason     string     `db:"reason"`
	IsApproved *bool      `db:"is_approved"`
	DecidedBy  *string    `db:"decided_by"`
	DecidedAt  *time.Time `db:"decided_at"`
	OpenUntil  *time.Time `db:"open_until"`
	CreatedAt  time.Time  `db:"created_at"`
}
