package domain

import "time"

// LateSubmissionRequest asks for a closed submission window to be reopened
// for one (scholar, month, year). At most one request exists per triple,
// enforced by a unique index, not by a read-then-write check.
//
// IsApproved is nil while the request is pending. Once decided the outcome
// never flips; an approved request's OpenUntil may still be adjusted by an
// admin to move the reopened deadline.
type LateSubmissionRequest struct {
	RequestID  string     `json:"requestID"` // Primary Key (UUID)
	ScholarID  string     `json:"scholarID"` // FK -> actors.actor_id
	Month      int        `json:"month"`     // 1..12
	Year       int        `json:"year"`
	Reason     string     `json:"reason"`
	IsApproved *bool      `json:"isApproved"` // nil = pending
	DecidedBy  *string    `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	OpenUntil  *time.Time `json:"openUntil,omitempty"` // hard cutoff, end of day
	CreatedAt  time.Time  `json:"createdAt"`
}

// Decided reports whether the request has reached a terminal state.
func (r LateSubmissionRequest) Decided() bool {
	return r.IsApproved != nil
}

// EndOfDay normalizes a deadline to 23:59:59 of its calendar day in the
// given location, establishing the hard cutoff for late acceptance.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, 0, loc)
}
