package domain

import "time"

// AuditFields holds the standard provenance columns embedded by every
// mutable domain entity. These are the entity's own bookkeeping; the
// ledger's AuditRecord is a separate, append-only trail.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // ActorID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // ActorID reference
}
