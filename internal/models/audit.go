package models

import "time"

// AuditRecord is the row shape for the append-only audit_records table.
// Rows are inserted inside the mutating transaction and never touched again.
type AuditRecord struct {
	AuditID     string    `db:"audit_id"`
	Action      string    `db:"action"`
	EntityKind  string    `db:"entity_kind"`
	EntityID    string    `db:"entity_id"`
	Description string    `db:"description"`
	ActorID     string    `db:"actor_id"`
	CreatedAt   time.Time `db:"created_at"`
}
