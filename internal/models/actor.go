package models

import "time"

// Actor is the row shape for the actors table: scholars and admin staff alike.
type Actor struct {
	ActorID      string  `db:"actor_id"`
	Name         string  `db:"name"`
	Email        string  `db:"email"`
	Role         string  `db:"role"`
	Office       *string `db:"office"`
	PasswordHash string  `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"` // Soft delete
}
