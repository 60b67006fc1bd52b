package domain

import "time"

// Role classifies every actor known to the portal. STUDENT is synthetic:
// it is never granted through the admin console, it is implied by a scholar
// account.
type Role string

const (
	RoleSuperAdmin       Role = "SUPER_ADMIN"
	RoleManageDocuments  Role = "ADMIN_MANAGE_DOCUMENTS"
	RoleManageGatherings Role = "ADMIN_MANAGE_GATHERINGS"
	RoleViewer           Role = "ADMIN_VIEWER"
	RoleStudent          Role = "STUDENT"
)

// IsAdmin reports whether the role belongs to the admin console side of the portal.
func (r Role) IsAdmin() bool {
	return r != RoleStudent && r != ""
}

// ActorRef is the caller identity resolved at the transport boundary: who is
// acting and with which capability set. Services trust it and never re-derive
// identity.
type ActorRef struct {
	ActorID string
	Role    Role
}

// Actor is anyone who can act on the portal: scholars and admins alike.
// Identity and role resolution for a request happens at the transport
// boundary; the actor row is still read inside mutation transactions so the
// audit ledger can carry a display name that existed at commit time.
type Actor struct {
	ActorID      string  `json:"actorID"` // Primary Key (UUID)
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         Role    `json:"role"`
	Office       *string `json:"office,omitempty"` // Admin office scope, nil for scholars
	PasswordHash string  `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}
