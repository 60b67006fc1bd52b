package services

import (
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// AuthorizerSvc is the capability gate consulted before any mutation is
// attempted. It is a pure predicate over a static policy table: no I/O, no
// side effects. A deny means the whole operation is rejected before any
// write starts.
type AuthorizerSvc interface {
	// Authorize returns nil when the role may perform action on the entity
	// kind, apperrors.ErrForbidden otherwise.
	Authorize(role domain.Role, action domain.AuditAction, kind domain.EntityKind) error

	// CanRead reports whether the role may read the entity kind at all.
	CanRead(role domain.Role, kind domain.EntityKind) bool
}
