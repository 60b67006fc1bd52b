package services

import (
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
)

// writeScopes maps each managing admin role to the entity kinds it may
// mutate. SUPER_ADMIN bypasses the table; ADMIN_VIEWER and STUDENT never
// appear in it because they hold no table-granted write capability at all.
// Student self-service mutations (claiming an allowance, uploading a
// document) run through ownership checks in the domain services instead.
var writeScopes = map[domain.Role]map[domain.EntityKind]bool{
	domain.RoleManageDocuments: {
		domain.KindDocument:  true,
		domain.KindAllowance: true,
		domain.KindScholar:   true,
	},
	domain.RoleManageGatherings: {
		domain.KindMeeting:      true,
		domain.KindGathering:    true,
		domain.KindAnnouncement: true,
	},
}

// studentReadable lists the entity kinds a scholar may read at all. Reads of
// ALLOWANCE and DOCUMENT are further narrowed to owned rows by the services;
// the scholar directory is not student-readable in any form.
var studentReadable = map[domain.EntityKind]bool{
	domain.KindAllowance:    true,
	domain.KindDocument:     true,
	domain.KindAnnouncement: true,
	domain.KindGathering:    true,
	domain.KindMeeting:      true,
}

type authorizerService struct{}

// NewAuthorizerService creates the static capability gate. It is a pure
// predicate: no I/O, no state, safe to share across requests.
func NewAuthorizerService() portssvc.AuthorizerSvc {
	return &authorizerService{}
}

var _ portssvc.AuthorizerSvc = (*authorizerService)(nil)

// Authorize returns nil when the role may perform action on the entity kind,
// apperrors.ErrForbidden otherwise. The action parameter exists for symmetry
// with the ledger; today every granted scope covers all mutating actions.
func (s *authorizerService) Authorize(role domain.Role, action domain.AuditAction, kind domain.EntityKind) error {
	if role == domain.RoleSuperAdmin {
		return nil
	}
	if scope, ok := writeScopes[role]; ok && scope[kind] {
		return nil
	}
	return apperrors.ErrForbidden
}

// CanRead reports whether the role may read the entity kind at all.
func (s *authorizerService) CanRead(role domain.Role, kind domain.EntityKind) bool {
	if role.IsAdmin() {
		return true
	}
	if role == domain.RoleStudent {
		return studentReadable[kind]
	}
	return false
}
