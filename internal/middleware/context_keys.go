package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// actorIDKey and actorRoleKey store the authenticated caller's identity in
// the request context. Using a custom type prevents collisions.
const actorIDKey = contextKey("actorID")
const actorRoleKey = contextKey("actorRole")

// GetActorFromContext retrieves the authenticated actor reference from the
// Gin context. It returns the reference and a boolean indicating if it was
// found. Handlers pass the reference down; services never re-derive identity.
func GetActorFromContext(c *gin.Context) (domain.ActorRef, bool) {
	idVal := c.Request.Context().Value(actorIDKey)
	roleVal := c.Request.Context().Value(actorRoleKey)
	if idVal == nil || roleVal == nil {
		return domain.ActorRef{}, false
	}

	actorID, okID := idVal.(string)
	role, okRole := roleVal.(domain.Role)
	if !okID || !okRole {
		// This should not happen if the auth middleware sets it correctly.
		return domain.ActorRef{}, false
	}

	return domain.ActorRef{ActorID: actorID, Role: role}, true
}
