package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/utils"
)

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and resolves the caller into an actor reference on the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		actorID := claims.Subject
		role := domain.Role(claims.Role)
		if actorID == "" || role == "" {
			logger.Error("Actor ID or role missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		// Store the actor reference in the standard context
		ctxWithActor := context.WithValue(c.Request.Context(), actorIDKey, actorID)
		ctxWithActor = context.WithValue(ctxWithActor, actorRoleKey, role)

		// Add actor identity to the logger
		enrichedLogger := logger.With(slog.String("actor_id", actorID), slog.String("role", string(role)))

		// Store the *enriched* logger back into the standard context
		ctxWithLoggerAndActor := context.WithValue(ctxWithActor, loggerCtxKey, enrichedLogger)

		// Update the request context
		c.Request = c.Request.WithContext(ctxWithLoggerAndActor)

		c.Next()
	}
}
