package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// mustActor pulls the authenticated caller from the request context. A
// missing actor means the auth middleware did not run or the token carried
// no subject; either way the request is unauthenticated.
func mustActor(c *gin.Context) (domain.ActorRef, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return actor, ok
}

// respondError translates a service error into an HTTP response. AppError
// messages are safe to surface; anything unclassified becomes a 500 with the
// fallback text so internals never leak.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status := http.StatusInternalServerError
	message := fallback
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	} else if status != http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{Error: message})
}
