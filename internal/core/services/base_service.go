package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/middleware"
)

// newAuditRecord builds the ledger entry a mutation will carry into its
// storage transaction. The description is left empty; the repository fills it
// in once the actor's display name has been read inside the transaction.
func newAuditRecord(action domain.AuditAction, kind domain.EntityKind, entityID, actorID string) domain.AuditRecord {
	return domain.AuditRecord{
		AuditID:    uuid.NewString(),
		Action:     action,
		EntityKind: kind,
		EntityID:   entityID,
		ActorID:    actorID,
		CreatedAt:  time.Now(),
	}
}

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}
