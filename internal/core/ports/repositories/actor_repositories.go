package repositories

import (
	"context"
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// ActorReader defines read operations for the actor directory.
type ActorReader interface {
	// FindActorByID retrieves a specific actor by their ID.
	FindActorByID(ctx context.Context, actorID string) (*domain.Actor, error)

	// FindActorByEmail retrieves an actor by login email.
	FindActorByEmail(ctx context.Context, email string) (*domain.Actor, error)

	// ListScholars retrieves a paginated list of scholar actors.
	ListScholars(ctx context.Context, limit int, nextToken *string) ([]domain.Actor, *string, error)

	// ListScholarIDs retrieves the ids of every active scholar, for fan-out targeting.
	ListScholarIDs(ctx context.Context) ([]string, error)
}

// ActorWriter defines write operations for actors. Scholar creation and
// profile updates are audited domain mutations: the audit record is appended
// inside the same transaction as the row write.
type ActorWriter interface {
	// SaveScholar persists a new scholar actor together with its audit record.
	SaveScholar(ctx context.Context, actor domain.Actor, audit domain.AuditRecord) error

	// UpdateScholar updates a scholar's profile together with its audit record.
	UpdateScholar(ctx context.Context, actor domain.Actor, audit domain.AuditRecord) error

	// MarkActorDeleted marks an actor as deleted (soft delete).
	MarkActorDeleted(ctx context.Context, actorID string, deletedAt time.Time, deletedBy string) error
}

// ActorRepositoryFacade combines all actor-related repository interfaces.
type ActorRepositoryFacade interface {
	ActorReader
	ActorWriter
}
