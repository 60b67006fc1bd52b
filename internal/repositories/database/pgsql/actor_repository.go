package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
	"github.com/scholarbase/scholarship_portal_api/internal/utils/mapping"
	"github.com/scholarbase/scholarship_portal_api/internal/utils/pagination"
)

type PgxActorRepository struct {
	BaseRepository
}

// newPgxActorRepository creates a new repository for the actor directory.
func newPgxActorRepository(pool *pgxpool.Pool) portsrepo.ActorRepositoryFacade {
	return &PgxActorRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxActorRepository implements portsrepo.ActorRepositoryFacade
var _ portsrepo.ActorRepositoryFacade = (*PgxActorRepository)(nil)

const actorColumns = `actor_id, name, email, role, office, password_hash, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanActor(row pgx.Row) (*models.Actor, error) {
	var m models.Actor
	err := row.Scan(
		&m.ActorID,
		&m.Name,
		&m.Email,
		&m.Role,
		&m.Office,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindActorByID retrieves an actor by ID. Soft-deleted actors are invisible.
func (r *PgxActorRepository) FindActorByID(ctx context.Context, actorID string) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE actor_id = $1 AND deleted_at IS NULL;`
	m, err := scanActor(r.Pool.QueryRow(ctx, query, actorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find actor by ID "+actorID, err)
	}
	actor := mapping.ToDomainActor(*m)
	return &actor, nil
}

// FindActorByEmail retrieves an actor by login email.
func (r *PgxActorRepository) FindActorByEmail(ctx context.Context, email string) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE email = $1 AND deleted_at IS NULL;`
	m, err := scanActor(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find actor by email", err)
	}
	actor := mapping.ToDomainActor(*m)
	return &actor, nil
}

// ListScholars retrieves a paginated list of scholar actors using token-based pagination.
func (r *PgxActorRepository) ListScholars(ctx context.Context, limit int, nextToken *string) ([]domain.Actor, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + actorColumns + ` FROM actors WHERE role = $1 AND deleted_at IS NULL`
	orderByClause := `ORDER BY created_at DESC, actor_id DESC`

	args := []interface{}{string(domain.RoleStudent)}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (created_at, actor_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query scholars", err)
	}
	defer rows.Close()

	modelActors := make([]models.Actor, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanActor(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan scholar row", scanErr)
		}
		modelActors = append(modelActors, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating scholar rows", err)
	}

	var nextTokenVal *string
	results := modelActors
	if len(modelActors) > limit {
		last := modelActors[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ActorID)
		nextTokenVal = &token
		results = modelActors[:limit]
	}

	scholars := make([]domain.Actor, len(results))
	for i, m := range results {
		scholars[i] = mapping.ToDomainActor(m)
	}
	return scholars, nextTokenVal, nil
}

// ListScholarIDs retrieves the ids of every active scholar, for fan-out targeting.
func (r *PgxActorRepository) ListScholarIDs(ctx context.Context) ([]string, error) {
	query := `SELECT actor_id FROM actors WHERE role = $1 AND deleted_at IS NULL;`
	rows, err := r.Pool.Query(ctx, query, string(domain.RoleStudent))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query scholar ids", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan scholar id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating scholar id rows", err)
	}
	return ids, nil
}

// SaveScholar persists a new scholar actor and its audit record in one transaction.
func (r *PgxActorRepository) SaveScholar(ctx context.Context, actor domain.Actor, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelActor(actor)
	insertQuery := `
		INSERT INTO actors (actor_id, name, email, role, office, password_hash, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.ActorID,
		m.Name,
		m.Email,
		m.Role,
		m.Office,
		m.PasswordHash,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "actor with this email already exists", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to insert actor "+m.ActorID, err)
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateScholar updates a scholar's profile and appends the audit record in one transaction.
func (r *PgxActorRepository) UpdateScholar(ctx context.Context, actor domain.Actor, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelActor(actor)
	updateQuery := `
		UPDATE actors
		SET name = $2,
		    email = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE actor_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		m.ActorID,
		m.Name,
		m.Email,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "actor with this email already exists", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to update actor "+m.ActorID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("actor " + m.ActorID + " not found for update")
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// MarkActorDeleted marks an actor as deleted (soft delete).
func (r *PgxActorRepository) MarkActorDeleted(ctx context.Context, actorID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE actors
		SET deleted_at = $2,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE actor_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, actorID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark actor deleted "+actorID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("actor " + actorID + " not found for delete")
	}
	return nil
}
