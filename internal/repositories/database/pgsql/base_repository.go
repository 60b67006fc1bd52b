package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// appendAuditInTx completes and inserts one ledger entry inside the caller's
// transaction. The actor row is read through the same tx so the description
// carries the display name that existed at commit time; a missing actor
// aborts the whole mutation. Ledger rows are append-only: there is no update
// or delete path anywhere in this package.
func (r *BaseRepository) appendAuditInTx(ctx context.Context, tx pgx.Tx, audit domain.AuditRecord) error {
	var actorName string
	err := tx.QueryRow(ctx, `SELECT name FROM actors WHERE actor_id = $1 AND deleted_at IS NULL;`, audit.ActorID).Scan(&actorName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAppError(409, "acting actor "+audit.ActorID+" not found", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to resolve actor for audit record", err)
	}

	audit.Description = domain.DescribeAudit(audit.Action, audit.EntityKind, actorName)

	auditQuery := `
		INSERT INTO audit_records (audit_id, action, entity_kind, entity_id, description, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, auditQuery,
		audit.AuditID,
		audit.Action,
		audit.EntityKind,
		audit.EntityID,
		audit.Description,
		audit.ActorID,
		audit.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit record "+audit.AuditID, err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a Postgres foreign key violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
