package pgsql

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	"github.com/scholarbase/scholarship_portal_api/internal/models"
	"github.com/scholarbase/scholarship_portal_api/internal/utils/mapping"
	"github.com/scholarbase/scholarship_portal_api/internal/utils/pagination"
)

// PgxAuditRepository is read-only over the ledger. Inserts happen exclusively
// through the entity repositories' transactions via appendAuditInTx.
type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new read-only repository over the audit ledger.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditColumns = `audit_id, action, entity_kind, entity_id, description, actor_id, created_at`

func scanAuditRecord(row pgx.Row) (*models.AuditRecord, error) {
	var m models.AuditRecord
	err := row.Scan(
		&m.AuditID,
		&m.Action,
		&m.EntityKind,
		&m.EntityID,
		&m.Description,
		&m.ActorID,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListAuditRecords retrieves a paginated, newest-first slice of the ledger.
func (r *PgxAuditRepository) ListAuditRecords(ctx context.Context, filter portsrepo.AuditListFilter, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + auditColumns + ` FROM audit_records WHERE 1=1`
	args := []interface{}{}
	if filter.EntityKind != "" {
		args = append(args, string(filter.EntityKind))
		query += ` AND entity_kind = $` + strconv.Itoa(len(args))
	}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		query += ` AND entity_id = $` + strconv.Itoa(len(args))
	}
	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += ` AND actor_id = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query += ` AND (created_at, audit_id) < ($` + strconv.Itoa(len(args))
		args = append(args, lastID)
		query += `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, audit_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit records", err)
	}
	defer rows.Close()

	modelRecords := make([]models.AuditRecord, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanAuditRecord(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit record row", scanErr)
		}
		modelRecords = append(modelRecords, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit record rows", err)
	}

	var nextTokenVal *string
	results := modelRecords
	if len(modelRecords) > limit {
		last := modelRecords[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.AuditID)
		nextTokenVal = &token
		results = modelRecords[:limit]
	}

	records := make([]domain.AuditRecord, len(results))
	for i, m := range results {
		records[i] = mapping.ToDomainAuditRecord(m)
	}
	return records, nextTokenVal, nil
}

// FindAuditByEntity retrieves all ledger entries referencing one entity, oldest first.
func (r *PgxAuditRepository) FindAuditByEntity(ctx context.Context, kind domain.EntityKind, entityID string) ([]domain.AuditRecord, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_records
		WHERE entity_kind = $1 AND entity_id = $2
		ORDER BY created_at, audit_id;
	`
	rows, err := r.Pool.Query(ctx, query, string(kind), entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit records for entity "+entityID, err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		m, scanErr := scanAuditRecord(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit record row for entity "+entityID, scanErr)
		}
		records = append(records, mapping.ToDomainAuditRecord(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit record rows for entity "+entityID, err)
	}
	return records, nil
}
