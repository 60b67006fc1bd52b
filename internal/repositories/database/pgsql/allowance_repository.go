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

type PgxAllowanceRepository struct {
	BaseRepository
}

// newPgxAllowanceRepository creates a new repository for allowance data.
func newPgxAllowanceRepository(pool *pgxpool.Pool) portsrepo.AllowanceRepositoryFacade {
	return &PgxAllowanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAllowanceRepository implements portsrepo.AllowanceRepositoryFacade
var _ portsrepo.AllowanceRepositoryFacade = (*PgxAllowanceRepository)(nil)

const allowanceColumns = `allowance_id, scholar_id, month, year, total_amount, claimed, claimed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanAllowance(row pgx.Row) (*models.Allowance, error) {
	var m models.Allowance
	err := row.Scan(
		&m.AllowanceID,
		&m.ScholarID,
		&m.Month,
		&m.Year,
		&m.TotalAmount,
		&m.Claimed,
		&m.ClaimedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAllowance persists an allowance, its components and its audit record
// within one DB transaction. A failure anywhere leaves no trace: no
// allowance, no components, no ledger entry, no notification rows.
func (r *PgxAllowanceRepository) SaveAllowance(ctx context.Context, allowance domain.Allowance, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAllowance(allowance)
	allowanceQuery := `
		INSERT INTO allowances (allowance_id, scholar_id, month, year, total_amount, claimed, claimed_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, allowanceQuery,
		m.AllowanceID,
		m.ScholarID,
		m.Month,
		m.Year,
		m.TotalAmount,
		m.Claimed,
		m.ClaimedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "scholar "+m.ScholarID+" does not exist", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to insert allowance "+m.AllowanceID, err)
	}

	componentQuery := `
		INSERT INTO allowance_components (component_id, allowance_id, name, amount)
		VALUES ($1, $2, $3, $4);
	`
	batch := &pgx.Batch{}
	for _, c := range allowance.Components {
		mc := mapping.ToModelAllowanceComponent(c)
		batch.Queue(componentQuery, mc.ComponentID, mc.AllowanceID, mc.Name, mc.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert components for allowance "+m.AllowanceID, err)
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// MarkAllowanceClaimed flips the claimed flag for an unclaimed allowance and
// appends the audit record in the same transaction. The WHERE clause is the
// claim-once guard: a second claim matches no row and surfaces as ErrConflict.
func (r *PgxAllowanceRepository) MarkAllowanceClaimed(ctx context.Context, allowanceID string, claimedAt time.Time, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	claimQuery := `
		UPDATE allowances
		SET claimed = TRUE,
		    claimed_at = $2,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE allowance_id = $1 AND claimed = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, claimQuery, allowanceID, claimedAt, audit.ActorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to claim allowance "+allowanceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM allowances WHERE allowance_id = $1);`, allowanceID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check allowance "+allowanceID, err)
		}
		if !exists {
			return apperrors.NewNotFoundError("allowance " + allowanceID + " not found")
		}
		return apperrors.NewAppError(409, "allowance "+allowanceID+" already claimed", apperrors.ErrConflict)
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindAllowanceByID retrieves an allowance with its components.
func (r *PgxAllowanceRepository) FindAllowanceByID(ctx context.Context, allowanceID string) (*domain.Allowance, error) {
	query := `SELECT ` + allowanceColumns + ` FROM allowances WHERE allowance_id = $1;`
	m, err := scanAllowance(r.Pool.QueryRow(ctx, query, allowanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find allowance by ID "+allowanceID, err)
	}

	components, err := r.findComponents(ctx, allowanceID)
	if err != nil {
		return nil, err
	}

	allowance := mapping.ToDomainAllowance(*m)
	allowance.Components = components
	return &allowance, nil
}

func (r *PgxAllowanceRepository) findComponents(ctx context.Context, allowanceID string) ([]domain.AllowanceComponent, error) {
	query := `
		SELECT component_id, allowance_id, name, amount
		FROM allowance_components
		WHERE allowance_id = $1
		ORDER BY component_id;
	`
	rows, err := r.Pool.Query(ctx, query, allowanceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query components for allowance "+allowanceID, err)
	}
	defer rows.Close()

	components := []domain.AllowanceComponent{}
	for rows.Next() {
		var c models.AllowanceComponent
		if err := rows.Scan(&c.ComponentID, &c.AllowanceID, &c.Name, &c.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan component row for allowance "+allowanceID, err)
		}
		components = append(components, mapping.ToDomainAllowanceComponent(c))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating component rows for allowance "+allowanceID, err)
	}
	return components, nil
}

// ListAllowancesByScholar retrieves a paginated list of a scholar's allowances
// using token-based pagination. Components are not loaded for listings.
func (r *PgxAllowanceRepository) ListAllowancesByScholar(ctx context.Context, scholarID string, limit int, nextToken *string) ([]domain.Allowance, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + allowanceColumns + ` FROM allowances WHERE scholar_id = $1`
	orderByClause := `ORDER BY created_at DESC, allowance_id DESC`

	args := []interface{}{scholarID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (created_at, allowance_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query allowances for scholar "+scholarID, err)
	}
	defer rows.Close()

	modelAllowances := make([]models.Allowance, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanAllowance(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan allowance row for scholar "+scholarID, scanErr)
		}
		modelAllowances = append(modelAllowances, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating allowance rows for scholar "+scholarID, err)
	}

	var nextTokenVal *string
	results := modelAllowances
	if len(modelAllowances) > limit {
		last := modelAllowances[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.AllowanceID)
		nextTokenVal = &token
		results = modelAllowances[:limit]
	}

	allowances := make([]domain.Allowance, len(results))
	for i, m := range results {
		allowances[i] = mapping.ToDomainAllowance(m)
	}
	return allowances, nextTokenVal, nil
}
