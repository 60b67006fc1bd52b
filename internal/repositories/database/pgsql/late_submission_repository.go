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

type PgxLateSubmissionRepository struct {
	BaseRepository
}

// newPgxLateSubmissionRepository creates a new repository for late-submission requests.
func newPgxLateSubmissionRepository(pool *pgxpool.Pool) portsrepo.LateSubmissionRepositoryFacade {
	return &PgxLateSubmissionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLateSubmissionRepository implements portsrepo.LateSubmissionRepositoryFacade
var _ portsrepo.LateSubmissionRepositoryFacade = (*PgxLateSubmissionRepository)(nil)

const lateSubmissionColumns = `request_id, scholar_id, month, year, reason, is_approved, decided_by, decided_at, open_until, created_at`

func scanLateSubmission(row pgx.Row) (*models.LateSubmissionRequest, error) {
	var m models.LateSubmissionRequest
	err := row.Scan(
		&m.RequestID,
		&m.ScholarID,
		&m.Month,
		&m.Year,
		&m.Reason,
		&m.IsApproved,
		&m.DecidedBy,
		&m.DecidedAt,
		&m.OpenUntil,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateRequest inserts a new pending request. The UNIQUE (scholar_id, month,
// year) index is the duplicate guard: two concurrent submissions race to the
// same insert and exactly one wins, regardless of any pre-check the service
// ran.
func (r *PgxLateSubmissionRepository) CreateRequest(ctx context.Context, request domain.LateSubmissionRequest) error {
	m := mapping.ToModelLateSubmissionRequest(request)
	query := `
		INSERT INTO late_submission_requests (request_id, scholar_id, month, year, reason, is_approved, decided_by, decided_at, open_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.ScholarID,
		m.Month,
		m.Year,
		m.Reason,
		m.IsApproved,
		m.DecidedBy,
		m.DecidedAt,
		m.OpenUntil,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "late submission request already exists for this period", apperrors.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(409, "scholar "+m.ScholarID+" does not exist", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to insert late submission request "+m.RequestID, err)
	}
	return nil
}

// DecideRequest records the decision on a pending request. The is_approved IS
// NULL guard makes the decision single-shot at the storage layer.
func (r *PgxLateSubmissionRepository) DecideRequest(ctx context.Context, requestID string, approve bool, decidedBy string, decidedAt time.Time, openUntil *time.Time) error {
	query := `
		UPDATE late_submission_requests
		SET is_approved = $2,
		    decided_by = $3,
		    decided_at = $4,
		    open_until = $5
		WHERE request_id = $1 AND is_approved IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, requestID, approve, decidedBy, decidedAt, openUntil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to decide late submission request "+requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM late_submission_requests WHERE request_id = $1);`, requestID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check late submission request "+requestID, err)
		}
		if !exists {
			return apperrors.NewNotFoundError("late submission request " + requestID + " not found")
		}
		return apperrors.NewAppError(409, "late submission request "+requestID+" already decided", apperrors.ErrConflict)
	}
	return nil
}

// UpdateOpenUntil adjusts the reopened deadline of an approved request.
// A nil openUntil stores NULL, clearing the deadline.
func (r *PgxLateSubmissionRepository) UpdateOpenUntil(ctx context.Context, requestID string, openUntil *time.Time) error {
	query := `
		UPDATE late_submission_requests
		SET open_until = $2
		WHERE request_id = $1 AND is_approved = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, requestID, openUntil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update open_until for request "+requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM late_submission_requests WHERE request_id = $1);`, requestID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check late submission request "+requestID, err)
		}
		if !exists {
			return apperrors.NewNotFoundError("late submission request " + requestID + " not found")
		}
		return apperrors.NewAppError(409, "late submission request "+requestID+" is not approved", apperrors.ErrConflict)
	}
	return nil
}

// FindRequestByID retrieves a single request.
func (r *PgxLateSubmissionRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.LateSubmissionRequest, error) {
	query := `SELECT ` + lateSubmissionColumns + ` FROM late_submission_requests WHERE request_id = $1;`
	m, err := scanLateSubmission(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find late submission request by ID "+requestID, err)
	}
	request := mapping.ToDomainLateSubmissionRequest(*m)
	return &request, nil
}

// FindRequestByPeriod retrieves the request for one (scholar, month, year) triple, if any.
func (r *PgxLateSubmissionRepository) FindRequestByPeriod(ctx context.Context, scholarID string, month, year int) (*domain.LateSubmissionRequest, error) {
	query := `SELECT ` + lateSubmissionColumns + ` FROM late_submission_requests WHERE scholar_id = $1 AND month = $2 AND year = $3;`
	m, err := scanLateSubmission(r.Pool.QueryRow(ctx, query, scholarID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find late submission request by period", err)
	}
	request := mapping.ToDomainLateSubmissionRequest(*m)
	return &request, nil
}

// ListRequests retrieves requests newest first, optionally only the undecided ones.
func (r *PgxLateSubmissionRepository) ListRequests(ctx context.Context, pendingOnly bool, limit int, nextToken *string) ([]domain.LateSubmissionRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + lateSubmissionColumns + ` FROM late_submission_requests WHERE 1=1`
	args := []interface{}{}
	if pendingOnly {
		query += ` AND is_approved IS NULL`
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query += ` AND (created_at, request_id) < ($` + strconv.Itoa(len(args))
		args = append(args, lastID)
		query += `, $` + strconv.Itoa(len(args)) + `)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, request_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query late submission requests", err)
	}
	defer rows.Close()

	modelRequests := make([]models.LateSubmissionRequest, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanLateSubmission(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan late submission request row", scanErr)
		}
		modelRequests = append(modelRequests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating late submission request rows", err)
	}

	var nextTokenVal *string
	results := modelRequests
	if len(modelRequests) > limit {
		last := modelRequests[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RequestID)
		nextTokenVal = &token
		results = modelRequests[:limit]
	}

	requests := make([]domain.LateSubmissionRequest, len(results))
	for i, m := range results {
		requests[i] = mapping.ToDomainLateSubmissionRequest(m)
	}
	return requests, nextTokenVal, nil
}

// ListRequestsByScholar retrieves one scholar's requests, newest first.
func (r *PgxLateSubmissionRepository) ListRequestsByScholar(ctx context.Context, scholarID string) ([]domain.LateSubmissionRequest, error) {
	query := `
		SELECT ` + lateSubmissionColumns + `
		FROM late_submission_requests
		WHERE scholar_id = $1
		ORDER BY created_at DESC, request_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, scholarID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query late submission requests for scholar "+scholarID, err)
	}
	defer rows.Close()

	requests := []domain.LateSubmissionRequest{}
	for rows.Next() {
		m, scanErr := scanLateSubmission(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan late submission request row for scholar "+scholarID, scanErr)
		}
		requests = append(requests, mapping.ToDomainLateSubmissionRequest(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating late submission request rows for scholar "+scholarID, err)
	}
	return requests, nil
}
