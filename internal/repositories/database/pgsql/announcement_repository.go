package pgsql

import (
	"context"
	"errors"
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

type PgxAnnouncementRepository struct {
	BaseRepository
}

// newPgxAnnouncementRepository creates a new repository for announcements.
func newPgxAnnouncementRepository(pool *pgxpool.Pool) portsrepo.AnnouncementRepositoryFacade {
	return &PgxAnnouncementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAnnouncementRepository implements portsrepo.AnnouncementRepositoryFacade
var _ portsrepo.AnnouncementRepositoryFacade = (*PgxAnnouncementRepository)(nil)

const announcementColumns = `announcement_id, title, body, pinned, created_at, created_by, last_updated_at, last_updated_by`

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var m models.Announcement
	err := row.Scan(
		&m.AnnouncementID,
		&m.Title,
		&m.Body,
		&m.Pinned,
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

// FindAnnouncementByID retrieves a single announcement.
func (r *PgxAnnouncementRepository) FindAnnouncementByID(ctx context.Context, announcementID string) (*domain.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE announcement_id = $1;`
	m, err := scanAnnouncement(r.Pool.QueryRow(ctx, query, announcementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find announcement by ID "+announcementID, err)
	}
	announcement := mapping.ToDomainAnnouncement(*m)
	return &announcement, nil
}

// ListAnnouncements retrieves a paginated, newest-first list. Pinned
// announcements are not hoisted here; ordering for display is a client concern.
func (r *PgxAnnouncementRepository) ListAnnouncements(ctx context.Context, limit int, nextToken *string) ([]domain.Announcement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + announcementColumns + ` FROM announcements`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` WHERE (created_at, announcement_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += ` ORDER BY created_at DESC, announcement_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query announcements", err)
	}
	defer rows.Close()

	modelAnnouncements := make([]models.Announcement, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanAnnouncement(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan announcement row", scanErr)
		}
		modelAnnouncements = append(modelAnnouncements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating announcement rows", err)
	}

	var nextTokenVal *string
	results := modelAnnouncements
	if len(modelAnnouncements) > limit {
		last := modelAnnouncements[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.AnnouncementID)
		nextTokenVal = &token
		results = modelAnnouncements[:limit]
	}

	announcements := make([]domain.Announcement, len(results))
	for i, m := range results {
		announcements[i] = mapping.ToDomainAnnouncement(m)
	}
	return announcements, nextTokenVal, nil
}

// SaveAnnouncement persists a new announcement and its audit record in one transaction.
func (r *PgxAnnouncementRepository) SaveAnnouncement(ctx context.Context, announcement domain.Announcement, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAnnouncement(announcement)
	insertQuery := `
		INSERT INTO announcements (announcement_id, title, body, pinned, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.AnnouncementID,
		m.Title,
		m.Body,
		m.Pinned,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert announcement "+m.AnnouncementID, err)
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateAnnouncement updates an announcement and appends the audit record in one transaction.
func (r *PgxAnnouncementRepository) UpdateAnnouncement(ctx context.Context, announcement domain.Announcement, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAnnouncement(announcement)
	updateQuery := `
		UPDATE announcements
		SET title = $2,
		    body = $3,
		    pinned = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE announcement_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		m.AnnouncementID,
		m.Title,
		m.Body,
		m.Pinned,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update announcement "+m.AnnouncementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("announcement " + m.AnnouncementID + " not found for update")
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteAnnouncement removes an announcement and appends the audit record in
// one transaction. The ledger entry outlives the row it describes.
func (r *PgxAnnouncementRepository) DeleteAnnouncement(ctx context.Context, announcementID string, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM announcements WHERE announcement_id = $1;`, announcementID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete announcement "+announcementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("announcement " + announcementID + " not found for delete")
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
