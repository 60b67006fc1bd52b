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

// PgxScheduleRepository serves both gatherings and meetings; the two tables
// share one repository because the manage-gatherings role treats them as one
// calendar.
type PgxScheduleRepository struct {
	BaseRepository
}

// newPgxScheduleRepository creates a new repository for gatherings and meetings.
func newPgxScheduleRepository(pool *pgxpool.Pool) portsrepo.ScheduleRepositoryFacade {
	return &PgxScheduleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxScheduleRepository implements portsrepo.ScheduleRepositoryFacade
var _ portsrepo.ScheduleRepositoryFacade = (*PgxScheduleRepository)(nil)

const gatheringColumns = `gathering_id, title, venue, starts_at, ends_at, created_at, created_by, last_updated_at, last_updated_by`
const meetingColumns = `meeting_id, title, agenda, scheduled_at, location, created_at, created_by, last_updated_at, last_updated_by`

// FindGatheringByID retrieves a single gathering.
func (r *PgxScheduleRepository) FindGatheringByID(ctx context.Context, gatheringID string) (*domain.Gathering, error) {
	query := `SELECT ` + gatheringColumns + ` FROM gatherings WHERE gathering_id = $1;`
	var m models.Gathering
	err := r.Pool.QueryRow(ctx, query, gatheringID).Scan(
		&m.GatheringID,
		&m.Title,
		&m.Venue,
		&m.StartsAt,
		&m.EndsAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find gathering by ID "+gatheringID, err)
	}
	gathering := mapping.ToDomainGathering(m)
	return &gathering, nil
}

// ListGatherings retrieves a paginated, newest-first list of gatherings.
func (r *PgxScheduleRepository) ListGatherings(ctx context.Context, limit int, nextToken *string) ([]domain.Gathering, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + gatheringColumns + ` FROM gatherings`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` WHERE (created_at, gathering_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += ` ORDER BY created_at DESC, gathering_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query gatherings", err)
	}
	defer rows.Close()

	modelGatherings := make([]models.Gathering, 0, fetchLimit)
	for rows.Next() {
		var m models.Gathering
		scanErr := rows.Scan(
			&m.GatheringID,
			&m.Title,
			&m.Venue,
			&m.StartsAt,
			&m.EndsAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan gathering row", scanErr)
		}
		modelGatherings = append(modelGatherings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating gathering rows", err)
	}

	var nextTokenVal *string
	results := modelGatherings
	if len(modelGatherings) > limit {
		last := modelGatherings[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.GatheringID)
		nextTokenVal = &token
		results = modelGatherings[:limit]
	}

	gatherings := make([]domain.Gathering, len(results))
	for i, m := range results {
		gatherings[i] = mapping.ToDomainGathering(m)
	}
	return gatherings, nextTokenVal, nil
}

// UpsertGathering inserts or replaces the gathering row and appends the audit
// record in one transaction. ON CONFLICT keeps create and reschedule on a
// single code path.
func (r *PgxScheduleRepository) UpsertGathering(ctx context.Context, gathering domain.Gathering, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelGathering(gathering)
	upsertQuery := `
		INSERT INTO gatherings (gathering_id, title, venue, starts_at, ends_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (gathering_id) DO UPDATE
		SET title = EXCLUDED.title,
		    venue = EXCLUDED.venue,
		    starts_at = EXCLUDED.starts_at,
		    ends_at = EXCLUDED.ends_at,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, upsertQuery,
		m.GatheringID,
		m.Title,
		m.Venue,
		m.StartsAt,
		m.EndsAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert gathering "+m.GatheringID, err)
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteGathering removes a gathering and appends the audit record in one transaction.
func (r *PgxScheduleRepository) DeleteGathering(ctx context.Context, gatheringID string, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM gatherings WHERE gathering_id = $1;`, gatheringID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete gathering "+gatheringID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("gathering " + gatheringID + " not found for delete")
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindMeetingByID retrieves a single meeting.
func (r *PgxScheduleRepository) FindMeetingByID(ctx context.Context, meetingID string) (*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE meeting_id = $1;`
	var m models.Meeting
	err := r.Pool.QueryRow(ctx, query, meetingID).Scan(
		&m.MeetingID,
		&m.Title,
		&m.Agenda,
		&m.ScheduledAt,
		&m.Location,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find meeting by ID "+meetingID, err)
	}
	meeting := mapping.ToDomainMeeting(m)
	return &meeting, nil
}

// ListMeetings retrieves a paginated, newest-first list of meetings.
func (r *PgxScheduleRepository) ListMeetings(ctx context.Context, limit int, nextToken *string) ([]domain.Meeting, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + meetingColumns + ` FROM meetings`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` WHERE (created_at, meeting_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += ` ORDER BY created_at DESC, meeting_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query meetings", err)
	}
	defer rows.Close()

	modelMeetings := make([]models.Meeting, 0, fetchLimit)
	for rows.Next() {
		var m models.Meeting
		scanErr := rows.Scan(
			&m.MeetingID,
			&m.Title,
			&m.Agenda,
			&m.ScheduledAt,
			&m.Location,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan meeting row", scanErr)
		}
		modelMeetings = append(modelMeetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating meeting rows", err)
	}

	var nextTokenVal *string
	results := modelMeetings
	if len(modelMeetings) > limit {
		last := modelMeetings[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MeetingID)
		nextTokenVal = &token
		results = modelMeetings[:limit]
	}

	meetings := make([]domain.Meeting, len(results))
	for i, m := range results {
		meetings[i] = mapping.ToDomainMeeting(m)
	}
	return meetings, nextTokenVal, nil
}

// UpsertMeeting inserts or replaces the meeting row and appends the audit
// record in one transaction.
func (r *PgxScheduleRepository) UpsertMeeting(ctx context.Context, meeting domain.Meeting, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelMeeting(meeting)
	upsertQuery := `
		INSERT INTO meetings (meeting_id, title, agenda, scheduled_at, location, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (meeting_id) DO UPDATE
		SET title = EXCLUDED.title,
		    agenda = EXCLUDED.agenda,
		    scheduled_at = EXCLUDED.scheduled_at,
		    location = EXCLUDED.location,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, upsertQuery,
		m.MeetingID,
		m.Title,
		m.Agenda,
		m.ScheduledAt,
		m.Location,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert meeting "+m.MeetingID, err)
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteMeeting removes a meeting and appends the audit record in one transaction.
func (r *PgxScheduleRepository) DeleteMeeting(ctx context.Context, meetingID string, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM meetings WHERE meeting_id = $1;`, meetingID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete meeting "+meetingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("meeting " + meetingID + " not found for delete")
	}

	if err := r.appendAuditInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
