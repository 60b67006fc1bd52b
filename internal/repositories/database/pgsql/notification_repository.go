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

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for notification state.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const scholarNotificationColumns = `notification_id, receiver_id, type, title, message, link, read, created_at`
const adminNotificationColumns = `notification_id, role, type, title, message, link, created_at`

// visibleBroadcastClause filters admin_notifications rows down to the ones a
// role may see. SUPER_ADMIN subscribers see everything; a NULL or SUPER_ADMIN
// role column addresses all roles; otherwise the roles must match exactly.
// Mirrors domain.AdminNotification.VisibleTo.
func visibleBroadcastClause(role domain.Role, args []interface{}) (string, []interface{}) {
	if role == domain.RoleSuperAdmin {
		return ``, args
	}
	args = append(args, string(role))
	return ` AND (role IS NULL OR role = 'SUPER_ADMIN' OR role = $` + strconv.Itoa(len(args)) + `)`, args
}

// SaveScholarNotifications persists a batch of targeted notifications.
func (r *PgxNotificationRepository) SaveScholarNotifications(ctx context.Context, notifications []domain.ScholarNotification) error {
	if len(notifications) == 0 {
		return nil
	}
	query := `
		INSERT INTO scholar_notifications (notification_id, receiver_id, type, title, message, link, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, n := range notifications {
		m := mapping.ToModelScholarNotification(n)
		batch.Queue(query, m.NotificationID, m.ReceiverID, m.Type, m.Title, m.Message, m.Link, m.Read, m.CreatedAt)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert scholar notification batch", err)
	}
	return nil
}

// SaveAdminNotification persists one broadcast notification.
func (r *PgxNotificationRepository) SaveAdminNotification(ctx context.Context, notification domain.AdminNotification) error {
	m := mapping.ToModelAdminNotification(notification)
	query := `
		INSERT INTO admin_notifications (notification_id, role, type, title, message, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, m.NotificationID, m.Role, m.Type, m.Title, m.Message, m.Link, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert admin notification "+m.NotificationID, err)
	}
	return nil
}

// MarkScholarNotificationRead flips read to true iff the notification belongs
// to receiverID. Re-marking matches the row again and changes nothing, so the
// operation is idempotent without any state inspection.
func (r *PgxNotificationRepository) MarkScholarNotificationRead(ctx context.Context, notificationID, receiverID string) error {
	query := `
		UPDATE scholar_notifications
		SET read = TRUE
		WHERE notification_id = $1 AND receiver_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, notificationID, receiverID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark scholar notification read "+notificationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("notification " + notificationID + " not found for receiver")
	}
	return nil
}

// MarkAdminNotificationRead adds readerID to the broadcast's reader set. The
// join table's primary key plus ON CONFLICT DO NOTHING makes repeats
// structurally impossible to observe.
func (r *PgxNotificationRepository) MarkAdminNotificationRead(ctx context.Context, notificationID, readerID string) error {
	query := `
		INSERT INTO admin_notification_readers (notification_id, reader_id)
		VALUES ($1, $2)
		ON CONFLICT (notification_id, reader_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query, notificationID, readerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewNotFoundError("admin notification " + notificationID + " not found")
		}
		return apperrors.NewAppError(500, "failed to mark admin notification read "+notificationID, err)
	}
	return nil
}

// ListScholarNotifications retrieves a scholar's notifications, newest first.
func (r *PgxNotificationRepository) ListScholarNotifications(ctx context.Context, receiverID string, unreadOnly bool, limit int, nextToken *string) ([]domain.ScholarNotification, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + scholarNotificationColumns + ` FROM scholar_notifications WHERE receiver_id = $1`
	args := []interface{}{receiverID}
	if unreadOnly {
		query += ` AND read = FALSE`
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query += ` AND (created_at, notification_id) < ($` + strconv.Itoa(len(args))
		args = append(args, lastID)
		query += `, $` + strconv.Itoa(len(args)) + `)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, notification_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query notifications for scholar "+receiverID, err)
	}
	defer rows.Close()

	modelNotifications := make([]models.ScholarNotification, 0, fetchLimit)
	for rows.Next() {
		var m models.ScholarNotification
		scanErr := rows.Scan(&m.NotificationID, &m.ReceiverID, &m.Type, &m.Title, &m.Message, &m.Link, &m.Read, &m.CreatedAt)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan scholar notification row", scanErr)
		}
		modelNotifications = append(modelNotifications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating scholar notification rows", err)
	}

	var nextTokenVal *string
	results := modelNotifications
	if len(modelNotifications) > limit {
		last := modelNotifications[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.NotificationID)
		nextTokenVal = &token
		results = modelNotifications[:limit]
	}

	notifications := make([]domain.ScholarNotification, len(results))
	for i, m := range results {
		notifications[i] = mapping.ToDomainScholarNotification(m)
	}
	return notifications, nextTokenVal, nil
}

// ListAdminNotifications retrieves the broadcasts visible to the given role,
// newest first, with reader sets populated.
func (r *PgxNotificationRepository) ListAdminNotifications(ctx context.Context, role domain.Role, limit int, nextToken *string) ([]domain.AdminNotification, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + adminNotificationColumns + ` FROM admin_notifications WHERE 1=1`
	args := []interface{}{}
	var visibility string
	visibility, args = visibleBroadcastClause(role, args)
	query += visibility
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query += ` AND (created_at, notification_id) < ($` + strconv.Itoa(len(args))
		args = append(args, lastID)
		query += `, $` + strconv.Itoa(len(args)) + `)`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, notification_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query admin notifications", err)
	}
	defer rows.Close()

	modelNotifications := make([]models.AdminNotification, 0, fetchLimit)
	for rows.Next() {
		var m models.AdminNotification
		scanErr := rows.Scan(&m.NotificationID, &m.Role, &m.Type, &m.Title, &m.Message, &m.Link, &m.CreatedAt)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan admin notification row", scanErr)
		}
		modelNotifications = append(modelNotifications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating admin notification rows", err)
	}

	var nextTokenVal *string
	results := modelNotifications
	if len(modelNotifications) > limit {
		last := modelNotifications[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.NotificationID)
		nextTokenVal = &token
		results = modelNotifications[:limit]
	}

	notifications := make([]domain.AdminNotification, len(results))
	ids := make([]string, len(results))
	for i, m := range results {
		notifications[i] = mapping.ToDomainAdminNotification(m)
		ids[i] = m.NotificationID
	}

	readerSets, err := r.findReaderSets(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for i := range notifications {
		notifications[i].ReaderIDs = readerSets[notifications[i].NotificationID]
	}
	return notifications, nextTokenVal, nil
}

// findReaderSets loads the reader sets for a batch of broadcasts.
func (r *PgxNotificationRepository) findReaderSets(ctx context.Context, notificationIDs []string) (map[string][]string, error) {
	if len(notificationIDs) == 0 {
		return map[string][]string{}, nil
	}
	query := `
		SELECT notification_id, reader_id
		FROM admin_notification_readers
		WHERE notification_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, notificationIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query admin notification readers", err)
	}
	defer rows.Close()

	readerSets := make(map[string][]string)
	for rows.Next() {
		var notificationID, readerID string
		if err := rows.Scan(&notificationID, &readerID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan admin notification reader row", err)
		}
		readerSets[notificationID] = append(readerSets[notificationID], readerID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating admin notification reader rows", err)
	}
	return readerSets, nil
}

// FindAdminNotificationByID retrieves one broadcast with its reader set.
func (r *PgxNotificationRepository) FindAdminNotificationByID(ctx context.Context, notificationID string) (*domain.AdminNotification, error) {
	query := `SELECT ` + adminNotificationColumns + ` FROM admin_notifications WHERE notification_id = $1;`
	var m models.AdminNotification
	err := r.Pool.QueryRow(ctx, query, notificationID).Scan(&m.NotificationID, &m.Role, &m.Type, &m.Title, &m.Message, &m.Link, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find admin notification by ID "+notificationID, err)
	}

	readerSets, err := r.findReaderSets(ctx, []string{m.NotificationID})
	if err != nil {
		return nil, err
	}
	notification := mapping.ToDomainAdminNotification(m)
	notification.ReaderIDs = readerSets[m.NotificationID]
	return &notification, nil
}

// CountUnreadScholar counts a scholar's unread notifications.
func (r *PgxNotificationRepository) CountUnreadScholar(ctx context.Context, receiverID string) (int, error) {
	query := `SELECT COUNT(*) FROM scholar_notifications WHERE receiver_id = $1 AND read = FALSE;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, receiverID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unread notifications for scholar "+receiverID, err)
	}
	return count, nil
}

// CountUnreadAdmin counts broadcasts visible to role that readerID has not acknowledged.
func (r *PgxNotificationRepository) CountUnreadAdmin(ctx context.Context, role domain.Role, readerID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM admin_notifications n
		WHERE NOT EXISTS (
			SELECT 1 FROM admin_notification_readers r
			WHERE r.notification_id = n.notification_id AND r.reader_id = $1
		)
	`
	args := []interface{}{readerID}
	if role != domain.RoleSuperAdmin {
		args = append(args, string(role))
		query += ` AND (n.role IS NULL OR n.role = 'SUPER_ADMIN' OR n.role = $` + strconv.Itoa(len(args)) + `)`
	}
	query += `;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unread admin notifications for "+readerID, err)
	}
	return count, nil
}
