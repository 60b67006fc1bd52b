package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	actorRepo := newPgxActorRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	allowanceRepo := newPgxAllowanceRepository(dbPool)
	announcementRepo := newPgxAnnouncementRepository(dbPool)
	scheduleRepo := newPgxScheduleRepository(dbPool)
	documentRepo := newPgxDocumentRepository(dbPool)
	lateSubmissionRepo := newPgxLateSubmissionRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ActorRepo:          actorRepo,
		AuditRepo:          auditRepo,
		AllowanceRepo:      allowanceRepo,
		AnnouncementRepo:   announcementRepo,
		ScheduleRepo:       scheduleRepo,
		DocumentRepo:       documentRepo,
		LateSubmissionRepo: lateSubmissionRepo,
		NotificationRepo:   notificationRepo,
	}
}
