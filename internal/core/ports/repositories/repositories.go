package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ActorRepo          ActorRepositoryFacade
	AuditRepo          AuditRepositoryFacade
	AllowanceRepo      AllowanceRepositoryFacade
	AnnouncementRepo   AnnouncementRepositoryFacade
	ScheduleRepo       ScheduleRepositoryFacade
	DocumentRepo       DocumentRepositoryFacade
	LateSubmissionRepo LateSubmissionRepositoryFacade
	NotificationRepo   NotificationRepositoryFacade
}
