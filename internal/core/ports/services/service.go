package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Authorizer     AuthorizerSvc
	Scholar        ScholarSvcFacade
	Allowance      AllowanceSvcFacade
	Announcement   AnnouncementSvcFacade
	Schedule       ScheduleSvcFacade
	Document       DocumentSvcFacade
	LateSubmission LateSubmissionSvcFacade
	Notification   NotificationSvcFacade
	Audit          AuditSvcFacade
	Auth           AuthSvcFacade
	Token          TokenSvcFacade
}
