package services

import (
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/platform/broker"
	"github.com/scholarbase/scholarship_portal_api/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, bus *broker.Broker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The authorizer and the notification publisher come first; every domain
	// service consults the one and pushes through the other.
	container.Authorizer = NewAuthorizerService()
	container.Notification = NewNotificationService(repos.NotificationRepo, bus)

	container.Scholar = NewScholarService(repos.ActorRepo, container.Authorizer)
	container.Allowance = NewAllowanceService(repos.AllowanceRepo, container.Authorizer, container.Notification)
	container.Announcement = NewAnnouncementService(repos.AnnouncementRepo, repos.ActorRepo, container.Authorizer, container.Notification)
	container.Schedule = NewScheduleService(repos.ScheduleRepo, repos.ActorRepo, container.Authorizer, container.Notification)
	container.Document = NewDocumentService(repos.DocumentRepo, container.Authorizer, container.Notification)
	container.LateSubmission = NewLateSubmissionService(repos.LateSubmissionRepo, container.Notification)
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(repos.ActorRepo, container.Token)

	return container
}
