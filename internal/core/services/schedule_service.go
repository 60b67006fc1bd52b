package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/scholarbase/scholarship_portal_api/internal/apperrors"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

type scheduleService struct {
	BaseService
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	actorRepo    portsrepo.ActorReader
	authorizer   portssvc.AuthorizerSvc
	notifier     portssvc.NotificationPublisherSvc
}

// NewScheduleService creates a new schedule service covering gatherings and meetings.
func NewScheduleService(scheduleRepo portsrepo.ScheduleRepositoryFacade, actorRepo portsrepo.ActorReader, authorizer portssvc.AuthorizerSvc, notifier portssvc.NotificationPublisherSvc) portssvc.ScheduleSvcFacade {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		actorRepo:    actorRepo,
		authorizer:   authorizer,
		notifier:     notifier,
	}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// UpsertGathering creates a gathering when the request carries no id and
// replaces the existing one otherwise. The audit action records which of the
// two actually happened.
func (s *scheduleService) UpsertGathering(ctx context.Context, actor domain.ActorRef, req dto.UpsertGatheringRequest) (*domain.Gathering, error) {
	action := domain.ActionCreate
	if req.GatheringID != nil {
		action = domain.ActionUpdate
	}
	if err := s.authorizer.Authorize(actor.Role, action, domain.KindGathering); err != nil {
		return nil, err
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.NewAppError(400, "gathering must end after it starts", apperrors.ErrValidation)
	}

	now := time.Now()
	var gathering domain.Gathering
	if req.GatheringID == nil {
		gathering = domain.Gathering{
			GatheringID: uuid.NewString(),
			Title:       req.Title,
			Venue:       req.Venue,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.ActorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.ActorID,
			},
		}
	} else {
		existing, err := s.scheduleRepo.FindGatheringByID(ctx, *req.GatheringID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to find gathering for upsert", slog.String("gathering_id", *req.GatheringID))
			}
			return nil, err
		}
		gathering = *existing
		gathering.Title = req.Title
		gathering.Venue = req.Venue
		gathering.StartsAt = req.StartsAt
		gathering.EndsAt = req.EndsAt
		gathering.LastUpdatedAt = now
		gathering.LastUpdatedBy = actor.ActorID
	}

	audit := newAuditRecord(action, domain.KindGathering, gathering.GatheringID, actor.ActorID)
	if err := s.scheduleRepo.UpsertGathering(ctx, gathering, audit); err != nil {
		s.LogError(ctx, err, "Failed to upsert gathering", slog.String("gathering_id", gathering.GatheringID))
		return nil, err
	}

	s.LogInfo(ctx, "Gathering saved", slog.String("gathering_id", gathering.GatheringID), slog.String("action", string(action)))
	title := "New gathering scheduled"
	if action == domain.ActionUpdate {
		title = "Gathering updated"
	}
	s.fanOutToScholars(ctx, domain.NotifyGathering, title, gathering.Title, "/gatherings/"+gathering.GatheringID)
	return &gathering, nil
}

// DeleteGathering removes a gathering.
func (s *scheduleService) DeleteGathering(ctx context.Context, actor domain.ActorRef, gatheringID string) error {
	if err := s.authorizer.Authorize(actor.Role, domain.ActionDelete, domain.KindGathering); err != nil {
		return err
	}
	audit := newAuditRecord(domain.ActionDelete, domain.KindGathering, gatheringID, actor.ActorID)
	if err := s.scheduleRepo.DeleteGathering(ctx, gatheringID, audit); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete gathering", slog.String("gathering_id", gatheringID))
		}
		return err
	}
	s.LogInfo(ctx, "Gathering deleted", slog.String("gathering_id", gatheringID))
	return nil
}

// GetGatheringByID retrieves a single gathering.
func (s *scheduleService) GetGatheringByID(ctx context.Context, actor domain.ActorRef, gatheringID string) (*domain.Gathering, error) {
	if !s.authorizer.CanRead(actor.Role, domain.KindGathering) {
		return nil, apperrors.ErrForbidden
	}
	gathering, err := s.scheduleRepo.FindGatheringByID(ctx, gatheringID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find gathering", slog.String("gathering_id", gatheringID))
		}
		return nil, err
	}
	return gathering, nil
}

// ListGatherings retrieves a paginated, newest-first list of gatherings.
func (s *scheduleService) ListGatherings(ctx context.Context, actor domain.ActorRef, params dto.ListParams) (*dto.ListGatheringsResponse, error) {
	if !s.authorizer.CanRead(actor.Role, domain.KindGathering) {
		return nil, apperrors.ErrForbidden
	}
	gatherings, nextToken, err := s.scheduleRepo.ListGatherings(ctx, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list gatherings")
		return nil, err
	}
	return dto.ToListGatheringsResponse(gatherings, nextToken), nil
}

// UpsertMeeting creates a meeting when the request carries no id and replaces
// the existing one otherwise.
func (s *scheduleService) UpsertMeeting(ctx context.Context, actor domain.ActorRef, req dto.UpsertMeetingRequest) (*domain.Meeting, error) {
	action := domain.ActionCreate
	if req.MeetingID != nil {
		action = domain.ActionUpdate
	}
	if err := s.authorizer.Authorize(actor.Role, action, domain.KindMeeting); err != nil {
		return nil, err
	}

	now := time.Now()
	var meeting domain.Meeting
	if req.MeetingID == nil {
		meeting = domain.Meeting{
			MeetingID:   uuid.NewString(),
			Title:       req.Title,
			Agenda:      req.Agenda,
			ScheduledAt: req.ScheduledAt,
			Location:    req.Location,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.ActorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.ActorID,
			},
		}
	} else {
		existing, err := s.scheduleRepo.FindMeetingByID(ctx, *req.MeetingID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to find meeting for upsert", slog.String("meeting_id", *req.MeetingID))
			}
			return nil, err
		}
		meeting = *existing
		meeting.Title = req.Title
		meeting.Agenda = req.Agenda
		meeting.ScheduledAt = req.ScheduledAt
		meeting.Location = req.Location
		meeting.LastUpdatedAt = now
		meeting.LastUpdatedBy = actor.ActorID
	}

	audit := newAuditRecord(action, domain.KindMeeting, meeting.MeetingID, actor.ActorID)
	if err := s.scheduleRepo.UpsertMeeting(ctx, meeting, audit); err != nil {
		s.LogError(ctx, err, "Failed to upsert meeting", slog.String("meeting_id", meeting.MeetingID))
		return nil, err
	}

	s.LogInfo(ctx, "Meeting saved", slog.String("meeting_id", meeting.MeetingID), slog.String("action", string(action)))
	title := "New meeting scheduled"
	if action == domain.ActionUpdate {
		title = "Meeting updated"
	}
	s.fanOutToScholars(ctx, domain.NotifyMeeting, title, meeting.Title, "/meetings/"+meeting.MeetingID)
	return &meeting, nil
}

// DeleteMeeting removes a meeting.
func (s *scheduleService) DeleteMeeting(ctx context.Context, actor domain.ActorRef, meetingID string) error {
	if err := s.authorizer.Authorize(actor.Role, domain.ActionDelete, domain.KindMeeting); err != nil {
		return err
	}
	audit := newAuditRecord(domain.ActionDelete, domain.KindMeeting, meetingID, actor.ActorID)
	if err := s.scheduleRepo.DeleteMeeting(ctx, meetingID, audit); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete meeting", slog.String("meeting_id", meetingID))
		}
		return err
	}
	s.LogInfo(ctx, "Meeting deleted", slog.String("meeting_id", meetingID))
	return nil
}

// GetMeetingByID retrieves a single meeting.
func (s *scheduleService) GetMeetingByID(ctx context.Context, actor domain.ActorRef, meetingID string) (*domain.Meeting, error) {
	if !s.authorizer.CanRead(actor.Role, domain.KindMeeting) {
		return nil, apperrors.ErrForbidden
	}
	meeting, err := s.scheduleRepo.FindMeetingByID(ctx, meetingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find meeting", slog.String("meeting_id", meetingID))
		}
		return nil, err
	}
	return meeting, nil
}

// ListMeetings retrieves a paginated, newest-first list of meetings.
func (s *scheduleService) ListMeetings(ctx context.Context, actor domain.ActorRef, params dto.ListParams) (*dto.ListMeetingsResponse, error) {
	if !s.authorizer.CanRead(actor.Role, domain.KindMeeting) {
		return nil, apperrors.ErrForbidden
	}
	meetings, nextToken, err := s.scheduleRepo.ListMeetings(ctx, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list meetings")
		return nil, err
	}
	return dto.ToListMeetingsResponse(meetings, nextToken), nil
}

// fanOutToScholars targets every active scholar with one notification each.
func (s *scheduleService) fanOutToScholars(ctx context.Context, typ domain.NotificationType, title, message, link string) {
	scholarIDs, err := s.actorRepo.ListScholarIDs(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list scholar ids for schedule fan-out")
		return
	}
	s.notifier.NotifyScholars(ctx, scholarIDs, typ, title, message, link)
}
