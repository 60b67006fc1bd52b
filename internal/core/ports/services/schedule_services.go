package services

import (
	"context"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
)

// ScheduleSvcFacade covers gathering and meeting reads and audited mutations.
// Upserts audit as CREATE or UPDATE depending on whether the id existed.
type ScheduleSvcFacade interface {
	GetGatheringByID(ctx context.Context, actor domain.ActorRef, gatheringID string) (*domain.Gathering, error)
	ListGatherings(ctx context.Context, actor domain.ActorRef, params dto.ListParams) (*dto.ListGatheringsResponse, error)
	UpsertGathering(ctx context.Context, actor domain.ActorRef, req dto.UpsertGatheringRequest) (*domain.Gathering, error)
	DeleteGathering(ctx context.Context, actor domain.ActorRef, gatheringID string) error

	GetMeetingByID(ctx context.Context, actor domain.ActorRef, meetingID string) (*domain.Meeting, error)
	ListMeetings(ctx context.Context, actor domain.ActorRef, params dto.ListParams) (*dto.ListMeetingsResponse, error)
	UpsertMeeting(ctx context.Context, actor domain.ActorRef, req dto.UpsertMeetingRequest) (*domain.Meeting, error)
	DeleteMeeting(ctx context.Context, actor domain.ActorRef, meetingID string) error
}
