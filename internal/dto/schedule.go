package dto

import (
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// UpsertGatheringRequest creates a gathering when GatheringID is nil and
// replaces the existing one otherwise.
type UpsertGatheringRequest struct {
	GatheringID *string   `json:"gatheringID"`
	Title       string    `json:"title" binding:"required"`
	Venue       string    `json:"venue" binding:"required"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt" binding:"required"`
}

// UpsertMeetingRequest creates a meeting when MeetingID is nil and replaces
// the existing one otherwise.
type UpsertMeetingRequest struct {
	MeetingID   *string   `json:"meetingID"`
	Title       string    `json:"title" binding:"required"`
	Agenda      string    `json:"agenda"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Location    string    `json:"location" binding:"required"`
}

// GatheringResponse defines the data returned for a gathering.
type GatheringResponse struct {
	GatheringID string    `json:"gatheringID"`
	Title       string    `json:"title"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// MeetingResponse defines the data returned for a meeting.
type MeetingResponse struct {
	MeetingID   string    `json:"meetingID"`
	Title       string    `json:"title"`
	Agenda      string    `json:"agenda"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ListGatheringsResponse wraps a paginated gathering listing.
type ListGatheringsResponse struct {
	Gatherings []GatheringResponse `json:"gatherings"`
	NextToken  *string             `json:"nextToken,omitempty"`
}

// ListMeetingsResponse wraps a paginated meeting listing.
type ListMeetingsResponse struct {
	Meetings  []MeetingResponse `json:"meetings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToGatheringResponse converts a domain.Gathering to its response DTO.
func ToGatheringResponse(g *domain.Gathering) GatheringResponse {
	return GatheringResponse{
		GatheringID: g.GatheringID,
		Title:       g.Title,
		Venue:       g.Venue,
		StartsAt:    g.StartsAt,
		EndsAt:      g.EndsAt,
		CreatedAt:   g.CreatedAt,
		CreatedBy:   g.CreatedBy,
	}
}

// ToMeetingResponse converts a domain.Meeting to its response DTO.
func ToMeetingResponse(m *domain.Meeting) MeetingResponse {
	return MeetingResponse{
		MeetingID:   m.MeetingID,
		Title:       m.Title,
		Agenda:      m.Agenda,
		ScheduledAt: m.ScheduledAt,
		Location:    m.Location,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// ToListGatheringsResponse converts a domain slice plus pagination token.
func ToListGatheringsResponse(gatherings []domain.Gathering, nextToken *string) *ListGatheringsResponse {
	out := make([]GatheringResponse, len(gatherings))
	for i := range gatherings {
		out[i] = ToGatheringResponse(&gatherings[i])
	}
	return &ListGatheringsResponse{Gatherings: out, NextToken: nextToken}
}

// ToListMeetingsResponse converts a domain slice plus pagination token.
func ToListMeetingsResponse(meetings []domain.Meeting, nextToken *string) *ListMeetingsResponse {
	out := make([]MeetingResponse, len(meetings))
	for i := range meetings {
		out[i] = ToMeetingResponse(&meetings[i])
	}
	return &ListMeetingsResponse{Meetings: out, NextToken: nextToken}
}
