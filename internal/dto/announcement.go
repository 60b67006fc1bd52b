package dto

import (
	"time"

	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
)

// CreateAnnouncementRequest defines the data needed to post an announcement.
type CreateAnnouncementRequest struct {
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body" binding:"required"`
	Pinned bool   `json:"pinned"`
}

// UpdateAnnouncementRequest defines the fields that may change on an
// announcement. Pointers distinguish omitted fields from zero values.
type UpdateAnnouncementRequest struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Pinned *bool   `json:"pinned"`
}

// AnnouncementResponse defines the data returned for an announcement.
type AnnouncementResponse struct {
	AnnouncementID string    `json:"announcementID"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Pinned         bool      `json:"pinned"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// ListAnnouncementsResponse wraps a paginated announcement listing.
type ListAnnouncementsResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// ToAnnouncementResponse converts a domain.Announcement to its response DTO.
func ToAnnouncementResponse(a *domain.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		AnnouncementID: a.AnnouncementID,
		Title:          a.Title,
		Body:           a.Body,
		Pinned:         a.Pinned,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
		LastUpdatedAt:  a.LastUpdatedAt,
	}
}

// ToListAnnouncementsResponse converts a domain slice plus pagination token.
func ToListAnnouncementsResponse(announcements []domain.Announcement, nextToken *string) *ListAnnouncementsResponse {
	out := make([]AnnouncementResponse, len(announcements))
	for i := range announcements {
		out[i] = ToAnnouncementResponse(&announcements[i])
	}
	return &ListAnnouncementsResponse{Announcements: out, NextToken: nextToken}
}
