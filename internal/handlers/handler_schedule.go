package handlers

import (
	"net/http"

	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/gin-gonic/gin"
)

// scheduleHandler handles HTTP requests for gatherings and meetings.
type scheduleHandler struct {
	scheduleService portssvc.ScheduleSvcFacade
}

func newScheduleHandler(ss portssvc.ScheduleSvcFacade) *scheduleHandler {
	return &scheduleHandler{scheduleService: ss}
}

// registerScheduleRoutes registers gathering and meeting routes. Upserts go
// through PUT on the collection: a nil id creates, a known id replaces.
func registerScheduleRoutes(rg *gin.RouterGroup, scheduleService portssvc.ScheduleSvcFacade) {
	h := newScheduleHandler(scheduleService)

	gatherings := rg.Group("/gatherings")
	{
		gatherings.GET("", h.listGatherings)
		gatherings.PUT("", h.upsertGathering)
		gatherings.GET("/:id", h.getGathering)
		gatherings.DELETE("/:id", h.deleteGathering)
	}

	meetings := rg.Group("/meetings")
	{
		meetings.GET("", h.listMeetings)
		meetings.PUT("", h.upsertMeeting)
		meetings.GET("/:id", h.getMeeting)
		meetings.DELETE("/:id", h.deleteMeeting)
	}
}

// upsertGathering godoc
// @Summary Create or replace a gathering
// @Description Creates a gathering when no id is supplied, replaces the existing one otherwise. Scholars are notified either way. Requires gathering management rights.
// @Tags schedule
// @Accept json
// @Produce json
// @Param gathering body dto.UpsertGatheringRequest true "Gathering details"
// @Success 200 {object} dto.GatheringResponse
// @Failure 400 {object} ErrorResponse "Ends before it starts"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Supplied id does not exist"
// @Security BearerAuth
// @Router /gatherings [put]
func (h *scheduleHandler) upsertGathering(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.UpsertGatheringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	gathering, err := h.scheduleService.UpsertGathering(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to save gathering")
		return
	}
	c.JSON(http.StatusOK, dto.ToGatheringResponse(gathering))
}

// getGathering godoc
// @Summary Get a gathering by ID
// @Tags schedule
// @Produce json
// @Param id path string true "Gathering ID"
// @Success 200 {object} dto.GatheringResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /gatherings/{id} [get]
func (h *scheduleHandler) getGathering(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	gathering, err := h.scheduleService.GetGatheringByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve gathering")
		return
	}
	c.JSON(http.StatusOK, dto.ToGatheringResponse(gathering))
}

// listGatherings godoc
// @Summary List gatherings
// @Tags schedule
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListGatheringsResponse
// @Security BearerAuth
// @Router /gatherings [get]
func (h *scheduleHandler) listGatherings(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.scheduleService.ListGatherings(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list gatherings")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteGathering godoc
// @Summary Delete a gathering
// @Tags schedule
// @Param id path string true "Gathering ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /gatherings/{id} [delete]
func (h *scheduleHandler) deleteGathering(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteGathering(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete gathering")
		return
	}
	c.Status(http.StatusNoContent)
}

// upsertMeeting godoc
// @Summary Create or replace a meeting
// @Description Creates a meeting when no id is supplied, replaces the existing one otherwise. Requires gathering management rights.
// @Tags schedule
// @Accept json
// @Produce json
// @Param meeting body dto.UpsertMeetingRequest true "Meeting details"
// @Success 200 {object} dto.MeetingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Supplied id does not exist"
// @Security BearerAuth
// @Router /meetings [put]
func (h *scheduleHandler) upsertMeeting(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.UpsertMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	meeting, err := h.scheduleService.UpsertMeeting(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to save meeting")
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingResponse(meeting))
}

// getMeeting godoc
// @Summary Get a meeting by ID
// @Tags schedule
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} dto.MeetingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /meetings/{id} [get]
func (h *scheduleHandler) getMeeting(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	meeting, err := h.scheduleService.GetMeetingByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve meeting")
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingResponse(meeting))
}

// listMeetings godoc
// @Summary List meetings
// @Tags schedule
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListMeetingsResponse
// @Security BearerAuth
// @Router /meetings [get]
func (h *scheduleHandler) listMeetings(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.scheduleService.ListMeetings(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list meetings")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteMeeting godoc
// @Summary Delete a meeting
// @Tags schedule
// @Param id path string true "Meeting ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /meetings/{id} [delete]
func (h *scheduleHandler) deleteMeeting(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteMeeting(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete meeting")
		return
	}
	c.Status(http.StatusNoContent)
}
