package handlers

import (
	"net/http"

	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/gin-gonic/gin"
)

// announcementHandler handles HTTP requests for announcements.
type announcementHandler struct {
	announcementService portssvc.AnnouncementSvcFacade
}

func newAnnouncementHandler(as portssvc.AnnouncementSvcFacade) *announcementHandler {
	return &announcementHandler{announcementService: as}
}

// registerAnnouncementRoutes registers announcement routes.
func registerAnnouncementRoutes(rg *gin.RouterGroup, announcementService portssvc.AnnouncementSvcFacade) {
	h := newAnnouncementHandler(announcementService)

	announcements := rg.Group("/announcements")
	{
		announcements.GET("", h.listAnnouncements)
		announcements.POST("", h.createAnnouncement)
		announcements.GET("/:id", h.getAnnouncement)
		announcements.PUT("/:id", h.updateAnnouncement)
		announcements.DELETE("/:id", h.deleteAnnouncement)
	}
}

// createAnnouncement godoc
// @Summary Post an announcement
// @Description Creates an announcement and notifies every scholar. Requires gathering management rights.
// @Tags announcements
// @Accept json
// @Produce json
// @Param announcement body dto.CreateAnnouncementRequest true "Announcement details"
// @Success 201 {object} dto.AnnouncementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /announcements [post]
func (h *announcementHandler) createAnnouncement(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	announcement, err := h.announcementService.CreateAnnouncement(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create announcement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAnnouncementResponse(announcement))
}

// getAnnouncement godoc
// @Summary Get an announcement by ID
// @Tags announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} dto.AnnouncementResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /announcements/{id} [get]
func (h *announcementHandler) getAnnouncement(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	announcement, err := h.announcementService.GetAnnouncementByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve announcement")
		return
	}
	c.JSON(http.StatusOK, dto.ToAnnouncementResponse(announcement))
}

// listAnnouncements godoc
// @Summary List announcements
// @Description Retrieves a paginated announcement listing, newest first.
// @Tags announcements
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListAnnouncementsResponse
// @Security BearerAuth
// @Router /announcements [get]
func (h *announcementHandler) listAnnouncements(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.announcementService.ListAnnouncements(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list announcements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateAnnouncement godoc
// @Summary Update an announcement
// @Description Edits an announcement without re-notifying scholars. Requires gathering management rights.
// @Tags announcements
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param announcement body dto.UpdateAnnouncementRequest true "Fields to update"
// @Success 200 {object} dto.AnnouncementResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /announcements/{id} [put]
func (h *announcementHandler) updateAnnouncement(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	announcement, err := h.announcementService.UpdateAnnouncement(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update announcement")
		return
	}
	c.JSON(http.StatusOK, dto.ToAnnouncementResponse(announcement))
}

// deleteAnnouncement godoc
// @Summary Delete an announcement
// @Description Removes an announcement. The ledger entry recording the deletion survives.
// @Tags announcements
// @Param id path string true "Announcement ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /announcements/{id} [delete]
func (h *announcementHandler) deleteAnnouncement(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.announcementService.DeleteAnnouncement(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete announcement")
		return
	}
	c.Status(http.StatusNoContent)
}
