package handlers

import (
	"io"
	"net/http"
	"strconv"

	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/gin-gonic/gin"
)

// notificationHandler handles HTTP requests for the notification feed.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

// registerNotificationRoutes registers notification routes.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.GET("/unread-count", h.unreadCount)
		notifications.POST("/:id/read", h.markRead)
		notifications.GET("/stream", h.stream)
	}
}

// listNotifications godoc
// @Summary List the caller's notifications
// @Description Retrieves the notification feed: targeted notifications for scholars, role-visible broadcasts for admins. Read state is resolved per caller.
// @Tags notifications
// @Produce json
// @Param unread query bool false "Only unread notifications" default(false)
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))

	resp, err := h.notificationService.ListNotifications(c.Request.Context(), actor, unreadOnly, params)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// unreadCount godoc
// @Summary Get the caller's unread notification count
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.UnreadCountResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (h *notificationHandler) unreadCount(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to count unread notifications")
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Unread: count})
}

// markRead godoc
// @Summary Mark a notification as read
// @Description Acknowledges one notification for the caller. Re-acknowledging is a no-op.
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to mark notification as read")
		return
	}
	c.Status(http.StatusNoContent)
}

// stream godoc
// @Summary Stream live notifications
// @Description Opens a server-sent events stream of the caller's notifications. The connection stays open until the client disconnects.
// @Tags notifications
// @Produce text/event-stream
// @Success 200 {object} dto.NotificationResponse
// @Security BearerAuth
// @Router /notifications/stream [get]
func (h *notificationHandler) stream(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	events, cancel := h.notificationService.Subscribe(actor)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, open := <-events:
			if !open {
				return false
			}
			c.SSEvent("notification", dto.ToNotificationEventResponse(ev))
			return true
		}
	})
}
