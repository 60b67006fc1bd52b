package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/gin-gonic/gin"
)

// lateSubmissionHandler handles HTTP requests for the late-submission workflow.
type lateSubmissionHandler struct {
	lateSubmissionService portssvc.LateSubmissionSvcFacade
}

func newLateSubmissionHandler(ls portssvc.LateSubmissionSvcFacade) *lateSubmissionHandler {
	return &lateSubmissionHandler{lateSubmissionService: ls}
}

// RegisterLateSubmissionRoutes registers late-submission routes.
func RegisterLateSubmissionRoutes(rg *gin.RouterGroup, lateSubmissionService portssvc.LateSubmissionSvcFacade) {
	h := newLateSubmissionHandler(lateSubmissionService)

	requests := rg.Group("/late-submissions")
	{
		requests.POST("", h.requestLateSubmission)
		requests.GET("", h.listRequests)
		requests.GET("/mine", h.listOwnRequests)
		requests.GET("/:id", h.getRequest)
		requests.POST("/:id/decision", h.decideRequest)
	}
}

// requestLateSubmission godoc
// @Summary Request a late submission window
// @Description Files a request to reopen one submission period for the calling scholar. One request per period.
// @Tags late-submissions
// @Accept json
// @Produce json
// @Param request body dto.LateSubmissionRequestInput true "Period and reason"
// @Success 201 {object} dto.LateSubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A request for this period already exists"
// @Security BearerAuth
// @Router /late-submissions [post]
func (h *lateSubmissionHandler) requestLateSubmission(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.LateSubmissionRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.lateSubmissionService.RequestLateSubmission(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to file late submission request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLateSubmissionResponse(request))
}

// decideRequest godoc
// @Summary Decide a late submission request
// @Description Approves or rejects a pending request. Approvals may carry an openUntil date, normalized to the end of that day; re-approving adjusts or clears the deadline. Flipping a decided outcome fails with a conflict.
// @Tags late-submissions
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param decision body dto.LateSubmissionDecisionInput true "Decision"
// @Success 200 {object} dto.LateSubmissionResponse
// @Failure 400 {object} ErrorResponse "Malformed openUntil date"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already decided the other way"
// @Security BearerAuth
// @Router /late-submissions/{id}/decision [post]
func (h *lateSubmissionHandler) decideRequest(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.LateSubmissionDecisionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	request, err := h.lateSubmissionService.DecideLateSubmission(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to decide late submission request")
		return
	}
	c.JSON(http.StatusOK, dto.ToLateSubmissionResponse(request))
}

// getRequest godoc
// @Summary Get a late submission request by ID
// @Description Retrieves one request. Scholars may only read their own.
// @Tags late-submissions
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.LateSubmissionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /late-submissions/{id} [get]
func (h *lateSubmissionHandler) getRequest(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	request, err := h.lateSubmissionService.GetRequestByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve late submission request")
		return
	}
	c.JSON(http.StatusOK, dto.ToLateSubmissionResponse(request))
}

// listRequests godoc
// @Summary List late submission requests
// @Description Retrieves a paginated request listing for admins, optionally pending only.
// @Tags late-submissions
// @Produce json
// @Param pending query bool false "Only undecided requests" default(false)
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListLateSubmissionsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /late-submissions [get]
func (h *lateSubmissionHandler) listRequests(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	pendingOnly, _ := strconv.ParseBool(c.DefaultQuery("pending", "false"))

	resp, err := h.lateSubmissionService.ListRequests(c.Request.Context(), actor, pendingOnly, params)
	if err != nil {
		respondError(c, err, "Failed to list late submission requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listOwnRequests godoc
// @Summary List the caller's late submission requests
// @Tags late-submissions
// @Produce json
// @Success 200 {object} dto.ListLateSubmissionsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /late-submissions/mine [get]
func (h *lateSubmissionHandler) listOwnRequests(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	requests, err := h.lateSubmissionService.ListOwnRequests(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to list late submission requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLateSubmissionsResponse(requests, nil))
}
