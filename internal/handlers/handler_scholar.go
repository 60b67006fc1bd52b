package handlers

import (
	"net/http"

	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/gin-gonic/gin"
)

// scholarHandler handles HTTP requests for the scholar directory.
type scholarHandler struct {
	scholarService portssvc.ScholarSvcFacade
}

func newScholarHandler(ss portssvc.ScholarSvcFacade) *scholarHandler {
	return &scholarHandler{scholarService: ss}
}

// registerScholarRoutes registers all scholar directory routes.
func registerScholarRoutes(rg *gin.RouterGroup, scholarService portssvc.ScholarSvcFacade, allowanceService portssvc.AllowanceSvcFacade, documentService portssvc.DocumentSvcFacade) {
	h := newScholarHandler(scholarService)
	ah := newAllowanceHandler(allowanceService)
	dh := newDocumentHandler(documentService)

	scholars := rg.Group("/scholars")
	{
		scholars.POST("", h.createScholar)
		scholars.GET("", h.listScholars)
		scholars.GET("/:id", h.getScholar)
		scholars.PUT("/:id", h.updateScholar)
		scholars.GET("/:id/allowances", ah.listScholarAllowances)
		scholars.GET("/:id/documents", dh.listScholarDocuments)
	}
}

// createScholar godoc
// @Summary Enroll a new scholar
// @Description Creates a scholar account. Requires document management rights.
// @Tags scholars
// @Accept json
// @Produce json
// @Param scholar body dto.CreateScholarRequest true "Scholar details"
// @Success 201 {object} dto.ScholarResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already enrolled"
// @Security BearerAuth
// @Router /scholars [post]
func (h *scholarHandler) createScholar(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.CreateScholarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	scholar, err := h.scholarService.CreateScholar(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create scholar")
		return
	}
	c.JSON(http.StatusCreated, dto.ToScholarResponse(scholar))
}

// getScholar godoc
// @Summary Get a scholar by ID
// @Description Retrieves one scholar. Students may only fetch themselves.
// @Tags scholars
// @Produce json
// @Param id path string true "Scholar ID"
// @Success 200 {object} dto.ScholarResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /scholars/{id} [get]
func (h *scholarHandler) getScholar(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	scholar, err := h.scholarService.GetScholarByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve scholar")
		return
	}
	c.JSON(http.StatusOK, dto.ToScholarResponse(scholar))
}

// listScholars godoc
// @Summary List scholars
// @Description Retrieves a paginated scholar listing. Admin only.
// @Tags scholars
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListScholarsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /scholars [get]
func (h *scholarHandler) listScholars(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.scholarService.ListScholars(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list scholars")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateScholar godoc
// @Summary Update a scholar profile
// @Description Updates name or email. Requires document management rights.
// @Tags scholars
// @Accept json
// @Produce json
// @Param id path string true "Scholar ID"
// @Param scholar body dto.UpdateScholarRequest true "Fields to update"
// @Success 200 {object} dto.ScholarResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /scholars/{id} [put]
func (h *scholarHandler) updateScholar(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.UpdateScholarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	scholar, err := h.scholarService.UpdateScholar(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update scholar")
		return
	}
	c.JSON(http.StatusOK, dto.ToScholarResponse(scholar))
}
