package handlers

import (
	"net/http"

	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/gin-gonic/gin"
)

// allowanceHandler handles HTTP requests for allowances.
type allowanceHandler struct {
	allowanceService portssvc.AllowanceSvcFacade
}

func newAllowanceHandler(as portssvc.AllowanceSvcFacade) *allowanceHandler {
	return &allowanceHandler{allowanceService: as}
}

// registerAllowanceRoutes registers allowance routes.
func registerAllowanceRoutes(rg *gin.RouterGroup, allowanceService portssvc.AllowanceSvcFacade) {
	h := newAllowanceHandler(allowanceService)

	allowances := rg.Group("/allowances")
	{
		allowances.POST("", h.createAllowance)
		allowances.GET("/:id", h.getAllowance)
		allowances.POST("/:id/claim", h.claimAllowance)
	}
}

// createAllowance godoc
// @Summary Post an allowance
// @Description Creates an allowance for a scholar. The total must equal the component sum. Requires document management rights.
// @Tags allowances
// @Accept json
// @Produce json
// @Param allowance body dto.CreateAllowanceRequest true "Allowance details"
// @Success 201 {object} dto.AllowanceResponse
// @Failure 400 {object} ErrorResponse "Components do not sum to the total"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Scholar does not exist"
// @Security BearerAuth
// @Router /allowances [post]
func (h *allowanceHandler) createAllowance(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.CreateAllowanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	allowance, err := h.allowanceService.CreateAllowance(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create allowance")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAllowanceResponse(allowance))
}

// getAllowance godoc
// @Summary Get an allowance by ID
// @Description Retrieves one allowance with its components. Scholars may only read their own.
// @Tags allowances
// @Produce json
// @Param id path string true "Allowance ID"
// @Success 200 {object} dto.AllowanceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /allowances/{id} [get]
func (h *allowanceHandler) getAllowance(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	allowance, err := h.allowanceService.GetAllowanceByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve allowance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAllowanceResponse(allowance))
}

// claimAllowance godoc
// @Summary Claim an allowance
// @Description Marks the caller's unclaimed allowance as claimed. Claiming twice fails with a conflict.
// @Tags allowances
// @Produce json
// @Param id path string true "Allowance ID"
// @Success 200 {object} dto.AllowanceResponse
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already claimed"
// @Security BearerAuth
// @Router /allowances/{id}/claim [post]
func (h *allowanceHandler) claimAllowance(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	allowance, err := h.allowanceService.ClaimAllowance(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to claim allowance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAllowanceResponse(allowance))
}

// listScholarAllowances godoc
// @Summary List a scholar's allowances
// @Description Retrieves a paginated allowance listing for one scholar. Scholars may only list their own.
// @Tags allowances
// @Produce json
// @Param id path string true "Scholar ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListAllowancesResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /scholars/{id}/allowances [get]
func (h *allowanceHandler) listScholarAllowances(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.allowanceService.ListAllowancesByScholar(c.Request.Context(), actor, c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to list allowances")
		return
	}
	c.JSON(http.StatusOK, resp)
}
