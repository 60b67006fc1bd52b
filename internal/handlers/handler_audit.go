package handlers

import (
	"net/http"

	portsrepo "github.com/scholarbase/scholarship_portal_api/internal/core/ports/repositories"
	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/core/domain"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/gin-gonic/gin"
)

// auditHandler handles HTTP requests for the audit ledger.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

// registerAuditRoutes registers ledger routes. Read only: the ledger has no
// write surface.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	audit := rg.Group("/audit")
	{
		audit.GET("", h.listAuditRecords)
		audit.GET("/:entityKind/:entityID", h.getEntityTrail)
	}
}

// listAuditRecords godoc
// @Summary List audit ledger entries
// @Description Retrieves a filtered, paginated ledger slice, newest first. Admin only.
// @Tags audit
// @Produce json
// @Param entityKind query string false "Entity kind filter" Enums(SCHOLAR, ALLOWANCE, MEETING, GATHERING, ANNOUNCEMENT, DOCUMENT)
// @Param entityID query string false "Entity id filter"
// @Param actorID query string false "Acting actor filter"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListAuditRecordsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit [get]
func (h *auditHandler) listAuditRecords(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	filter := portsrepo.AuditListFilter{}
	if params.EntityKind != nil {
		filter.EntityKind = *params.EntityKind
	}
	if params.EntityID != nil {
		filter.EntityID = *params.EntityID
	}
	if params.ActorID != nil {
		filter.ActorID = *params.ActorID
	}

	resp, err := h.auditService.ListAuditRecords(c.Request.Context(), actor, filter, params.ListParams)
	if err != nil {
		respondError(c, err, "Failed to list audit records")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getEntityTrail godoc
// @Summary Get the full audit trail of one entity
// @Description Retrieves every ledger entry referencing one entity, oldest first. Admin only.
// @Tags audit
// @Produce json
// @Param entityKind path string true "Entity kind" Enums(SCHOLAR, ALLOWANCE, MEETING, GATHERING, ANNOUNCEMENT, DOCUMENT)
// @Param entityID path string true "Entity ID"
// @Success 200 {array} dto.AuditRecordResponse
// @Failure 400 {object} ErrorResponse "Unknown entity kind"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit/{entityKind}/{entityID} [get]
func (h *auditHandler) getEntityTrail(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	kind := domain.EntityKind(c.Param("entityKind"))
	switch kind {
	case domain.KindScholar, domain.KindAllowance, domain.KindMeeting, domain.KindGathering, domain.KindAnnouncement, domain.KindDocument:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown entity kind"})
		return
	}

	records, err := h.auditService.GetEntityTrail(c.Request.Context(), actor, kind, c.Param("entityID"))
	if err != nil {
		respondError(c, err, "Failed to load audit trail")
		return
	}

	out := make([]dto.AuditRecordResponse, len(records))
	for i := range records {
		out[i] = dto.ToAuditRecordResponse(&records[i])
	}
	c.JSON(http.StatusOK, out)
}
