package handlers

import (
	"net/http"

	portssvc "github.com/scholarbase/scholarship_portal_api/internal/core/ports/services"
	"github.com/scholarbase/scholarship_portal_api/internal/dto"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for documents.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes registers document routes.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.POST("/generate", h.generateDocument)
		documents.GET("/:id", h.getDocument)
		documents.DELETE("/:id", h.deleteDocument)
	}
}

// createDocument godoc
// @Summary Upload a document
// @Description Records a document upload owned by the calling scholar. Students only.
// @Tags documents
// @Accept json
// @Produce json
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	document, err := h.documentService.CreateDocument(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(document))
}

// generateDocument godoc
// @Summary Generate a document for a scholar
// @Description Produces a portal-generated document on behalf of a scholar and notifies them. Requires document management rights.
// @Tags documents
// @Accept json
// @Produce json
// @Param document body dto.GenerateDocumentRequest true "Generation details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Scholar does not exist"
// @Security BearerAuth
// @Router /documents/generate [post]
func (h *documentHandler) generateDocument(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var req dto.GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	document, err := h.documentService.GenerateDocument(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to generate document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(document))
}

// getDocument godoc
// @Summary Get a document by ID
// @Description Retrieves one document record. Scholars may only read their own.
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	document, err := h.documentService.GetDocumentByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

// deleteDocument godoc
// @Summary Delete a document
// @Description Removes a document record. Scholars may delete their own uploads; generated documents require document management rights.
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete document")
		return
	}
	c.Status(http.StatusNoContent)
}

// listScholarDocuments godoc
// @Summary List a scholar's documents
// @Description Retrieves a paginated document listing for one scholar. Scholars may only list their own.
// @Tags documents
// @Produce json
// @Param id path string true "Scholar ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /scholars/{id}/documents [get]
func (h *documentHandler) listScholarDocuments(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.documentService.ListDocumentsByScholar(c.Request.Context(), actor, c.Param("id"), params)
	if err != nil {
		respondError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, resp)
}
