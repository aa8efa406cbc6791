package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/services"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/interfaces/dto"
)

type DocumentHandler struct {
	documentSvc *services.DocumentService
}

func NewDocumentHandler(documentSvc *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc}
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.documentSvc.Create(c.Request.Context(), currentActor(c), req.Title, req.Content, req.Access)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.DocumentResponse{Document: doc})
}

// List handles GET /api/documents?query=&access=&page=. Absent or
// unparsable parameters fall back to their defaults rather than
// erroring, matching the client's URL contract.
func (h *DocumentHandler) List(c *gin.Context) {
	docs, pagination, err := h.documentSvc.Search(c.Request.Context(), currentActor(c), searchQueryFromURL(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DocumentListResponse{Documents: docs, Pagination: pagination})
}

func (h *DocumentHandler) GetByID(c *gin.Context) {
	doc, err := h.documentSvc.GetByID(c.Request.Context(), currentActor(c), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DocumentResponse{Document: doc})
}

func (h *DocumentHandler) Update(c *gin.Context) {
	var req dto.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.documentSvc.Update(c.Request.Context(), currentActor(c), c.Param("id"), req.Title, req.Content, req.Access)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DocumentResponse{Document: doc})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documentSvc.Delete(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "document deleted"})
}

func searchQueryFromURL(c *gin.Context) entities.SearchQuery {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return entities.SearchQuery{
		FreeText: c.Query("query"),
		Access:   entities.ParseAccessFilter(c.Query("access")),
		Page:     page,
	}
}
