package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/services"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/interfaces/dto"
)

type UserHandler struct {
	documentSvc *services.DocumentService
}

func NewUserHandler(documentSvc *services.DocumentService) *UserHandler {
	return &UserHandler{documentSvc: documentSvc}
}

// Documents handles GET /api/users/:id/documents: the documents owned
// by :id that the acting user may see. Only the owner or an admin may
// ask.
func (h *UserHandler) Documents(c *gin.Context) {
	docs, pagination, err := h.documentSvc.ListByOwner(
		c.Request.Context(), currentActor(c), c.Param("id"), searchQueryFromURL(c),
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DocumentListResponse{Documents: docs, Pagination: pagination})
}
