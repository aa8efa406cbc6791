package dto

import (
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
)

// DocumentRequest carries no binding rules on purpose: the validator
// owns the error messages for missing fields.
type DocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Access  string `json:"access"`
}

type DocumentResponse struct {
	Document *entities.Document `json:"document"`
}

type DocumentListResponse struct {
	Documents  []*entities.Document `json:"documents"`
	Pagination entities.Pagination  `json:"pagination"`
}
