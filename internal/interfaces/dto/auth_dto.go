package dto

import (
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupResponse struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
