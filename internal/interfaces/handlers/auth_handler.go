package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/services"
	"github.com/wapjude/CP-2-Document-Mangement-system/internal/interfaces/dto"
)

type AuthHandler struct {
	authSvc *services.AuthService
}

func NewAuthHandler(authSvc *services.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{User: user, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), c.GetHeader(TokenHeader)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}
