// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"cctv-service/internal/domain/staff"
	"cctv-service/internal/middleware"
	"cctv-service/internal/pkg/response"
	service "cctv-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a staff account and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req staff.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// GetMe returns the authenticated account
func (h *AuthHandler) GetMe(c *gin.Context) {
	id, ok := middleware.GetIdentityID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	account, err := h.authService.GetAccount(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "account not found", err)
		return
	}

	response.Success(c, http.StatusOK, "account retrieved", account)
}
