package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/cabinet-api/internal/middleware"
	"github.com/sjperalta/cabinet-api/internal/services"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "cabinet-api",
		"version": "1.0.0",
	})
}

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Role string `form:"role" json:"role"`
	Pin  string `form:"pin" json:"pin"`
}

// @Summary Login
// @Description Starts a role session with the role's PIN
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Role and PIN"
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindForm(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Role, req.Pin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Logout
// @Description Ends the role session; its token is rejected from then on
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := middleware.GetClaims(c); claims != nil && claims.ExpiresAt != nil {
		h.authService.Logout(claims.ID, claims.ExpiresAt.Time)
	}
	respondMessage(c, "Logged out")
}

// @Summary Current Session
// @Description Returns the role of the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"role": middleware.GetIdentity(c).Role})
}
