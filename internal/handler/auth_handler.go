package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/backend/internal/config"
	"github.com/portfolio-site/backend/internal/middleware"
	"github.com/portfolio-site/backend/internal/model"
	"github.com/portfolio-site/backend/internal/response"
	"github.com/portfolio-site/backend/internal/service"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// Login godoc
// POST /api/v1/auth/login
// Verifies the admin credentials and sets the session cookie. The token is
// also returned for non-browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failWith(c, err)
		return
	}

	h.setSessionCookie(c, res.Token, int(h.cfg.SessionTTL.Seconds()))
	response.Success(c, http.StatusOK, res)
}

// Check godoc
// GET /api/v1/auth/check
// Reports whether the caller holds a live admin session.
func (h *AuthHandler) Check(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Success(c, http.StatusOK, gin.H{"authenticated": false})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"authenticated": true,
		"admin":         model.Admin{Email: claims.Email, ExpiresAt: claims.ExpiresAt.Time.UTC()},
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			failWith(c, err)
			return
		}
	}

	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"authenticated": false})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AdminSessionCookie, value, maxAge, "/", "", h.cfg.CookieSecure, true)
}
