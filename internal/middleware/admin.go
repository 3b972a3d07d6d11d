package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/backend/internal/response"
	"github.com/portfolio-site/backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for admin session claims.
	ContextKeyClaims = "claims"
	// AdminSessionCookie carries the admin session token for browser clients.
	AdminSessionCookie = "admin_session"
)

// SessionValidator validates an admin session token.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*service.Claims, error)
}

// RequireAdmin rejects requests without a live admin session.
func RequireAdmin(auth SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}

		claims, err := auth.Validate(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrSessionRevoked):
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		case errors.Is(err, service.ErrInvalidToken):
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		default:
			_ = c.Error(err)
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAdmin marks the request as admin when it carries a live session.
// A missing or invalid session just leaves the caller anonymous.
func OptionalAdmin(auth SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := SessionToken(c); token != "" {
			if claims, err := auth.Validate(c.Request.Context(), token); err == nil {
				c.Set(ContextKeyClaims, claims)
			}
		}
		c.Next()
	}
}

// GetClaims retrieves the admin claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// IsAdmin reports whether an admin session was validated for this request.
func IsAdmin(c *gin.Context) bool {
	return GetClaims(c) != nil
}

// SessionToken extracts the session token from the Authorization header,
// the session cookie or, for WebSocket upgrades, the ?token query param.
func SessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(AdminSessionCookie); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("token")
}
