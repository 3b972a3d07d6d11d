package middleware_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/backend/internal/middleware"
	"github.com/portfolio-site/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator map[string]error

func (s stubValidator) Validate(_ context.Context, token string) (*service.Claims, error) {
	err, ok := s[token]
	if !ok {
		return nil, service.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return &service.Claims{Email: "admin@example.com"}, nil
}

func adminEngine(v middleware.SessionValidator) *gin.Engine {
	r := gin.New()
	r.GET("/admin", middleware.RequireAdmin(v), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetClaims(c).Email)
	})
	r.GET("/maybe", middleware.OptionalAdmin(v), func(c *gin.Context) {
		if middleware.IsAdmin(c) {
			c.String(http.StatusOK, "admin")
			return
		}
		c.String(http.StatusOK, "public")
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	r := adminEngine(stubValidator{
		"good":    nil,
		"revoked": service.ErrSessionRevoked,
		"broken":  io.ErrUnexpectedEOF,
	})

	tests := map[string]struct {
		setup  func(*http.Request)
		status int
	}{
		"no token":      {setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		"bearer header": {setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, status: http.StatusOK},
		"cookie": {setup: func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: middleware.AdminSessionCookie, Value: "good"})
		}, status: http.StatusOK},
		"query token":   {setup: func(r *http.Request) { r.URL.RawQuery = "token=good" }, status: http.StatusOK},
		"unknown token": {setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, status: http.StatusUnauthorized},
		"revoked":       {setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer revoked") }, status: http.StatusUnauthorized},
		"store failure": {setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer broken") }, status: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tt.status, w.Code)
		})
	}
}

func TestOptionalAdmin(t *testing.T) {
	r := adminEngine(stubValidator{"good": nil, "revoked": service.ErrSessionRevoked})

	for token, want := range map[string]string{"": "public", "good": "admin", "revoked": "public", "junk": "public"} {
		req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, want, w.Body.String(), "token %q", token)
	}
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := middleware.NewRateLimiter(ctx, 2, time.Hour)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	require.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	require.True(t, rl.Allow("10.0.0.2"))
}

func TestBrotli(t *testing.T) {
	large := strings.Repeat("exam result ", 500)

	r := gin.New()
	r.Use(middleware.Brotli())
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	t.Run("large body is compressed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/large", nil)
		req.Header.Set("Accept-Encoding", "gzip, br;q=0.9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, "br", w.Header().Get("Content-Encoding"))
		plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
		require.NoError(t, err)
		require.Equal(t, large, string(plain))
	})

	t.Run("small body is sent as is", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/small", nil)
		req.Header.Set("Accept-Encoding", "br")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Empty(t, w.Header().Get("Content-Encoding"))
		require.Equal(t, "ok", w.Body.String())
	})

	t.Run("client without brotli", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/large", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Empty(t, w.Header().Get("Content-Encoding"))
		require.Equal(t, large, w.Body.String())
	})
}
