package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/portfolio-site/backend/internal/config"
	"github.com/portfolio-site/backend/internal/handler"
	"github.com/portfolio-site/backend/internal/middleware"
	"github.com/portfolio-site/backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Exam      *handler.ExamHandler
	Import    *handler.ImportHandler
	Post      *handler.PostHandler
	Dashboard *handler.DashboardHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background work owned by middlewares, such as rate limiter cleanup.
func SetupRouter(
	ctx context.Context,
	sessions middleware.SessionValidator,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics())

	// ─── CORS ──────────────────────────────────────────────────────────
	// Credentials are needed for the session cookie, so "*" is only used
	// when no origins are configured.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.EnablePprof {
		pprof.Register(router)
	}

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	public := router.Group("/api/v1")
	{
		exams := public.Group("/exams")
		exams.GET("", middleware.OptionalAdmin(sessions), handlers.Exam.ListExams)
		exams.GET("/:id", middleware.OptionalAdmin(sessions), middleware.NoStore(), handlers.Exam.GetExam)
		exams.POST("/:id/submit", handlers.Exam.SubmitExam)

		posts := public.Group("/posts", middleware.CacheControl(60))
		posts.GET("", handlers.Post.ListPublicPosts)
		posts.GET("/:slug", handlers.Post.GetPublicPost)
	}

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	loginLimiter := middleware.NewRateLimiter(ctx, cfg.LoginRatePerMinute, time.Minute)
	auth := router.Group("/api/v1/auth", middleware.NoStore())
	{
		auth.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)
		auth.GET("/check", middleware.OptionalAdmin(sessions), handlers.Auth.Check)
		auth.POST("/logout", handlers.Auth.Logout)
	}

	// ─── 2. Admin Group (Session Auth) ─────────────────────────────────
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.RequireAdmin(sessions), middleware.NoStore())
	{
		admin.GET("/dashboard", handlers.Dashboard.GetDashboard)

		exams := admin.Group("/exams")
		exams.GET("", handlers.Exam.ListExams)
		exams.POST("", handlers.Exam.CreateExam)
		exams.POST("/import/text", handlers.Import.ImportText)
		exams.POST("/import/html", handlers.Import.ImportHTML)
		exams.PUT("/:id", handlers.Exam.UpdateExam)
		exams.PATCH("/:id", handlers.Exam.ToggleExam)
		exams.DELETE("/:id", handlers.Exam.DeleteExam)
		exams.GET("/:id/results", handlers.Exam.GetExamResults)

		posts := admin.Group("/posts")
		posts.GET("", handlers.Post.ListPosts)
		posts.POST("", handlers.Post.CreatePost)
		posts.POST("/import", handlers.Post.ImportPost)
		posts.GET("/:slug", handlers.Post.GetPost)
		posts.PUT("/:slug", handlers.Post.UpdatePost)
		posts.PATCH("/:slug", handlers.Post.TogglePost)
		posts.DELETE("/:slug", handlers.Post.DeletePost)
	}

	// ─── 3. WebSocket Group (Admin Session Auth) ───────────────────────
	// Browsers cannot set headers on upgrade, so the cookie or ?token is used.
	ws := router.Group("/ws/v1/admin", middleware.RequireAdmin(sessions))
	{
		ws.GET("/exams/:id/results", handlers.WS.ResultsStream)
	}

	return router
}
