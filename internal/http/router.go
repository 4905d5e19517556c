package http

import (
	"github.com/gin-gonic/gin"

	"github.com/VengGaurav/BookReviewAI/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AuthService))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - inject default user ID
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Set(auth.ContextKeyAuthType, auth.AuthTypeNone)
			c.Next()
		})
	}

	// Auth endpoints (local mode)
	if cfg.AuthController != nil {
		cfg.AuthController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Catalog, cfg.Auditor, cfg.TaskClient)
	readingController := NewReadingController(cfg.Database, cfg.Tracker, cfg.Auditor)
	reviewsController := NewReviewsController(cfg.Database)
	aiController := NewAIController(cfg.AI, cfg.Auditor)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalog endpoints
	router.GET("/api/books", booksController.ListBooks)
	router.GET("/api/books/search", booksController.SearchBooks)
	router.GET("/api/books/:id", booksController.GetBook)
	router.POST("/api/books", booksController.AddBook)

	// Review log endpoints
	router.GET("/api/books/:id/reviews", reviewsController.ListReviews)
	router.POST("/api/books/:id/reviews", reviewsController.AddReview)

	// Reading list endpoints
	router.GET("/api/reading", readingController.GetReadingData)
	router.GET("/api/reading/status", readingController.GetBookStatus)
	router.POST("/api/reading/status", readingController.SetBookStatus)
	router.POST("/api/reading/read-again", readingController.ReadAgain)
	router.GET("/api/reading/stats", readingController.GetReadingStats)

	// Session tracker endpoints
	router.GET("/api/session", readingController.GetActiveSession)
	router.POST("/api/session/start", readingController.StartSession)
	router.POST("/api/session/pause", readingController.PauseSession)
	router.POST("/api/session/resume", readingController.ResumeSession)
	router.POST("/api/session/end", readingController.EndSession)
	router.POST("/api/session/visibility", readingController.SetVisibility)

	// AI endpoint
	router.POST("/api/ai", aiController.Generate)

	return router
}
