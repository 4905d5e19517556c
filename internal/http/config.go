package http

import (
	"github.com/VengGaurav/BookReviewAI/internal/ai"
	"github.com/VengGaurav/BookReviewAI/internal/audit"
	"github.com/VengGaurav/BookReviewAI/internal/auth"
	"github.com/VengGaurav/BookReviewAI/internal/catalog"
	"github.com/VengGaurav/BookReviewAI/internal/config"
	"github.com/VengGaurav/BookReviewAI/internal/database"
	"github.com/VengGaurav/BookReviewAI/internal/reading"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router. This replaces a long parameter list in NewRouter.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Catalog  *catalog.Service
	AI       *ai.Service
	Tracker  *reading.Tracker
	Auditor  *audit.Service

	// Task queue client (optional)
	TaskClient TaskAdder

	// Authentication
	AuthConfig     config.Auth
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	AuthController *auth.Controller
	CSRFSecret     []byte
	SecureCookies  bool

	// Application info
	Version string
}
