package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/VengGaurav/BookReviewAI/internal/ai"
	"github.com/VengGaurav/BookReviewAI/internal/audit"
	"github.com/VengGaurav/BookReviewAI/internal/auth"
	"github.com/VengGaurav/BookReviewAI/internal/catalog"
	"github.com/VengGaurav/BookReviewAI/internal/config"
	"github.com/VengGaurav/BookReviewAI/internal/database"
	http_controllers "github.com/VengGaurav/BookReviewAI/internal/http"
	"github.com/VengGaurav/BookReviewAI/internal/reading"
	"github.com/VengGaurav/BookReviewAI/internal/scheduler"
	"github.com/VengGaurav/BookReviewAI/internal/settingsstore"
	"github.com/VengGaurav/BookReviewAI/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM. SIGKILL cannot be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue and scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting BookReviewAI v%s", version)

	// Initialize database (migrates schema and seeds the starter catalog)
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Book catalog backed by the Google Books API
	booksClient := catalog.NewGoogleBooksClient(cfg.GoogleBooks.BaseURL, cfg.GoogleBooks.MaxResults)
	catalogService := catalog.NewService(db, booksClient)

	// AI prompt dispatcher
	if cfg.AI.APIKey == "" {
		log.Printf("WARNING: AI API key is not set. Generation requests will fail until 'AI_API_KEY' is provided.")
	}
	completer := ai.NewOpenAIClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)
	aiService := ai.NewService(completer)

	// Reading session tracker, snapshotted through the settings table so an
	// in-flight session survives a restart
	tracker := reading.NewTracker(settingsstore.New(db))

	// Audit trail
	auditService := audit.NewService(db)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(
			tasks.NewEnrichBookQueue(db, booksClient),
			tasks.NewSummarizeBookQueue(db, aiService),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// Queue catch-up enrichment for custom books still missing metadata,
		// e.g. added while the queue was disabled
		if missing, err := db.GetBooksMissingMetadata(); err != nil {
			log.Printf("WARNING: Failed to scan for books missing metadata: %v", err)
		} else if len(missing) > 0 {
			pending := make([]backlite.Task, 0, len(missing))
			for _, book := range missing {
				pending = append(pending, tasks.EnrichBookTask{BookID: book.ExternalID})
			}
			if _, err := taskClient.Add(pending...).Save(); err != nil {
				log.Printf("WARNING: Failed to queue enrichment backlog: %v", err)
			} else {
				log.Printf("Queued metadata enrichment for %d books", len(missing))
			}
		}

		// One retention sweep through the queue at startup; the cron
		// scheduler keeps it up from there
		if cfg.Audit.RetentionDays > 0 {
			sweep := tasks.CleanupAuditEventsTask{RetentionDays: cfg.Audit.RetentionDays}
			if _, err := taskClient.Add(sweep).Save(); err != nil {
				log.Printf("WARNING: Failed to queue audit cleanup: %v", err)
			}
		}
	}

	// Periodic audit cleanup
	auditCleanup := scheduler.NewAuditCleanupScheduler(auditService, cfg.Audit)
	if err := auditCleanup.Start(context.Background()); err != nil {
		log.Printf("WARNING: Failed to start audit cleanup scheduler: %v", err)
	}

	// Initialize authentication if enabled
	var authService *auth.Service
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var authController *auth.Controller
	var rateLimiter *auth.RateLimiter
	var csrfSecret []byte

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		authService = auth.NewService(db.DB, cfg.Auth)

		// Get underlying SQL DB for session store
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		authMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)

		rateLimiter = auth.NewRateLimiter(auth.DefaultRateLimitConfig())
		authController = auth.NewController(authService, sessionManager, rateLimiter, auditService)

		// Generate or use configured CSRF secret
		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}

		hasUsers, _ := authService.HasUsers()
		if !hasUsers {
			log.Printf("No users found. POST /api/auth/register to create the first account.")
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Catalog:        catalogService,
		AI:             aiService,
		Tracker:        tracker,
		Auditor:        auditService,
		AuthConfig:     cfg.Auth,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		SessionManager: sessionManager,
		AuthController: authController,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		Version:        version,
	}
	if taskClient != nil {
		routerCfg.TaskClient = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		auditCleanup.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if rateLimiter != nil {
			rateLimiter.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
