package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthAuditor records authentication events. Satisfied by the audit service.
type AuthAuditor interface {
	LogAuth(userID uint, action string, success bool)
}

// Controller exposes the JSON authentication endpoints.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
	rateLimiter    *RateLimiter
	auditor        AuthAuditor
}

// NewController creates the auth endpoints controller.
func NewController(service *Service, sessionManager *SessionManager, rateLimiter *RateLimiter, auditor AuthAuditor) *Controller {
	return &Controller{
		service:        service,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
		auditor:        auditor,
	}
}

// RegisterRoutes attaches the auth endpoints to the router.
func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/auth/status", ctrl.Status)
	router.POST("/api/auth/register", ctrl.Register)
	router.POST("/api/auth/login", ctrl.Login)
	router.POST("/api/auth/logout", ctrl.Logout)
	router.GET("/api/auth/me", ctrl.Profile)
	router.POST("/api/auth/token", ctrl.GenerateToken)
	router.DELETE("/api/auth/token", ctrl.RevokeToken)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Status reports the auth mode so the client knows whether to show a login,
// along with the CSRF token the client must echo on writes.
func (ctrl *Controller) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mode":      ctrl.service.GetAuthMode(),
		"enabled":   ctrl.service.IsAuthEnabled(),
		"csrfToken": GetCSRFToken(c),
	})
}

// Register creates a user account and opens a session for it.
func (ctrl *Controller) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := ctrl.service.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ctrl.sessionManager != nil {
		if err := ctrl.sessionManager.CreateSession(c.Request, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
	}

	if ctrl.auditor != nil {
		ctrl.auditor.LogAuth(user.ID, "register", true)
	}

	c.JSON(http.StatusCreated, user)
}

// Login authenticates credentials and opens a session.
func (ctrl *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	ip := c.ClientIP()
	if ctrl.rateLimiter != nil {
		if allowed, retryAfter := ctrl.rateLimiter.Allow(ip, req.Username); !allowed {
			c.Header("Retry-After", retryAfter.String())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many login attempts",
				"retry_after": retryAfter.String(),
			})
			return
		}
	}

	user, err := ctrl.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if ctrl.rateLimiter != nil {
			ctrl.rateLimiter.RecordFailure(ip, req.Username)
		}
		if ctrl.auditor != nil {
			ctrl.auditor.LogAuth(0, "login", false)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if ctrl.rateLimiter != nil {
		ctrl.rateLimiter.RecordSuccess(ip, req.Username)
	}

	if ctrl.sessionManager != nil {
		if err := ctrl.sessionManager.CreateSession(c.Request, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
	}

	if ctrl.auditor != nil {
		ctrl.auditor.LogAuth(user.ID, "login", true)
	}

	c.JSON(http.StatusOK, user)
}

// Logout destroys the current session.
func (ctrl *Controller) Logout(c *gin.Context) {
	if ctrl.sessionManager != nil {
		if err := ctrl.sessionManager.DestroySession(c.Request); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to destroy session"})
			return
		}
	}

	if ctrl.auditor != nil {
		ctrl.auditor.LogAuth(GetUserID(c), "logout", true)
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Profile returns the authenticated user.
func (ctrl *Controller) Profile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := ctrl.service.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GenerateToken issues a fresh API token, returned in plaintext exactly once.
func (ctrl *Controller) GenerateToken(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	token, err := ctrl.service.GenerateToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// RevokeToken invalidates the user's API token.
func (ctrl *Controller) RevokeToken(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := ctrl.service.RevokeToken(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "token revoked"})
}
