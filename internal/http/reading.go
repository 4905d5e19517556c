package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VengGaurav/BookReviewAI/internal/audit"
	"github.com/VengGaurav/BookReviewAI/internal/database"
	"github.com/VengGaurav/BookReviewAI/internal/entities"
	"github.com/VengGaurav/BookReviewAI/internal/reading"
)

// ReadingController serves the shelves, stats, and the session tracker.
type ReadingController struct {
	db      *database.Database
	tracker *reading.Tracker
	auditor *audit.Service
}

func NewReadingController(db *database.Database, tracker *reading.Tracker, auditor *audit.Service) *ReadingController {
	return &ReadingController{
		db:      db,
		tracker: tracker,
		auditor: auditor,
	}
}

func (controller *ReadingController) GetReadingData(c *gin.Context) {
	data, err := controller.db.GetReadingData(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "get reading data")
		return
	}
	c.JSON(http.StatusOK, data)
}

func (controller *ReadingController) GetBookStatus(c *gin.Context) {
	bookID := c.Query("bookId")
	if bookID == "" {
		respondBadRequest(c, "bookId is required")
		return
	}

	status, err := controller.db.GetBookStatus(GetUserID(c), bookID)
	if err != nil {
		respondInternalError(c, err, "get book status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookId": bookID, "status": status})
}

type setStatusRequest struct {
	BookID string                 `json:"bookId"`
	Status entities.ReadingStatus `json:"status"`
}

func (controller *ReadingController) SetBookStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.BookID == "" {
		respondBadRequest(c, "bookId is required")
		return
	}
	switch req.Status {
	case entities.StatusCurrentlyReading, entities.StatusCompleted, entities.StatusWantToRead:
	default:
		respondBadRequest(c, "unknown reading status")
		return
	}

	if err := controller.db.SetBookStatus(GetUserID(c), req.BookID, req.Status); err != nil {
		respondInternalError(c, err, "set book status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookId": req.BookID, "status": req.Status})
}

type readAgainRequest struct {
	BookID string `json:"bookId"`
}

func (controller *ReadingController) ReadAgain(c *gin.Context) {
	var req readAgainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.BookID == "" {
		respondBadRequest(c, "bookId is required")
		return
	}

	if err := controller.db.ReadAgain(GetUserID(c), req.BookID); err != nil {
		respondInternalError(c, err, "read again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookId": req.BookID, "status": entities.StatusCurrentlyReading})
}

func (controller *ReadingController) GetReadingStats(c *gin.Context) {
	stats, err := controller.db.GetReadingStats(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "get reading stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Session tracker endpoints. The tracker itself is total: acting on a
// missing session is a no-op, so these always answer with the resulting
// state rather than an error.

type startSessionRequest struct {
	BookID string `json:"bookId"`
}

func (controller *ReadingController) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.BookID == "" {
		respondBadRequest(c, "bookId is required")
		return
	}

	started := controller.tracker.Start(req.BookID)
	c.JSON(http.StatusOK, gin.H{
		"started": started,
		"session": controller.tracker.Active(),
	})
}

func (controller *ReadingController) PauseSession(c *gin.Context) {
	controller.tracker.Pause()
	c.JSON(http.StatusOK, gin.H{"session": controller.tracker.Active()})
}

func (controller *ReadingController) ResumeSession(c *gin.Context) {
	controller.tracker.Resume()
	c.JSON(http.StatusOK, gin.H{"session": controller.tracker.Active()})
}

type endSessionRequest struct {
	Pages int `json:"pages"`
}

// EndSession finishes the active session, persists its record, and logs the
// audit event. Ending while idle returns a null record.
func (controller *ReadingController) EndSession(c *gin.Context) {
	var req endSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	record := controller.tracker.End(req.Pages)
	if record == nil {
		c.JSON(http.StatusOK, gin.H{"record": nil})
		return
	}

	userID := GetUserID(c)
	record.UserID = userID
	if err := controller.db.AppendSessionRecord(record); err != nil {
		respondInternalError(c, err, "append session record")
		return
	}

	if controller.auditor != nil {
		controller.auditor.LogSessionEnd(userID, record.BookID, record.DurationMinutes, record.FocusScore)
	}

	c.JSON(http.StatusOK, gin.H{"record": record})
}

func (controller *ReadingController) GetActiveSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session": controller.tracker.Active()})
}

type visibilityRequest struct {
	Hidden bool `json:"hidden"`
}

// SetVisibility forwards the client's visibilitychange events: hidden pauses
// the running session, visible resumes a paused one.
func (controller *ReadingController) SetVisibility(c *gin.Context) {
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	controller.tracker.SetVisibility(req.Hidden)
	c.JSON(http.StatusOK, gin.H{"session": controller.tracker.Active()})
}
