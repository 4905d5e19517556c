package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/VengGaurav/BookReviewAI/internal/database"
	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	db *database.Database
}

// NewService creates a new audit service.
func NewService(db *database.Database) *Service {
	return &Service{db: db}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.db.LogAuditEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.db.LogAuditEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogAIDispatch records one AI backend call with its mode and outcome.
func (s *Service) LogAIDispatch(userID uint, mode, bookID string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventAIDispatch,
		Action:      "ai_" + mode,
		Description: "AI " + mode + " request",
		EntityID:    bookID,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogBookAdd records a custom book entering the catalog.
func (s *Service) LogBookAdd(userID uint, bookID, title string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventBookAdd,
		Action:      "book_add",
		Description: "Added custom book: " + title,
		EntityID:    bookID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogSessionEnd records a finished reading session.
func (s *Service) LogSessionEnd(userID uint, bookID string, durationMinutes, focusScore int) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventSessionEnd,
		Action:      "session_end",
		Description: "Reading session finished",
		EntityID:    bookID,
		Metadata:    sessionMetadata(durationMinutes, focusScore),
		Status:      entities.AuditStatusSuccess,
	})
}

// LogAuth records an authentication event.
func (s *Service) LogAuth(userID uint, action string, success bool) {
	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventAuth,
		Action:    action,
		Status:    entities.AuditStatusSuccess,
	}

	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.LogAsync(event)
}

// GetRecentEvents retrieves the latest audit events for a user.
func (s *Service) GetRecentEvents(userID uint, limit int) ([]entities.AuditEvent, error) {
	return s.db.GetRecentAuditEvents(userID, limit)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.db.DeleteAuditEventsBefore(cutoff)
}

func sessionMetadata(durationMinutes, focusScore int) string {
	raw, err := json.Marshal(map[string]int{
		"duration_minutes": durationMinutes,
		"focus_score":      focusScore,
	})
	if err != nil {
		return ""
	}
	return string(raw)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
