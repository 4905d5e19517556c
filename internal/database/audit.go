package database

import (
	"time"

	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// LogAuditEvent persists one audit event.
func (d *Database) LogAuditEvent(event *entities.AuditEvent) error {
	return d.DB.Create(event).Error
}

// GetRecentAuditEvents returns the latest events for a user.
func (d *Database) GetRecentAuditEvents(userID uint, limit int) ([]entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []entities.AuditEvent
	err := d.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// DeleteAuditEventsBefore removes events older than the cutoff and returns
// how many were deleted.
func (d *Database) DeleteAuditEventsBefore(cutoff time.Time) (int64, error) {
	result := d.DB.Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
