package database

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// ListReviews returns a book's review log, newest first.
func (d *Database) ListReviews(userID uint, bookID string) ([]entities.Review, error) {
	var reviews []entities.Review
	err := d.DB.Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// AddReview appends a free-text review. Blank text is dropped and nil is
// returned without error, matching the caller-side behavior of the UI.
func (d *Database) AddReview(userID uint, bookID, text string) (*entities.Review, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	review := &entities.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		BookID:    bookID,
		Text:      trimmed,
		CreatedAt: time.Now(),
	}
	if err := d.DB.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}
