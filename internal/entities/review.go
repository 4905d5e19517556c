package entities

import "time"

// Review is a free-text review the user wrote for a book.
// Reviews are append-only; the newest one is shown first.
type Review struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	BookID    string    `gorm:"index;size:100" json:"bookId"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Review) TableName() string {
	return "reviews"
}
