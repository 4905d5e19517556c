package entities

import "time"

// ReadingStatus is the shelf a book sits on.
type ReadingStatus string

const (
	StatusCurrentlyReading ReadingStatus = "currentlyReading"
	StatusCompleted        ReadingStatus = "completed"
	StatusWantToRead       ReadingStatus = "wantToRead"
)

// ReadingEventKind distinguishes entries in a book's reading history.
type ReadingEventKind string

const (
	ReadingEventStarted  ReadingEventKind = "started"
	ReadingEventFinished ReadingEventKind = "finished"
)

// ReadingListEntry places a book on one of the user's shelves.
// A completed book keeps a read count and a history of finish/restart
// events instead of being duplicated on re-reads.
type ReadingListEntry struct {
	ID           uint           `gorm:"primaryKey" json:"-"`
	UserID       uint           `gorm:"index:idx_entry_user_book_status,unique" json:"user_id"`
	BookID       string         `gorm:"index:idx_entry_user_book_status,unique;size:100" json:"bookId"`
	Status       ReadingStatus  `gorm:"index:idx_entry_user_book_status,unique;size:30" json:"status"`
	AddedDate    time.Time      `json:"addedDate"`
	FinishedDate *time.Time     `json:"finishedDate,omitempty"`
	ReadCount    int            `json:"readCount"`
	History      []ReadingEvent `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"readingHistory"`
	CreatedAt    time.Time      `json:"-"`
	UpdatedAt    time.Time      `json:"-"`
}

func (ReadingListEntry) TableName() string {
	return "reading_list_entries"
}

// ReadingEvent is one line of a completed book's reading history.
type ReadingEvent struct {
	ID         uint             `gorm:"primaryKey" json:"-"`
	EntryID    uint             `gorm:"index" json:"-"`
	Kind       ReadingEventKind `gorm:"size:20" json:"kind"`
	OccurredAt time.Time        `json:"occurredAt"`
}

func (ReadingEvent) TableName() string {
	return "reading_events"
}

// SessionRecord is the immutable summary of one completed reading session.
type SessionRecord struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	UserID          uint      `gorm:"index" json:"user_id"`
	BookID          string    `gorm:"index;size:100" json:"bookId"`
	DurationMinutes int       `json:"duration"`
	Pages           int       `json:"pages"`
	FocusScore      int       `json:"focusScore"`
	PausedMinutes   int       `json:"pausedMinutes"`
	Date            time.Time `gorm:"index" json:"date"`
	CreatedAt       time.Time `json:"-"`
}

func (SessionRecord) TableName() string {
	return "session_records"
}
