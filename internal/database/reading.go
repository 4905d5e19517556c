package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// ReadingData is the aggregate the dashboard renders: the three shelves,
// the session log, and cumulative totals.
type ReadingData struct {
	CurrentlyReading []entities.ReadingListEntry `json:"currentlyReading"`
	Completed        []entities.ReadingListEntry `json:"booksRead"`
	Wishlist         []entities.ReadingListEntry `json:"wishlist"`
	Sessions         []entities.SessionRecord    `json:"readingSessions"`
	TotalHours       float64                     `json:"totalHours"`
}

// ReadingStats summarizes reading activity for the dashboard header.
type ReadingStats struct {
	BooksRead    int64   `json:"booksRead"`
	TotalHours   float64 `json:"totalHours"`
	SessionCount int64   `json:"sessionCount"`
	PagesRead    int64   `json:"pagesRead"`
	AvgFocus     float64 `json:"avgFocus"`
}

// GetReadingData loads the full aggregate for a user. Sessions are ordered
// oldest first, matching the order they were logged.
func (d *Database) GetReadingData(userID uint) (*ReadingData, error) {
	data := &ReadingData{
		CurrentlyReading: []entities.ReadingListEntry{},
		Completed:        []entities.ReadingListEntry{},
		Wishlist:         []entities.ReadingListEntry{},
		Sessions:         []entities.SessionRecord{},
	}

	var entries []entities.ReadingListEntry
	err := d.DB.Preload("History").
		Where("user_id = ?", userID).
		Order("added_date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		switch e.Status {
		case entities.StatusCurrentlyReading:
			data.CurrentlyReading = append(data.CurrentlyReading, e)
		case entities.StatusCompleted:
			data.Completed = append(data.Completed, e)
		case entities.StatusWantToRead:
			data.Wishlist = append(data.Wishlist, e)
		}
	}

	err = d.DB.Where("user_id = ?", userID).
		Order("date ASC").
		Find(&data.Sessions).Error
	if err != nil {
		return nil, err
	}

	for _, s := range data.Sessions {
		data.TotalHours += float64(s.DurationMinutes) / 60
	}

	return data, nil
}

// GetBookStatus reports which shelf a book is on, favouring the reading
// shelf over the completed one when a re-read is in progress.
func (d *Database) GetBookStatus(userID uint, bookID string) (entities.ReadingStatus, error) {
	var entries []entities.ReadingListEntry
	err := d.DB.Where("user_id = ? AND book_id = ?", userID, bookID).Find(&entries).Error
	if err != nil {
		return "", err
	}
	for _, status := range []entities.ReadingStatus{
		entities.StatusCurrentlyReading,
		entities.StatusCompleted,
		entities.StatusWantToRead,
	} {
		for _, e := range entries {
			if e.Status == status {
				return status, nil
			}
		}
	}
	return "", nil
}

// SetBookStatus moves a book between shelves. Completing a book that is
// already on the completed shelf increments its read count and appends one
// finish event instead of creating a duplicate entry.
func (d *Database) SetBookStatus(userID uint, bookID string, status entities.ReadingStatus) error {
	now := time.Now()

	return d.DB.Transaction(func(tx *gorm.DB) error {
		switch status {
		case entities.StatusCurrentlyReading:
			if err := ensureEntry(tx, userID, bookID, entities.StatusCurrentlyReading, now); err != nil {
				return err
			}
			return removeEntry(tx, userID, bookID, entities.StatusWantToRead)

		case entities.StatusCompleted:
			if err := markCompleted(tx, userID, bookID, now); err != nil {
				return err
			}
			if err := removeEntry(tx, userID, bookID, entities.StatusCurrentlyReading); err != nil {
				return err
			}
			return removeEntry(tx, userID, bookID, entities.StatusWantToRead)

		case entities.StatusWantToRead:
			if err := ensureEntry(tx, userID, bookID, entities.StatusWantToRead, now); err != nil {
				return err
			}
			return removeEntry(tx, userID, bookID, entities.StatusCurrentlyReading)

		default:
			return errors.New("unknown reading status")
		}
	})
}

// ReadAgain restarts a completed book: read count up by one, a start event
// appended, and the book put back on the reading shelf.
func (d *Database) ReadAgain(userID uint, bookID string) error {
	now := time.Now()

	return d.DB.Transaction(func(tx *gorm.DB) error {
		var entry entities.ReadingListEntry
		err := tx.Where("user_id = ? AND book_id = ? AND status = ?",
			userID, bookID, entities.StatusCompleted).First(&entry).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = entities.ReadingListEntry{
				UserID:       userID,
				BookID:       bookID,
				Status:       entities.StatusCompleted,
				AddedDate:    now,
				FinishedDate: &now,
				ReadCount:    1,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			count := entry.ReadCount
			if count < 1 {
				count = 1
			}
			if err := tx.Model(&entry).Update("read_count", count+1).Error; err != nil {
				return err
			}
		}

		event := entities.ReadingEvent{
			EntryID:    entry.ID,
			Kind:       entities.ReadingEventStarted,
			OccurredAt: now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if err := ensureEntry(tx, userID, bookID, entities.StatusCurrentlyReading, now); err != nil {
			return err
		}
		return removeEntry(tx, userID, bookID, entities.StatusWantToRead)
	})
}

// AppendSessionRecord logs one completed reading session.
func (d *Database) AppendSessionRecord(record *entities.SessionRecord) error {
	return d.DB.Create(record).Error
}

// GetReadingStats aggregates session and shelf totals for a user.
func (d *Database) GetReadingStats(userID uint) (*ReadingStats, error) {
	stats := &ReadingStats{}

	err := d.DB.Model(&entities.ReadingListEntry{}).
		Where("user_id = ? AND status = ?", userID, entities.StatusCompleted).
		Count(&stats.BooksRead).Error
	if err != nil {
		return nil, err
	}

	type sessionTotals struct {
		Count    int64
		Minutes  int64
		Pages    int64
		AvgFocus float64
	}
	var totals sessionTotals
	err = d.DB.Model(&entities.SessionRecord{}).
		Select("COUNT(*) AS count, COALESCE(SUM(duration_minutes), 0) AS minutes, COALESCE(SUM(pages), 0) AS pages, COALESCE(AVG(focus_score), 0) AS avg_focus").
		Where("user_id = ?", userID).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	stats.SessionCount = totals.Count
	stats.TotalHours = float64(totals.Minutes) / 60
	stats.PagesRead = totals.Pages
	stats.AvgFocus = totals.AvgFocus

	return stats, nil
}

func ensureEntry(tx *gorm.DB, userID uint, bookID string, status entities.ReadingStatus, now time.Time) error {
	var existing entities.ReadingListEntry
	err := tx.Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, status).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	entry := entities.ReadingListEntry{
		UserID:    userID,
		BookID:    bookID,
		Status:    status,
		AddedDate: now,
	}
	return tx.Create(&entry).Error
}

func removeEntry(tx *gorm.DB, userID uint, bookID string, status entities.ReadingStatus) error {
	return tx.Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, status).
		Delete(&entities.ReadingListEntry{}).Error
}

func markCompleted(tx *gorm.DB, userID uint, bookID string, now time.Time) error {
	var entry entities.ReadingListEntry
	err := tx.Where("user_id = ? AND book_id = ? AND status = ?",
		userID, bookID, entities.StatusCompleted).First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = entities.ReadingListEntry{
			UserID:       userID,
			BookID:       bookID,
			Status:       entities.StatusCompleted,
			AddedDate:    now,
			FinishedDate: &now,
			ReadCount:    1,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	} else {
		count := entry.ReadCount
		if count < 1 {
			count = 1
		}
		updates := map[string]any{
			"finished_date": now,
			"read_count":    count + 1,
		}
		if err := tx.Model(&entry).Updates(updates).Error; err != nil {
			return err
		}
	}

	event := entities.ReadingEvent{
		EntryID:    entry.ID,
		Kind:       entities.ReadingEventFinished,
		OccurredAt: now,
	}
	return tx.Create(&event).Error
}
