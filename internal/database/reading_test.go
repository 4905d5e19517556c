package database

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

func setupTestDB(t *testing.T) (*Database, func()) {
	dbPath := "./test_reading_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestSetBookStatus(t *testing.T) {
	t.Run("wishlist then reading leaves a single entry", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.SetBookStatus(1, "1", entities.StatusWantToRead))
		require.NoError(t, db.SetBookStatus(1, "1", entities.StatusCurrentlyReading))

		data, err := db.GetReadingData(1)
		require.NoError(t, err)
		assert.Len(t, data.CurrentlyReading, 1)
		assert.Empty(t, data.Wishlist)
	})

	t.Run("completing sets read count and a finish event", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.SetBookStatus(1, "1", entities.StatusCurrentlyReading))
		require.NoError(t, db.SetBookStatus(1, "1", entities.StatusCompleted))

		data, err := db.GetReadingData(1)
		require.NoError(t, err)
		assert.Empty(t, data.CurrentlyReading)
		require.Len(t, data.Completed, 1)

		entry := data.Completed[0]
		assert.Equal(t, 1, entry.ReadCount)
		require.NotNil(t, entry.FinishedDate)
		require.Len(t, entry.History, 1)
		assert.Equal(t, entities.ReadingEventFinished, entry.History[0].Kind)
	})

	t.Run("re-finishing increments the count by exactly one", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.SetBookStatus(1, "1", entities.StatusCompleted))
		require.NoError(t, db.SetBookStatus(1, "1", entities.StatusCompleted))
		require.NoError(t, db.SetBookStatus(1, "1", entities.StatusCompleted))

		data, err := db.GetReadingData(1)
		require.NoError(t, err)
		require.Len(t, data.Completed, 1)
		assert.Equal(t, 3, data.Completed[0].ReadCount)
		assert.Len(t, data.Completed[0].History, 3)
	})

	t.Run("shelves are scoped per user", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.SetBookStatus(1, "1", entities.StatusCompleted))
		require.NoError(t, db.SetBookStatus(2, "1", entities.StatusWantToRead))

		data, err := db.GetReadingData(2)
		require.NoError(t, err)
		assert.Empty(t, data.Completed)
		assert.Len(t, data.Wishlist, 1)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		err := db.SetBookStatus(1, "1", entities.ReadingStatus("abandoned"))
		assert.Error(t, err)
	})
}

func TestGetBookStatus(t *testing.T) {
	t.Run("empty for a book never shelved", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		status, err := db.GetBookStatus(1, "1")
		require.NoError(t, err)
		assert.Empty(t, status)
	})

	t.Run("reading wins over completed during a re-read", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.SetBookStatus(1, "1", entities.StatusCompleted))
		require.NoError(t, db.ReadAgain(1, "1"))

		status, err := db.GetBookStatus(1, "1")
		require.NoError(t, err)
		assert.Equal(t, entities.StatusCurrentlyReading, status)
	})
}

func TestReadAgain(t *testing.T) {
	t.Run("keeps the completed entry and restarts the book", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.SetBookStatus(1, "1", entities.StatusCompleted))
		require.NoError(t, db.ReadAgain(1, "1"))

		data, err := db.GetReadingData(1)
		require.NoError(t, err)
		require.Len(t, data.Completed, 1)
		require.Len(t, data.CurrentlyReading, 1)

		entry := data.Completed[0]
		assert.Equal(t, 2, entry.ReadCount)
		require.Len(t, entry.History, 2)
		assert.Equal(t, entities.ReadingEventStarted, entry.History[1].Kind)
	})

	t.Run("works without a prior completed entry", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.ReadAgain(1, "1"))

		data, err := db.GetReadingData(1)
		require.NoError(t, err)
		require.Len(t, data.Completed, 1)
		assert.Equal(t, 1, data.Completed[0].ReadCount)
		assert.Len(t, data.CurrentlyReading, 1)
	})
}

func TestReadingStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.SetBookStatus(1, "1", entities.StatusCompleted))
	require.NoError(t, db.SetBookStatus(1, "2", entities.StatusCompleted))

	sessions := []entities.SessionRecord{
		{UserID: 1, BookID: "1", DurationMinutes: 30, Pages: 20, FocusScore: 100, Date: time.Now()},
		{UserID: 1, BookID: "2", DurationMinutes: 90, Pages: 40, FocusScore: 80, Date: time.Now()},
	}
	for i := range sessions {
		require.NoError(t, db.AppendSessionRecord(&sessions[i]))
	}

	stats, err := db.GetReadingStats(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.BooksRead)
	assert.Equal(t, int64(2), stats.SessionCount)
	assert.Equal(t, 2.0, stats.TotalHours)
	assert.Equal(t, int64(60), stats.PagesRead)
	assert.Equal(t, 90.0, stats.AvgFocus)
}

func TestGetReadingDataTotals(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	record := entities.SessionRecord{
		UserID: 1, BookID: "1", DurationMinutes: 45, FocusScore: 92, Date: time.Now(),
	}
	require.NoError(t, db.AppendSessionRecord(&record))

	data, err := db.GetReadingData(1)
	require.NoError(t, err)
	require.Len(t, data.Sessions, 1)
	assert.InDelta(t, 0.75, data.TotalHours, 0.001)
}
