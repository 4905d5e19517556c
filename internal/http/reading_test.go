package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VengGaurav/BookReviewAI/internal/database"
	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

func TestReadingListEndpoints(t *testing.T) {
	t.Run("aggregate starts empty", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		w := env.request(t, http.MethodGet, "/api/reading", nil)

		require.Equal(t, http.StatusOK, w.Code)

		var data database.ReadingData
		decodeJSON(t, w, &data)
		assert.Empty(t, data.CurrentlyReading)
		assert.Empty(t, data.Completed)
		assert.Empty(t, data.Wishlist)
		assert.Zero(t, data.TotalHours)
	})

	t.Run("status transitions move the book between shelves", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		w := env.request(t, http.MethodPost, "/api/reading/status", map[string]any{
			"bookId": "1", "status": "wantToRead",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = env.request(t, http.MethodPost, "/api/reading/status", map[string]any{
			"bookId": "1", "status": "currentlyReading",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var data database.ReadingData
		decodeJSON(t, env.request(t, http.MethodGet, "/api/reading", nil), &data)
		require.Len(t, data.CurrentlyReading, 1)
		assert.Empty(t, data.Wishlist)
	})

	t.Run("re-finishing increments the read count exactly once", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		for i := 0; i < 2; i++ {
			w := env.request(t, http.MethodPost, "/api/reading/status", map[string]any{
				"bookId": "1", "status": "completed",
			})
			require.Equal(t, http.StatusOK, w.Code)
		}

		var data database.ReadingData
		decodeJSON(t, env.request(t, http.MethodGet, "/api/reading", nil), &data)
		require.Len(t, data.Completed, 1)
		assert.Equal(t, 2, data.Completed[0].ReadCount)
		assert.Len(t, data.Completed[0].History, 2)
	})

	t.Run("read again returns the book to the reading shelf", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		w := env.request(t, http.MethodPost, "/api/reading/status", map[string]any{
			"bookId": "1", "status": "completed",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = env.request(t, http.MethodPost, "/api/reading/read-again", map[string]any{"bookId": "1"})
		require.Equal(t, http.StatusOK, w.Code)

		var data database.ReadingData
		decodeJSON(t, env.request(t, http.MethodGet, "/api/reading", nil), &data)
		require.Len(t, data.CurrentlyReading, 1)
		require.Len(t, data.Completed, 1)
		assert.Equal(t, 2, data.Completed[0].ReadCount)

		var status struct {
			Status entities.ReadingStatus `json:"status"`
		}
		decodeJSON(t, env.request(t, http.MethodGet, "/api/reading/status?bookId=1", nil), &status)
		assert.Equal(t, entities.StatusCurrentlyReading, status.Status)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		w := env.request(t, http.MethodPost, "/api/reading/status", map[string]any{
			"bookId": "1", "status": "abandoned",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionEndpoints(t *testing.T) {
	t.Run("start requires a book id", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		w := env.request(t, http.MethodPost, "/api/session/start", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("start while active preserves the existing session", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		var first struct {
			Started bool `json:"started"`
		}
		decodeJSON(t, env.request(t, http.MethodPost, "/api/session/start", map[string]any{"bookId": "1"}), &first)
		assert.True(t, first.Started)

		var second struct {
			Started bool             `json:"started"`
			Session *readingSnapshot `json:"session"`
		}
		decodeJSON(t, env.request(t, http.MethodPost, "/api/session/start", map[string]any{"bookId": "2"}), &second)
		assert.False(t, second.Started)
		require.NotNil(t, second.Session)
		assert.Equal(t, "1", second.Session.BookID)
	})

	t.Run("end persists a record and clears the session", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		env.request(t, http.MethodPost, "/api/session/start", map[string]any{"bookId": "1"})

		var resp struct {
			Record *entities.SessionRecord `json:"record"`
		}
		decodeJSON(t, env.request(t, http.MethodPost, "/api/session/end", map[string]any{"pages": 12}), &resp)
		require.NotNil(t, resp.Record)
		assert.Equal(t, "1", resp.Record.BookID)
		assert.Equal(t, 12, resp.Record.Pages)
		assert.Equal(t, 100, resp.Record.FocusScore)

		var active struct {
			Session *readingSnapshot `json:"session"`
		}
		decodeJSON(t, env.request(t, http.MethodGet, "/api/session", nil), &active)
		assert.Nil(t, active.Session)

		var data database.ReadingData
		decodeJSON(t, env.request(t, http.MethodGet, "/api/reading", nil), &data)
		require.Len(t, data.Sessions, 1)
	})

	t.Run("end while idle returns a null record", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		var resp struct {
			Record *entities.SessionRecord `json:"record"`
		}
		decodeJSON(t, env.request(t, http.MethodPost, "/api/session/end", map[string]any{"pages": 5}), &resp)
		assert.Nil(t, resp.Record)
	})

	t.Run("visibility hides and restores the clock", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		env.request(t, http.MethodPost, "/api/session/start", map[string]any{"bookId": "1"})

		var hidden struct {
			Session *readingSnapshot `json:"session"`
		}
		decodeJSON(t, env.request(t, http.MethodPost, "/api/session/visibility", map[string]any{"hidden": true}), &hidden)
		require.NotNil(t, hidden.Session)
		assert.NotNil(t, hidden.Session.PausedAt)

		var visible struct {
			Session *readingSnapshot `json:"session"`
		}
		decodeJSON(t, env.request(t, http.MethodPost, "/api/session/visibility", map[string]any{"hidden": false}), &visible)
		require.NotNil(t, visible.Session)
		assert.Nil(t, visible.Session.PausedAt)
	})
}

// readingSnapshot mirrors the session JSON shape for assertions.
type readingSnapshot struct {
	BookID   string  `json:"bookId"`
	PausedAt *string `json:"pausedAt"`
}
