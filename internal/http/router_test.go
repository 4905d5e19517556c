package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/VengGaurav/BookReviewAI/internal/ai"
	"github.com/VengGaurav/BookReviewAI/internal/catalog"
	"github.com/VengGaurav/BookReviewAI/internal/database"
	"github.com/VengGaurav/BookReviewAI/internal/entities"
	"github.com/VengGaurav/BookReviewAI/internal/reading"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVolumes struct {
	searchResult []entities.Book
	searchErr    error
	volume       *entities.Book
	volumeErr    error
}

func (s *stubVolumes) Search(ctx context.Context, query string) ([]entities.Book, error) {
	return s.searchResult, s.searchErr
}

func (s *stubVolumes) GetVolume(ctx context.Context, volumeID string) (*entities.Book, error) {
	return s.volume, s.volumeErr
}

type stubCompleter struct {
	text string
	err  error
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return s.text, s.err
}

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(key string) (string, error) { return m.values[key], nil }
func (m *memStore) Set(key, value string) error    { m.values[key] = value; return nil }
func (m *memStore) Clear(key string) error         { delete(m.values, key); return nil }

type testEnv struct {
	router    *gin.Engine
	db        *database.Database
	volumes   *stubVolumes
	completer *stubCompleter
	tracker   *reading.Tracker
}

func setupTestRouter(t *testing.T) (*testEnv, func()) {
	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	volumes := &stubVolumes{searchErr: errors.New("offline")}
	completer := &stubCompleter{text: "generated text"}
	tracker := reading.NewTracker(newMemStore())

	env := &testEnv{
		db:        db,
		volumes:   volumes,
		completer: completer,
		tracker:   tracker,
	}
	env.router = NewRouter(RouterConfig{
		Database: db,
		Catalog:  catalog.NewService(db, volumes),
		AI:       ai.NewService(completer),
		Tracker:  tracker,
		Version:  "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return env, cleanup
}

func (env *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}
