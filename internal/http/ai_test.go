package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VengGaurav/BookReviewAI/internal/ai"
)

func aiBody(mode string) map[string]any {
	return map[string]any{
		"mode": mode,
		"book": map[string]any{
			"title":    "The Midnight Library",
			"author":   "Matt Haig",
			"keywords": []string{"life choices", "hope"},
		},
		"userInput": "Loved the premise, the middle dragged a little.",
	}
}

func TestAIEndpoint(t *testing.T) {
	t.Run("missing mode is rejected", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		body := aiBody("")
		w := env.request(t, http.MethodPost, "/api/ai", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "mode is required")
	})

	t.Run("missing book is rejected", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		w := env.request(t, http.MethodPost, "/api/ai", map[string]any{"mode": "review"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "book is required")
	})

	t.Run("successful dispatch returns the text", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		env.completer.text = "A thoughtful review."
		w := env.request(t, http.MethodPost, "/api/ai", aiBody("review"))

		require.Equal(t, http.StatusOK, w.Code)

		var resp aiResponse
		decodeJSON(t, w, &resp)
		assert.Equal(t, "A thoughtful review.", resp.Text)
	})

	t.Run("timeout maps to 504", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		env.completer.err = ai.ErrTimeout
		w := env.request(t, http.MethodPost, "/api/ai", aiBody("chat"))

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})

	t.Run("upstream failure maps to 502", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		env.completer.err = ai.ErrUpstream
		w := env.request(t, http.MethodPost, "/api/ai", aiBody("summary"))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("invalid response shape maps to 502", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		env.completer.err = ai.ErrInvalidResponse
		w := env.request(t, http.MethodPost, "/api/ai", aiBody("summary"))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("compare is answered locally", func(t *testing.T) {
		env, cleanup := setupTestRouter(t)
		defer cleanup()

		env.completer.err = ai.ErrUpstream // backend down must not matter
		w := env.request(t, http.MethodPost, "/api/ai", aiBody("compare"))

		require.Equal(t, http.StatusOK, w.Code)

		var resp ai.Comparison
		decodeJSON(t, w, &resp)
		assert.GreaterOrEqual(t, resp.Similarity, 40)
		assert.LessOrEqual(t, resp.Similarity, 90)
		assert.Contains(t, resp.CommonPoints[0], "life choices")
	})
}
