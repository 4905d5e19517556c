package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(text string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": text}},
		},
	})
	return string(body)
}

func TestOpenAIClient_Complete(t *testing.T) {
	t.Run("returns trimmed completion text", func(t *testing.T) {
		var got chatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionBody("  A fine book.  ")))
		}))
		defer server.Close()

		client := NewOpenAIClient(server.URL, "test-key", "test-model", time.Second)
		text, err := client.Complete(context.Background(), "system prompt", "user prompt")

		require.NoError(t, err)
		assert.Equal(t, "A fine book.", text)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, "system prompt", got.Messages[0].Content)
		assert.Equal(t, "user", got.Messages[1].Role)
		assert.Equal(t, "test-model", got.Model)
	})

	t.Run("sends bearer token when configured", func(t *testing.T) {
		var auth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			w.Write([]byte(completionBody("ok")))
		}))
		defer server.Close()

		client := NewOpenAIClient(server.URL, "secret", "m", time.Second)
		_, err := client.Complete(context.Background(), "s", "u")

		require.NoError(t, err)
		assert.Equal(t, "Bearer secret", auth)
	})

	t.Run("times out with ErrTimeout rather than hanging", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		client := NewOpenAIClient(server.URL, "", "m", 50*time.Millisecond)

		start := time.Now()
		_, err := client.Complete(context.Background(), "s", "u")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTimeout)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("non-2xx maps to ErrUpstream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewOpenAIClient(server.URL, "", "m", time.Second)
		_, err := client.Complete(context.Background(), "s", "u")

		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("unreachable server maps to ErrUpstream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // refuse connections

		client := NewOpenAIClient(server.URL, "", "m", time.Second)
		_, err := client.Complete(context.Background(), "s", "u")

		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("missing text content maps to ErrInvalidResponse", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": []}`))
		}))
		defer server.Close()

		client := NewOpenAIClient(server.URL, "", "m", time.Second)
		_, err := client.Complete(context.Background(), "s", "u")

		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("null content maps to ErrInvalidResponse", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": [{"message": {"content": null}}]}`))
		}))
		defer server.Close()

		client := NewOpenAIClient(server.URL, "", "m", time.Second)
		_, err := client.Complete(context.Background(), "s", "u")

		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("malformed body maps to ErrInvalidResponse", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewOpenAIClient(server.URL, "", "m", time.Second)
		_, err := client.Complete(context.Background(), "s", "u")

		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestService_Dispatch(t *testing.T) {
	t.Run("dispatches prompt and returns completion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("X")))
		}))
		defer server.Close()

		service := NewService(NewOpenAIClient(server.URL, "", "m", time.Second))
		text, err := service.Dispatch(context.Background(), Request{
			Mode:  ModeSummary,
			Book:  testBook(),
			Extra: Extra{SummaryMode: "bullet"},
		})

		require.NoError(t, err)
		assert.Equal(t, "X", text)
	})

	t.Run("compare is never sent to the backend", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.Write([]byte(completionBody("X")))
		}))
		defer server.Close()

		service := NewService(NewOpenAIClient(server.URL, "", "m", time.Second))
		_, err := service.Dispatch(context.Background(), Request{Mode: ModeCompare})

		assert.ErrorIs(t, err, ErrLocalMode)
		assert.False(t, called)
	})
}
