package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

const volumeListJSON = `{
	"items": [
		{
			"id": "zyTCAlFPjgYC",
			"volumeInfo": {
				"title": "The Google Story",
				"authors": ["David A. Vise", "Mark Malseed"],
				"industryIdentifiers": [
					{"type": "ISBN_13", "identifier": "9780553804577"}
				],
				"imageLinks": {
					"thumbnail": "http://books.google.com/thumb.jpg",
					"smallThumbnail": "http://books.google.com/small.jpg"
				},
				"averageRating": 3.5,
				"pageCount": 207,
				"publishedDate": "2005-11-15",
				"categories": ["Business", "Technology", "Biography", "History"],
				"description": "<p>The <b>definitive</b> account.</p>"
			}
		},
		{
			"id": "bare",
			"volumeInfo": {"title": "Bare Volume"}
		}
	]
}`

func newGoogleTestServer(t *testing.T, handler http.HandlerFunc) *GoogleBooksClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewGoogleBooksClient(server.URL, 20)
	client.rateLimiter = newRateLimiter(0)
	return client
}

func TestGoogleBooksClient_Search(t *testing.T) {
	t.Run("maps volume items into the local book shape", func(t *testing.T) {
		var gotPath string
		client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path + "?" + r.URL.RawQuery
			w.Write([]byte(volumeListJSON))
		})

		books, err := client.Search(context.Background(), "google story")
		require.NoError(t, err)
		require.Len(t, books, 2)

		assert.Contains(t, gotPath, "/volumes?q=google+story&maxResults=20")

		book := books[0]
		assert.Equal(t, "gb:zyTCAlFPjgYC", book.ExternalID)
		assert.Equal(t, "The Google Story", book.Title)
		assert.Equal(t, "David A. Vise, Mark Malseed", book.Author)
		assert.Equal(t, "9780553804577", book.ISBN)
		assert.Equal(t, "https://books.google.com/thumb.jpg", book.Cover)
		assert.Equal(t, 3.5, book.Rating)
		assert.Equal(t, 207, book.Pages)
		assert.Equal(t, 2005, book.PublishYear)
		assert.Equal(t, entities.StringSlice{"Business", "Technology", "Biography"}, book.Genre)
		assert.Equal(t, "The definitive account.", book.Description)
		assert.Equal(t, entities.BookSourceGoogle, book.Source)
	})

	t.Run("sparse volumes get normalized defaults", func(t *testing.T) {
		client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(volumeListJSON))
		})

		books, err := client.Search(context.Background(), "anything")
		require.NoError(t, err)

		bare := books[1]
		assert.Equal(t, "gb:bare", bare.ExternalID)
		assert.Equal(t, "Unknown", bare.Author)
		assert.Equal(t, 4.2, bare.Rating)
		assert.Equal(t, 250, bare.Pages)
		assert.Equal(t, entities.StringSlice{"General"}, bare.Genre)
		assert.Equal(t, "No description available.", bare.Description)
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("should not call the API")
		})

		_, err := client.Search(context.Background(), "   ")
		assert.Error(t, err)
	})

	t.Run("non-200 surfaces an error", func(t *testing.T) {
		client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		})

		_, err := client.Search(context.Background(), "anything")
		assert.Error(t, err)
	})
}

func TestGoogleBooksClient_GetVolume(t *testing.T) {
	t.Run("fetches and maps a single volume", func(t *testing.T) {
		client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/volumes/zyTCAlFPjgYC", r.URL.Path)
			w.Write([]byte(`{
				"id": "zyTCAlFPjgYC",
				"volumeInfo": {"title": "The Google Story", "authors": ["David A. Vise"]}
			}`))
		})

		book, err := client.GetVolume(context.Background(), "zyTCAlFPjgYC")
		require.NoError(t, err)
		assert.Equal(t, "gb:zyTCAlFPjgYC", book.ExternalID)
		assert.Equal(t, "David A. Vise", book.Author)
	})

	t.Run("missing volume surfaces an error", func(t *testing.T) {
		client := newGoogleTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		_, err := client.GetVolume(context.Background(), "nope")
		assert.Error(t, err)
	})
}
