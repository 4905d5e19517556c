package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareReviews(t *testing.T) {
	t.Run("identical inputs produce identical scores", func(t *testing.T) {
		book := testBook()
		review := "Loved the pacing and the premise, though the middle sagged a bit."

		first := CompareReviews(book, review)
		second := CompareReviews(book, review)

		assert.Equal(t, first, second)
	})

	t.Run("scores stay within their caps", func(t *testing.T) {
		reviews := []string{
			"",
			"ok",
			"A moderately long review that says quite a lot about the book in question.",
			string(make([]byte, 500)),
		}
		for _, review := range reviews {
			result := CompareReviews(testBook(), review)
			assert.GreaterOrEqual(t, result.Similarity, 40)
			assert.LessOrEqual(t, result.Similarity, 90)
			assert.GreaterOrEqual(t, result.OriginalityScore, 65)
			assert.LessOrEqual(t, result.OriginalityScore, 95)
		}
	})

	t.Run("empty review is treated as length one", func(t *testing.T) {
		empty := CompareReviews(testBook(), "")
		one := CompareReviews(testBook(), "x")

		assert.Equal(t, one.Similarity, empty.Similarity)
		assert.Equal(t, one.OriginalityScore, empty.OriginalityScore)
	})

	t.Run("first keyword lands in the common points", func(t *testing.T) {
		result := CompareReviews(testBook(), "Great book.")

		assert.Contains(t, result.CommonPoints[0], "life choices")
	})

	t.Run("missing keywords fall back to a generic theme", func(t *testing.T) {
		result := CompareReviews(BookContext{Title: "Untitled"}, "Great book.")

		assert.Contains(t, result.CommonPoints[0], "the main theme")
	})

	t.Run("always returns three fixed categories", func(t *testing.T) {
		result := CompareReviews(testBook(), "Great book.")

		assert.Len(t, result.UniquePoints, 2)
		assert.Len(t, result.CommonPoints, 2)
		assert.Len(t, result.Contradictions, 1)
	})
}
