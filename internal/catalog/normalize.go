package catalog

import (
	"time"

	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// defaultCover is shown for books without artwork of their own.
const defaultCover = "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400&h=600&fit=crop"

// Normalize fills the gaps in a book so every catalog entry carries the full
// shape the UI expects.
func Normalize(book entities.Book) entities.Book {
	if book.Title == "" {
		book.Title = "Untitled"
	}
	if book.Author == "" {
		book.Author = "Unknown"
	}
	if book.Cover == "" {
		book.Cover = defaultCover
	}
	if book.Rating == 0 {
		book.Rating = 4.2
	}
	if book.Pages == 0 {
		book.Pages = 250
	}
	if book.PublishYear == 0 {
		book.PublishYear = time.Now().Year()
	}
	if len(book.Genre) == 0 {
		book.Genre = entities.StringSlice{"General"}
	}
	if book.Description == "" {
		book.Description = "No description available."
	}
	if book.Popularity == 0 {
		book.Popularity = 70
	}
	return book
}
