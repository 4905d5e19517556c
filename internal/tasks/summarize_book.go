package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/VengGaurav/BookReviewAI/internal/ai"
	"github.com/VengGaurav/BookReviewAI/internal/database"
)

// SummarizeBookTask precomputes and caches a book's AI summary so the detail
// view does not have to wait on the backend.
type SummarizeBookTask struct {
	BookID string `json:"book_id"`
}

// Config returns the queue configuration for summarization tasks.
func (t SummarizeBookTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "summarize_book",
		MaxAttempts: 3,
		Backoff:     1 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SummarizeBookProcessor creates a processor function for SummarizeBookTask.
// Books that already carry a summary are skipped.
func SummarizeBookProcessor(db *database.Database, dispatcher *ai.Service) backlite.QueueProcessor[SummarizeBookTask] {
	return func(ctx context.Context, task SummarizeBookTask) error {
		if dispatcher == nil {
			return fmt.Errorf("ai dispatcher not configured")
		}

		book, err := db.GetBookByExternalID(task.BookID)
		if err != nil {
			return fmt.Errorf("load book %s: %w", task.BookID, err)
		}
		if book.AISummary != "" {
			return nil
		}

		summary, err := dispatcher.Dispatch(ctx, ai.Request{
			Mode: ai.ModeSummary,
			Book: ai.BookContext{
				Title:       book.Title,
				Author:      book.Author,
				Genre:       []string(book.Genre),
				Keywords:    []string(book.Keywords),
				Description: book.Description,
			},
		})
		if err != nil {
			return fmt.Errorf("summarize book %s: %w", task.BookID, err)
		}

		if err := db.UpdateBookAISummary(task.BookID, summary); err != nil {
			return fmt.Errorf("cache summary for %s: %w", task.BookID, err)
		}

		log.Printf("[TASK] Cached summary for book %s (%s)", task.BookID, book.Title)
		return nil
	}
}

// NewSummarizeBookQueue creates a backlite queue for summarization tasks.
func NewSummarizeBookQueue(db *database.Database, dispatcher *ai.Service) backlite.Queue {
	return backlite.NewQueue(SummarizeBookProcessor(db, dispatcher))
}
