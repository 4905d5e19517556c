package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/VengGaurav/BookReviewAI/internal/catalog"
	"github.com/VengGaurav/BookReviewAI/internal/database"
	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// EnrichBookTask fills a custom book's metadata gaps from the volumes API.
type EnrichBookTask struct {
	BookID string `json:"book_id"`
}

// Config returns the queue configuration for book enrichment tasks.
func (t EnrichBookTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_book",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichBookProcessor creates a processor function for EnrichBookTask.
// The best volumes match for the book's title and author supplies the
// fields the user left out; filled fields are never overwritten.
func EnrichBookProcessor(db *database.Database, volumes catalog.VolumeProvider) backlite.QueueProcessor[EnrichBookTask] {
	return func(ctx context.Context, task EnrichBookTask) error {
		if volumes == nil {
			return fmt.Errorf("volumes provider not configured")
		}

		book, err := db.GetBookByExternalID(task.BookID)
		if err != nil {
			return fmt.Errorf("load book %s: %w", task.BookID, err)
		}

		query := book.Title
		if book.Author != "" && book.Author != "Unknown" {
			query += " " + book.Author
		}
		matches, err := volumes.Search(ctx, query)
		if err != nil {
			return fmt.Errorf("search volumes for %s: %w", task.BookID, err)
		}
		if len(matches) == 0 {
			log.Printf("[TASK] No volume match for book %s (%s)", task.BookID, book.Title)
			return nil
		}

		fields := buildUpdates(book, &matches[0])
		if err := db.UpdateBookMetadata(task.BookID, fields); err != nil {
			return fmt.Errorf("update book %s: %w", task.BookID, err)
		}

		log.Printf("[TASK] Enriched book %s (%s)", task.BookID, book.Title)
		return nil
	}
}

// buildUpdates keeps only the fields the stored book is missing.
func buildUpdates(book, match *entities.Book) database.BookUpdateFields {
	fields := database.BookUpdateFields{}
	if book.ISBN == "" && match.ISBN != "" {
		fields.ISBN = &match.ISBN
	}
	if match.Pages > 0 && book.Pages == 250 {
		fields.Pages = &match.Pages
	}
	if match.PublishYear > 0 && book.PublishYear == time.Now().Year() {
		fields.PublishYear = &match.PublishYear
	}
	if match.Description != "" && book.Description == "No description available." {
		fields.Description = &match.Description
	}
	return fields
}

// NewEnrichBookQueue creates a backlite queue for book enrichment tasks.
func NewEnrichBookQueue(db *database.Database, volumes catalog.VolumeProvider) backlite.Queue {
	return backlite.NewQueue(EnrichBookProcessor(db, volumes))
}
