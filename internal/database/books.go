package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

var ErrBookNotFound = errors.New("book not found")

// ListBooks returns the persisted catalog: custom books first (newest at the
// top), then the fixture set.
func (d *Database) ListBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := d.DB.
		Order("CASE source WHEN 'local' THEN 0 ELSE 1 END, created_at DESC").
		Find(&books).Error
	return books, err
}

// GetBookByExternalID fetches a single catalog entry by its public ID.
func (d *Database) GetBookByExternalID(externalID string) (*entities.Book, error) {
	var book entities.Book
	err := d.DB.Where("external_id = ?", externalID).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook persists a new custom book entry.
func (d *Database) CreateBook(book *entities.Book) error {
	return d.DB.Create(book).Error
}

// BookUpdateFields contains the fields that can be updated via enrichment.
type BookUpdateFields struct {
	ISBN        *string
	Cover       *string
	Pages       *int
	PublishYear *int
	Description *string
	Genre       *entities.StringSlice
}

// UpdateBookMetadata applies enrichment updates to a book. Only non-nil
// fields are written.
func (d *Database) UpdateBookMetadata(externalID string, fields BookUpdateFields) error {
	updates := map[string]any{}
	if fields.ISBN != nil {
		updates["isbn"] = *fields.ISBN
	}
	if fields.Cover != nil {
		updates["cover"] = *fields.Cover
	}
	if fields.Pages != nil {
		updates["pages"] = *fields.Pages
	}
	if fields.PublishYear != nil {
		updates["publish_year"] = *fields.PublishYear
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Genre != nil {
		updates["genre"] = *fields.Genre
	}
	if len(updates) == 0 {
		return nil
	}
	return d.DB.Model(&entities.Book{}).
		Where("external_id = ?", externalID).
		Updates(updates).Error
}

// UpdateBookAISummary caches a generated summary on the book row.
func (d *Database) UpdateBookAISummary(externalID, summary string) error {
	return d.DB.Model(&entities.Book{}).
		Where("external_id = ?", externalID).
		Update("ai_summary", summary).Error
}

// GetBooksMissingMetadata returns custom books with gaps an enrichment pass
// could fill. Normalization backfills cover and description with placeholders,
// so a missing ISBN is the reliable signal.
func (d *Database) GetBooksMissingMetadata() ([]entities.Book, error) {
	var books []entities.Book
	err := d.DB.
		Where("source = ?", entities.BookSourceLocal).
		Where("isbn = ''").
		Find(&books).Error
	return books, err
}
