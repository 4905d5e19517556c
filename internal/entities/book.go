package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BookSource identifies where a catalog entry came from.
type BookSource string

const (
	BookSourceFixture BookSource = "fixture" // seeded catalog data
	BookSourceLocal   BookSource = "local"   // user-added custom book
	BookSourceGoogle  BookSource = "google"  // fetched from Google Books
)

// StringSlice stores a list of strings as a JSON text column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringSlice: %T", value)
	}
	if len(data) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(data, s)
}

// Book is a catalog entry. Fixture and custom books are persisted;
// Google Books results are mapped into the same shape on the fly.
type Book struct {
	ID          uint        `gorm:"primaryKey" json:"-"`
	ExternalID  string      `gorm:"uniqueIndex;size:100" json:"id"` // "1", "local:xyz", "gb:volumeId"
	Title       string      `gorm:"size:500" json:"title"`
	Author      string      `gorm:"size:500" json:"author"`
	ISBN        string      `gorm:"size:20" json:"isbn"`
	Cover       string      `gorm:"size:1000" json:"cover"`
	Rating      float64     `json:"rating"`
	Pages       int         `json:"pages"`
	PublishYear int         `json:"publishYear"`
	Genre       StringSlice `gorm:"type:text" json:"genre"`
	Description string      `gorm:"type:text" json:"description"`
	AISummary   string      `gorm:"type:text" json:"aiSummary"`
	Keywords    StringSlice `gorm:"type:text" json:"keywords"`
	Popularity  int         `json:"popularity"`
	Source      BookSource  `gorm:"size:20;index" json:"source"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
