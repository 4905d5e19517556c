package catalog

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/VengGaurav/BookReviewAI/internal/database"
	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// LocalIDPrefix marks user-added custom books.
const LocalIDPrefix = "local:"

// VolumeProvider is the external catalog the service searches against.
type VolumeProvider interface {
	Search(ctx context.Context, query string) ([]entities.Book, error)
	GetVolume(ctx context.Context, volumeID string) (*entities.Book, error)
}

// Service merges the persisted catalog (fixtures plus custom entries) with
// live results from the external volumes API.
type Service struct {
	db      *database.Database
	volumes VolumeProvider
}

func NewService(db *database.Database, volumes VolumeProvider) *Service {
	return &Service{db: db, volumes: volumes}
}

// ListAll returns the persisted catalog, custom books first.
func (s *Service) ListAll(ctx context.Context) ([]entities.Book, error) {
	return s.db.ListBooks()
}

// Search prefers the external API, merging its results with the local
// catalog (local entries win on ID collisions). When the API is down the
// search degrades to a substring filter over the local catalog.
func (s *Service) Search(ctx context.Context, query string) ([]entities.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListAll(ctx)
	}

	local, err := s.db.ListBooks()
	if err != nil {
		return nil, err
	}

	external, err := s.volumes.Search(ctx, query)
	if err != nil {
		log.Printf("Book search fell back to local catalog: %v", err)
		return filterBooks(local, query), nil
	}

	return mergeBooks(external, local), nil
}

// GetByID looks a book up locally first; "gb:" IDs not in the catalog are
// fetched straight from the volumes API.
func (s *Service) GetByID(ctx context.Context, id string) (*entities.Book, error) {
	book, err := s.db.GetBookByExternalID(id)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, database.ErrBookNotFound) {
		return nil, err
	}

	if volumeID, ok := strings.CutPrefix(id, GoogleIDPrefix); ok {
		fetched, err := s.volumes.GetVolume(ctx, volumeID)
		if err != nil {
			return nil, database.ErrBookNotFound
		}
		return fetched, nil
	}

	return nil, database.ErrBookNotFound
}

// AddCustomBook normalizes and persists a user-added entry.
func (s *Service) AddCustomBook(ctx context.Context, input entities.Book) (*entities.Book, error) {
	input.ID = 0
	input.ExternalID = LocalIDPrefix + strconv.FormatInt(time.Now().UnixMilli(), 36)
	input.Source = entities.BookSourceLocal
	book := Normalize(input)

	if err := s.db.CreateBook(&book); err != nil {
		return nil, err
	}
	return &book, nil
}

// mergeBooks interleaves external results with the local catalog, deduping
// by ID. External ordering is kept, but the local copy of a book wins.
func mergeBooks(external, local []entities.Book) []entities.Book {
	localByID := make(map[string]entities.Book, len(local))
	for _, b := range local {
		localByID[b.ExternalID] = b
	}

	merged := make([]entities.Book, 0, len(external)+len(local))
	seen := make(map[string]bool, len(external))
	for _, b := range external {
		if localCopy, ok := localByID[b.ExternalID]; ok {
			b = localCopy
		}
		merged = append(merged, b)
		seen[b.ExternalID] = true
	}
	for _, b := range local {
		if !seen[b.ExternalID] {
			merged = append(merged, b)
		}
	}
	return merged
}

// filterBooks is the offline fallback: case-insensitive substring match on
// title, author, or genre.
func filterBooks(books []entities.Book, query string) []entities.Book {
	lower := strings.ToLower(query)
	matched := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), lower) ||
			strings.Contains(strings.ToLower(b.Author), lower) ||
			genreMatches(b.Genre, lower) {
			matched = append(matched, b)
		}
	}
	return matched
}

func genreMatches(genres entities.StringSlice, lower string) bool {
	for _, g := range genres {
		if strings.Contains(strings.ToLower(g), lower) {
			return true
		}
	}
	return false
}
