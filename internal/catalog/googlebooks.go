package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/VengGaurav/BookReviewAI/internal/entities"
)

// GoogleIDPrefix marks catalog IDs that refer to Google Books volumes.
const GoogleIDPrefix = "gb:"

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// GoogleBooksClient fetches volumes from the Google Books API.
type GoogleBooksClient struct {
	httpClient  *http.Client
	baseURL     string
	maxResults  int
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewGoogleBooksClient creates a Google Books API client with rate limiting.
func NewGoogleBooksClient(baseURL string, maxResults int) *GoogleBooksClient {
	if maxResults <= 0 {
		maxResults = 20
	}
	return &GoogleBooksClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		maxResults:  maxResults,
		rateLimiter: newRateLimiter(200 * time.Millisecond),
	}
}

// Search queries volumes by free text and maps the items into the local
// book shape.
func (c *GoogleBooksClient) Search(ctx context.Context, query string) ([]entities.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	c.rateLimiter.wait()

	searchURL := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d",
		c.baseURL, url.QueryEscape(query), c.maxResults)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "BookReviewAI/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search volumes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result googleVolumeList
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	books := make([]entities.Book, 0, len(result.Items))
	for _, item := range result.Items {
		books = append(books, volumeToBook(item))
	}
	return books, nil
}

// GetVolume fetches a single volume by its Google Books ID (without the
// "gb:" prefix).
func (c *GoogleBooksClient) GetVolume(ctx context.Context, volumeID string) (*entities.Book, error) {
	if volumeID == "" {
		return nil, fmt.Errorf("volume ID is required")
	}

	c.rateLimiter.wait()

	volumeURL := fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(volumeID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, volumeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "BookReviewAI/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch volume: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("volume not found: %s", volumeID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var item googleVolume
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decode volume response: %w", err)
	}

	book := volumeToBook(item)
	return &book, nil
}

// volumeToBook maps one API item into the normalized local book shape.
func volumeToBook(item googleVolume) entities.Book {
	info := item.VolumeInfo

	book := entities.Book{
		ExternalID: GoogleIDPrefix + item.ID,
		Title:      info.Title,
		Author:     strings.Join(info.Authors, ", "),
		Source:     entities.BookSourceGoogle,
	}

	if len(info.IndustryIdentifiers) > 0 {
		book.ISBN = info.IndustryIdentifiers[0].Identifier
	}

	cover := info.ImageLinks.Thumbnail
	if cover == "" {
		cover = info.ImageLinks.SmallThumbnail
	}
	book.Cover = strings.Replace(cover, "http://", "https://", 1)

	book.Rating = info.AverageRating
	book.Pages = info.PageCount

	if len(info.PublishedDate) >= 4 {
		if year, err := strconv.Atoi(info.PublishedDate[:4]); err == nil {
			book.PublishYear = year
		}
	}

	categories := info.Categories
	if len(categories) > 3 {
		categories = categories[:3]
	}
	book.Genre = entities.StringSlice(categories)

	book.Description = htmlTagPattern.ReplaceAllString(info.Description, "")

	return Normalize(book)
}

// Google Books API response types

type googleVolumeList struct {
	Items []googleVolume `json:"items"`
}

type googleVolume struct {
	ID         string           `json:"id"`
	VolumeInfo googleVolumeInfo `json:"volumeInfo"`
}

type googleVolumeInfo struct {
	Title               string             `json:"title"`
	Authors             []string           `json:"authors"`
	IndustryIdentifiers []googleIdentifier `json:"industryIdentifiers"`
	ImageLinks          googleImageLinks   `json:"imageLinks"`
	AverageRating       float64            `json:"averageRating"`
	PageCount           int                `json:"pageCount"`
	PublishedDate       string             `json:"publishedDate"`
	Categories          []string           `json:"categories"`
	Description         string             `json:"description"`
}

type googleIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type googleImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}
