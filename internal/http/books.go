package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/VengGaurav/BookReviewAI/internal/audit"
	"github.com/VengGaurav/BookReviewAI/internal/catalog"
	"github.com/VengGaurav/BookReviewAI/internal/database"
	"github.com/VengGaurav/BookReviewAI/internal/entities"
	"github.com/VengGaurav/BookReviewAI/internal/tasks"
)

// TaskAdder enqueues background tasks. Satisfied by the tasks client.
type TaskAdder interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// BooksController serves the merged catalog.
type BooksController struct {
	catalog *catalog.Service
	auditor *audit.Service
	queue   TaskAdder
}

func NewBooksController(catalogService *catalog.Service, auditor *audit.Service, queue TaskAdder) *BooksController {
	return &BooksController{
		catalog: catalogService,
		auditor: auditor,
		queue:   queue,
	}
}

func (controller *BooksController) ListBooks(c *gin.Context) {
	books, err := controller.catalog.ListAll(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) SearchBooks(c *gin.Context) {
	books, err := controller.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) GetBook(c *gin.Context) {
	book, err := controller.catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

type addBookRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	ISBN        string   `json:"isbn"`
	Cover       string   `json:"cover"`
	Pages       int      `json:"pages"`
	PublishYear int      `json:"publishYear"`
	Genre       []string `json:"genre"`
	Description string   `json:"description"`
}

// AddBook persists a custom catalog entry. Missing metadata is filled in the
// background: an enrichment task when the ISBN was left out, and a
// summarization task to precompute the AI summary.
func (controller *BooksController) AddBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Title == "" {
		respondBadRequest(c, "title is required")
		return
	}

	book, err := controller.catalog.AddCustomBook(c.Request.Context(), entities.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Cover:       req.Cover,
		Pages:       req.Pages,
		PublishYear: req.PublishYear,
		Genre:       entities.StringSlice(req.Genre),
		Description: req.Description,
	})
	if err != nil {
		respondInternalError(c, err, "add book")
		return
	}

	if controller.auditor != nil {
		controller.auditor.LogBookAdd(GetUserID(c), book.ExternalID, book.Title)
	}

	if controller.queue != nil {
		pending := []backlite.Task{tasks.SummarizeBookTask{BookID: book.ExternalID}}
		if req.ISBN == "" {
			pending = append(pending, tasks.EnrichBookTask{BookID: book.ExternalID})
		}
		if _, err := controller.queue.Add(pending...).Save(); err != nil {
			log.Printf("Failed to enqueue tasks for book %s: %v", book.ExternalID, err)
		}
	}

	c.JSON(http.StatusCreated, book)
}
