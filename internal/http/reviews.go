package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VengGaurav/BookReviewAI/internal/database"
)

// ReviewsController serves the per-book free-text review log.
type ReviewsController struct {
	db *database.Database
}

func NewReviewsController(db *database.Database) *ReviewsController {
	return &ReviewsController{db: db}
}

func (controller *ReviewsController) ListReviews(c *gin.Context) {
	reviews, err := controller.db.ListReviews(GetUserID(c), c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "list reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

type addReviewRequest struct {
	Text string `json:"text"`
}

// AddReview appends a review to a book's log. Blank text is dropped without
// error, mirroring the client's behavior.
func (controller *ReviewsController) AddReview(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	review, err := controller.db.AddReview(GetUserID(c), c.Param("id"), req.Text)
	if err != nil {
		respondInternalError(c, err, "add review")
		return
	}
	if review == nil {
		respondBadRequest(c, "review text is required")
		return
	}

	c.JSON(http.StatusCreated, review)
}
