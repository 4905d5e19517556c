package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VengGaurav/BookReviewAI/internal/ai"
	"github.com/VengGaurav/BookReviewAI/internal/audit"
)

// AIController handles generative-text requests from the client.
type AIController struct {
	dispatcher *ai.Service
	auditor    *audit.Service
}

func NewAIController(dispatcher *ai.Service, auditor *audit.Service) *AIController {
	return &AIController{
		dispatcher: dispatcher,
		auditor:    auditor,
	}
}

type aiRequest struct {
	Mode      ai.Mode         `json:"mode"`
	Book      *ai.BookContext `json:"book"`
	UserInput string          `json:"userInput"`
	Extra     ai.Extra        `json:"extra"`
}

type aiResponse struct {
	Text string `json:"text"`
}

// Generate is the single AI endpoint. Comparison is answered locally; every
// other mode performs one backend call.
func (controller *AIController) Generate(c *gin.Context) {
	var req aiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Mode == "" {
		respondBadRequest(c, "mode is required")
		return
	}
	if req.Book == nil {
		respondBadRequest(c, "book is required")
		return
	}

	userID := GetUserID(c)
	bookID := c.Query("bookId")

	if req.Mode == ai.ModeCompare {
		result := ai.CompareReviews(*req.Book, req.UserInput)
		if controller.auditor != nil {
			controller.auditor.LogAIDispatch(userID, string(req.Mode), bookID, nil)
		}
		c.JSON(http.StatusOK, result)
		return
	}

	text, err := controller.dispatcher.Dispatch(c.Request.Context(), ai.Request{
		Mode:      req.Mode,
		Book:      *req.Book,
		UserInput: req.UserInput,
		Extra:     req.Extra,
	})

	if controller.auditor != nil {
		controller.auditor.LogAIDispatch(userID, string(req.Mode), bookID, err)
	}

	switch {
	case err == nil:
		c.JSON(http.StatusOK, aiResponse{Text: text})
	case errors.Is(err, ai.ErrTimeout):
		respondError(c, http.StatusGatewayTimeout, "ai request timed out")
	case errors.Is(err, ai.ErrUpstream), errors.Is(err, ai.ErrInvalidResponse):
		respondError(c, http.StatusBadGateway, "ai backend unavailable")
	default:
		respondInternalError(c, err, "ai dispatch")
	}
}
