// Package ai translates a UI-selected mode plus parameters into exactly one
// outbound generative-text request and normalizes the response to plain text.
// The service is stateless between calls: no retries, no caching, no
// streaming. Review comparison never reaches the backend; it is a local
// deterministic heuristic.
package ai

import (
	"context"
	"errors"
)

// Mode selects which prompt template and parameters to use.
type Mode string

const (
	ModeReview  Mode = "review"
	ModeSummary Mode = "summary"
	ModeChat    Mode = "chat"
	ModeCompare Mode = "compare"
)

// Caller-visible error kinds. All three are terminal for the call; a failed
// call must be explicitly retried by the caller if desired.
var (
	ErrTimeout         = errors.New("ai request timed out")
	ErrUpstream        = errors.New("ai upstream request failed")
	ErrInvalidResponse = errors.New("ai response has invalid shape")

	// ErrLocalMode is returned when a mode that is computed locally
	// (compare) is dispatched to the backend by mistake.
	ErrLocalMode = errors.New("mode is computed locally, not dispatched")
)

// BookContext is the book information embedded into prompts. It mirrors the
// book shape the client sends on /api/ai.
type BookContext struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Genre       []string `json:"genre"`
	AISummary   string   `json:"aiSummary"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
}

// Extra carries the mode-specific parameters.
type Extra struct {
	Tone        string `json:"tone,omitempty"`
	SummaryMode string `json:"summaryMode,omitempty"`
	Persona     string `json:"persona,omitempty"`
}

// Request is one dispatch: a mode, book context, and free-text input.
type Request struct {
	Mode      Mode        `json:"mode"`
	Book      BookContext `json:"book"`
	UserInput string      `json:"userInput"`
	Extra     Extra       `json:"extra"`
}

// Completer produces one text completion for a system/user message pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service dispatches requests to a Completer using mode-keyed prompts.
type Service struct {
	completer Completer
}

func NewService(completer Completer) *Service {
	return &Service{completer: completer}
}

// Dispatch builds the prompt for the request's mode and performs exactly one
// backend call, returning the plain-text result.
func (s *Service) Dispatch(ctx context.Context, req Request) (string, error) {
	if req.Mode == ModeCompare {
		return "", ErrLocalMode
	}
	system, user := BuildPrompt(req)
	return s.completer.Complete(ctx, system, user)
}
