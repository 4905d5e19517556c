package ai

import (
	"fmt"
	"strings"
)

// Parameter defaults per mode.
const (
	DefaultTone        = "balanced"
	DefaultSummaryMode = "30-second"
	DefaultPersona     = "assistant"
)

// systemBase frames every prompt the app sends.
const systemBase = "You are an AI assistant for a personal reading app. " +
	"Respond clearly in plain text, without markdown, and keep answers concise and helpful."

// BuildPrompt assembles the system instruction and user message for a
// request. Unknown modes fall back to a generic passthrough: base framing
// only, user input verbatim.
func BuildPrompt(req Request) (system, user string) {
	book := req.Book
	title := book.Title
	if title == "" {
		title = "the book"
	}
	author := book.Author
	if author == "" {
		author = "the author"
	}

	switch req.Mode {
	case ModeReview:
		tone := req.Extra.Tone
		if tone == "" {
			tone = DefaultTone
		}
		system = fmt.Sprintf(
			"%s Write a short, reader-friendly review for %q by %s. "+
				"Tone should be %s, practical, and suitable for a reading dashboard.",
			systemBase, title, author, tone)
		user = fmt.Sprintf(
			"Book info:\nTitle: %s\nAuthor: %s\nGenre: %s\nSummary: %s\nKeywords: %s",
			title, author,
			strings.Join(book.Genre, ", "),
			book.AISummary,
			strings.Join(book.Keywords, ", "))

	case ModeSummary:
		summaryMode := req.Extra.SummaryMode
		if summaryMode == "" {
			summaryMode = DefaultSummaryMode
		}
		system = fmt.Sprintf(
			"%s Generate a summary of %q by %s. "+
				"Style: %s (e.g. 30-second, chapter-wise, bullet, explain like I'm 10).",
			systemBase, title, author, summaryMode)
		existing := book.AISummary
		if existing == "" {
			existing = "none"
		}
		user = fmt.Sprintf(
			"Book info:\nTitle: %s\nAuthor: %s\nExisting AI summary (if any): %s\nUser prefers mode: %s",
			title, author, existing, summaryMode)

	case ModeChat:
		persona := req.Extra.Persona
		if persona == "" {
			persona = DefaultPersona
		}
		system = fmt.Sprintf(
			"%s Answer as a helpful assistant talking about the book. "+
				"Persona: %s (e.g. author, character, critic). Avoid roleplay theatrics; focus on clarity.",
			systemBase, persona)
		description := book.AISummary
		if description == "" {
			description = book.Description
		}
		user = fmt.Sprintf(
			"Book: %q by %s\nShort description: %s\n\nUser question: %s",
			title, author, description, req.UserInput)

	default:
		system = systemBase
		user = req.UserInput
	}

	return system, user
}
