package ask

import "strings"

// SystemPrompt is the fixed instruction sent with every completion request.
const SystemPrompt = "You are a helpful assistant. Answer questions using only the provided text context."

const (
	docBegin = "--- BEGIN DOCUMENT ---"
	docEnd   = "--- END DOCUMENT ---"
)

// composePrompt renders the fixed user-message template: the document verbatim
// between delimiter markers, followed by the question. Pure function; identical
// inputs yield byte-identical output. The document is never truncated, so a
// large upload produces a correspondingly large prompt.
func composePrompt(document, question string) string {
	var b strings.Builder
	b.Grow(len(docBegin) + len(docEnd) + len(document) + len(question) + 16)
	b.WriteString(docBegin)
	b.WriteString("\n")
	b.WriteString(document)
	b.WriteString("\n")
	b.WriteString(docEnd)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
