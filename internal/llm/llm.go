package llm

import "context"

// Client is a minimal completion interface to allow pluggable providers.
type Client interface {
	// Complete sends one system and one user message to the provider and
	// returns the first choice's content untrimmed. A response with no
	// choices yields "" with a nil error; the caller decides what an empty
	// answer means.
	Complete(ctx context.Context, model, system, user string) (string, error)
}
