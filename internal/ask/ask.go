// Package ask implements the question-answering pipeline: validate the
// submission, compose the prompt, call the completion provider, map the
// response. Every entity is request-scoped; nothing is persisted.
package ask

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"docask/internal/llm"
)

// Document is an uploaded file, fully buffered in memory before the pipeline
// runs. MediaType is the caller-declared value, not a sniffed one.
type Document struct {
	Filename  string
	MediaType string
	Content   []byte
}

// Submission bundles one inbound request: a question, a document, and an
// optional model selector.
type Submission struct {
	Question string
	Document Document
	Model    string
}

// Service runs the pipeline. Construct it once per process with the provider
// client injected; it holds no per-request state and is safe for concurrent use.
type Service struct {
	llm           llm.Client
	log           *slog.Logger
	maxUploadSize int64
	defaultModel  string
}

func NewService(client llm.Client, log *slog.Logger, maxUploadSize int64, defaultModel string) *Service {
	return &Service{
		llm:           client,
		log:           log,
		maxUploadSize: maxUploadSize,
		defaultModel:  defaultModel,
	}
}

// Ask takes a submission through Validate, Compose, Call, and Map, returning
// the trimmed answer text or a pipeline *Error. It short-circuits at the first
// failure; the provider is never called for an invalid submission.
func (s *Service) Ask(ctx context.Context, sub Submission) (string, error) {
	if err := s.validate(sub); err != nil {
		return "", err
	}

	if !utf8.Valid(sub.Document.Content) {
		return "", IO("document is not valid UTF-8 text", nil)
	}
	prompt := composePrompt(string(sub.Document.Content), strings.TrimSpace(sub.Question))

	model := sub.Model
	if model == "" {
		model = s.defaultModel
	}

	s.log.Debug("calling completion provider", "model", model, "prompt_bytes", len(prompt))
	raw, err := s.llm.Complete(ctx, model, SystemPrompt, prompt)
	if err != nil {
		return "", Upstream(err.Error(), err)
	}

	answer := strings.TrimSpace(raw)
	if answer == "" {
		return "", Upstream("empty response from completion provider", nil)
	}
	return answer, nil
}
