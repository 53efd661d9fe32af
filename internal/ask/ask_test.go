package ask

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docask/internal/llm"
)

func newTestService(client llm.Client) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(client, log, 1024*1024, "gpt-4o-mini")
}

func markdownDoc(content string) Document {
	return Document{
		Filename:  "doc.md",
		MediaType: "text/markdown",
		Content:   []byte(content),
	}
}

func TestAskPipeline(t *testing.T) {
	tests := []struct {
		name        string
		sub         Submission
		setup       func(*llm.MockClient)
		wantAnswer  string
		wantKind    Kind
		wantMessage string // substring of the client-facing message
	}{
		{
			name: "successful ask",
			sub: Submission{
				Question: "What does this do?",
				Document: markdownDoc("# Title\nBody text."),
			},
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, "gpt-4o-mini", SystemPrompt, mock.Anything).
					Return("It does X.", nil).Once()
			},
			wantAnswer: "It does X.",
		},
		{
			name: "answer is trimmed",
			sub: Submission{
				Question: "What does this do?",
				Document: markdownDoc("content"),
			},
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, "gpt-4o-mini", SystemPrompt, mock.Anything).
					Return("\n  It does X.  \n", nil).Once()
			},
			wantAnswer: "It does X.",
		},
		{
			name: "caller-selected model is passed through",
			sub: Submission{
				Question: "What does this do?",
				Document: markdownDoc("content"),
				Model:    "gpt-4.1",
			},
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, "gpt-4.1", SystemPrompt, mock.Anything).
					Return("ok", nil).Once()
			},
			wantAnswer: "ok",
		},
		{
			name:        "missing question",
			sub:         Submission{Question: "", Document: markdownDoc("content")},
			wantKind:    KindValidation,
			wantMessage: "question is required",
		},
		{
			name:        "whitespace-only question",
			sub:         Submission{Question: "   \n\t", Document: markdownDoc("content")},
			wantKind:    KindValidation,
			wantMessage: "question is required",
		},
		{
			name:        "missing document",
			sub:         Submission{Question: "What does this do?"},
			wantKind:    KindValidation,
			wantMessage: "document file is required",
		},
		{
			name: "unsupported media type",
			sub: Submission{
				Question: "What does this do?",
				Document: Document{Filename: "doc.pdf", MediaType: "application/pdf", Content: []byte("%PDF")},
			},
			wantKind:    KindUpload,
			wantMessage: "application/pdf",
		},
		{
			name: "media type with charset parameter is accepted",
			sub: Submission{
				Question: "What does this do?",
				Document: Document{Filename: "doc.md", MediaType: "text/markdown; charset=utf-8", Content: []byte("content")},
			},
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, "gpt-4o-mini", SystemPrompt, mock.Anything).
					Return("ok", nil).Once()
			},
			wantAnswer: "ok",
		},
		{
			name: "file too large",
			sub: Submission{
				Question: "What does this do?",
				Document: markdownDoc(strings.Repeat("a", 2*1024*1024)),
			},
			wantKind:    KindUpload,
			wantMessage: "file too large",
		},
		{
			name: "invalid UTF-8 document",
			sub: Submission{
				Question: "What does this do?",
				Document: Document{Filename: "doc.md", MediaType: "text/markdown", Content: []byte{0xff, 0xfe, 0xfd}},
			},
			wantKind:    KindIO,
			wantMessage: "not valid UTF-8",
		},
		{
			name: "provider error",
			sub: Submission{
				Question: "What does this do?",
				Document: markdownDoc("content"),
			},
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, "gpt-4o-mini", SystemPrompt, mock.Anything).
					Return("", errors.New("401 invalid api key")).Once()
			},
			wantKind:    KindUpstream,
			wantMessage: "invalid api key",
		},
		{
			name: "empty provider response",
			sub: Submission{
				Question: "What does this do?",
				Document: markdownDoc("content"),
			},
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, "gpt-4o-mini", SystemPrompt, mock.Anything).
					Return("", nil).Once()
			},
			wantKind:    KindUpstream,
			wantMessage: "empty response",
		},
		{
			name: "whitespace-only provider response",
			sub: Submission{
				Question: "What does this do?",
				Document: markdownDoc("content"),
			},
			setup: func(l *llm.MockClient) {
				l.On("Complete", mock.Anything, "gpt-4o-mini", SystemPrompt, mock.Anything).
					Return("  \n\t ", nil).Once()
			},
			wantKind:    KindUpstream,
			wantMessage: "empty response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLLM := new(llm.MockClient)
			if tt.setup != nil {
				tt.setup(mockLLM)
			}
			svc := newTestService(mockLLM)

			answer, err := svc.Ask(context.Background(), tt.sub)

			if tt.wantKind != "" {
				require.Error(t, err)
				var ae *Error
				require.ErrorAs(t, err, &ae)
				require.Equal(t, tt.wantKind, ae.Kind)
				require.Contains(t, ClientMessage(err), tt.wantMessage)
				// Rejected submissions must never reach the provider.
				if tt.setup == nil {
					mockLLM.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantAnswer, answer)
			}
			mockLLM.AssertExpectations(t)
		})
	}
}

func TestAskSendsDocumentAndQuestionInPrompt(t *testing.T) {
	mockLLM := new(llm.MockClient)
	mockLLM.On("Complete", mock.Anything, "gpt-4o-mini", SystemPrompt,
		mock.MatchedBy(func(user string) bool {
			return strings.Contains(user, "# Title\nBody text.") &&
				strings.Contains(user, "Question: What does this do?")
		})).Return("It does X.", nil).Once()

	svc := newTestService(mockLLM)
	_, err := svc.Ask(context.Background(), Submission{
		Question: "What does this do?",
		Document: markdownDoc("# Title\nBody text."),
	})
	require.NoError(t, err)
	mockLLM.AssertExpectations(t)
}
