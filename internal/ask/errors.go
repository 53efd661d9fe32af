package ask

import (
	"errors"
	"net/http"
)

// Kind classifies pipeline failures. Validation and upload kinds are the
// caller's fault; upstream and io kinds are ours.
type Kind string

const (
	KindValidation Kind = "validation"
	KindUpload     Kind = "upload"
	KindUpstream   Kind = "upstream"
	KindIO         Kind = "io"
)

// Error is the single error shape the pipeline produces. Message is safe to
// show the caller; Err keeps the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a malformed or missing submission field.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Upload reports a document that violates the allow-list or size ceiling.
func Upload(message string) *Error {
	return &Error{Kind: KindUpload, Message: message}
}

// Upstream reports a completion provider failure or unusable response.
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// IO reports a local read/write or text decoding failure.
func IO(message string, err error) *Error {
	return &Error{Kind: KindIO, Message: message, Err: err}
}

// HTTPStatus maps an error to the client-fault/server-fault split: 400 for
// validation and upload kinds, 500 for everything else.
func HTTPStatus(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case KindValidation, KindUpload:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// ClientMessage returns the text safe to show the caller. Pipeline errors
// surface their message only; anything else collapses to a generic message
// so internals never leak.
func ClientMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal error"
}
