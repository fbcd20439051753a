package dispatch

import (
	"context"
	"errors"
	"fmt"

	"compliance_tui/pkg/response"
)

// Responder turns a user query into a structured response.
type Responder interface {
	Respond(ctx context.Context, query string) (response.Structured, error)
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(ctx context.Context, query string) (response.Structured, error)

func (f ResponderFunc) Respond(ctx context.Context, query string) (response.Structured, error) {
	return f(ctx, query)
}

// ErrorKind classifies a dispatch failure.
type ErrorKind string

const (
	ErrTransport ErrorKind = "transport"
	ErrTimeout   ErrorKind = "timeout"
	ErrStatus    ErrorKind = "status"
	ErrDecode    ErrorKind = "decode"
	ErrMalformed ErrorKind = "malformed"
	ErrCanceled  ErrorKind = "canceled"
)

// Error is returned by responders for every failed request.
type Error struct {
	Kind ErrorKind
	// Status is the HTTP status code for ErrStatus failures.
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	switch {
	case msg == "" && e.Err != nil:
		msg = e.Err.Error()
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the ErrorKind carried by err, or "" when err is not a dispatch error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// classify wraps an arbitrary responder error into an *Error.
func classify(ctx context.Context, err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	if kind, ok := contextKind(err); ok {
		return &Error{Kind: kind, Err: err}
	}
	if kind, ok := contextKind(ctx.Err()); ok {
		return &Error{Kind: kind, Err: err}
	}
	return &Error{Kind: ErrTransport, Err: err}
}

func contextKind(err error) (ErrorKind, bool) {
	switch {
	case err == nil:
		return "", false
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout, true
	case errors.Is(err, context.Canceled):
		return ErrCanceled, true
	}
	return "", false
}

// ContextError converts a finished context into an *Error.
func ContextError(ctx context.Context) *Error {
	kind, ok := contextKind(ctx.Err())
	if !ok {
		return nil
	}
	return &Error{Kind: kind, Err: ctx.Err()}
}
