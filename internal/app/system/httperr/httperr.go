// Package httperr defines the error taxonomy for the JSON API and the
// boundary at which internal failures become HTTP responses.
//
// Every handler converts failures to one of the kinds below. Internal
// error detail is logged, never returned to the caller; the response
// body only ever carries a generic user-facing message:
//
//	{"ok": false, "error": "..."}
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Kind classifies a request failure.
type Kind int

const (
	// KindValidation is malformed input (400).
	KindValidation Kind = iota + 1
	// KindUnauthenticated is a missing/invalid/expired session or an
	// unregistered credential (401).
	KindUnauthenticated
	// KindRateLimited means the client exceeded the attempt budget (429).
	KindRateLimited
	// KindUnavailable means a backing store or provider is unreachable
	// or unconfigured (503).
	KindUnavailable
	// KindInternal is any other failure (500).
	KindInternal
)

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a user-facing message, and the wrapped internal
// cause (log-only).
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

// Validation builds a 400 error with a user-facing message.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Unauthenticated builds a 401 error with a user-facing message.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// RateLimited builds a 429 error with a user-facing message.
func RateLimited(msg string) *Error {
	return &Error{Kind: KindRateLimited, Message: msg}
}

// Unavailable builds a 503 error wrapping the dependency failure.
func Unavailable(msg string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: msg, Err: err}
}

// Internal builds a 500 error wrapping the cause.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// errorBody is the JSON error envelope.
type errorBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// WriteJSON writes the error envelope with the given status.
func WriteJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{OK: false, Error: msg})
}

// ErrorLogger is the per-handler boundary: it logs the internal detail
// of a failure and writes the generic JSON error.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger backed by the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Write classifies err and emits the response. Unclassified errors are
// treated as internal (500, "Error interno del servidor").
func (e *ErrorLogger) Write(w http.ResponseWriter, r *http.Request, err error) {
	var herr *Error
	if !errors.As(err, &herr) {
		herr = Internal("Error interno del servidor", err)
	}

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", herr.Kind.Status()),
	}
	if herr.Err != nil {
		fields = append(fields, zap.Error(herr.Err))
	}

	switch herr.Kind {
	case KindValidation, KindUnauthenticated, KindRateLimited:
		e.log.Info("request rejected", fields...)
	default:
		e.log.Error("request failed", fields...)
	}

	WriteJSON(w, herr.Kind.Status(), herr.Message)
}
