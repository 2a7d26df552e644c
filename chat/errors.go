package chat

import (
	"errors"
	"fmt"
	"net/http"
)

// Category codes surfaced to callers on rejected submissions
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeBadRequest      = "BAD_REQUEST"
)

// Error is a pipeline rejection with a machine-readable category.
// Infrastructure failures are never wrapped in one of these; they stay
// plain errors and map to 500.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unauthenticated builds an UNAUTHENTICATED category error
func Unauthenticated(message string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: message}
}

// Forbidden builds a FORBIDDEN category error
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// BadRequest builds a BAD_REQUEST category error
func BadRequest(message string) *Error {
	return &Error{Code: CodeBadRequest, Message: message}
}

// Pipeline rejections. Muted and kicked carry their reason for
// observability; both map to the same FORBIDDEN category.
var (
	ErrSenderRequired = BadRequest("sender required")
	ErrRateLimited    = BadRequest("rate limit exceeded")
	ErrProfanity      = BadRequest("message contains profanity")
	ErrMuted          = Forbidden("muted")
	ErrKicked         = Forbidden("kicked")
)

// GameNotFound builds the bad-request error for an unknown game
func GameNotFound(gameID int64) *Error {
	return BadRequest(fmt.Sprintf("game not found: %d", gameID))
}

// CodeOf returns the category code for err, or empty for plain errors
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// StatusOf maps an error to the HTTP status the REST surface reports
func StatusOf(err error) int {
	switch CodeOf(err) {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
