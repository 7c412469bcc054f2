package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	HttpInternalError    = "internal_error"
	HttpInvalidJsonError = "invalid_json"
	HttpNotFoundError    = "not_found"
	HttpConflictError    = "conflict"
	HttpBadRequestError  = "bad_request"
	HttpDuplicateError   = "duplicate"
)

// Error kinds surfaced by the lifecycle, admission and metrics services.
var (
	ErrNotFound   = stderrors.New("not found")
	ErrConflict   = stderrors.New("conflict")
	ErrBadRequest = stderrors.New("bad request")

	// ErrDuplicate is a specialization of ErrConflict: errors.Is matches both.
	ErrDuplicate = stderrors.New("duplicate")
)

// ErrorResponse is the error response body of both HTTP services.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func BadRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

func Duplicatef(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrDuplicate, ErrConflict, fmt.Sprintf(format, args...))
}

// Classify maps err to an HTTP status and error type. Duplicate is checked before Conflict.
func Classify(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case stderrors.Is(err, ErrNotFound):
		return http.StatusNotFound, HttpNotFoundError
	case stderrors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, HttpBadRequestError
	case stderrors.Is(err, ErrDuplicate):
		return http.StatusConflict, HttpDuplicateError
	case stderrors.Is(err, ErrConflict):
		return http.StatusConflict, HttpConflictError
	default:
		return http.StatusInternalServerError, HttpInternalError
	}
}

// Response builds the body for err. Internal errors do not leak their message.
func Response(err error) (int, ErrorResponse) {
	status, kind := Classify(err)
	if status == http.StatusInternalServerError {
		return status, ErrorResponse{ErrorType: kind, Message: "Internal server error"}
	}
	return status, ErrorResponse{ErrorType: kind, Message: err.Error()}
}
