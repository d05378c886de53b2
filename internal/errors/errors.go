package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrValidation is the parent of every request validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidID is returned when an identifier is not a 24-character hex string.
	ErrInvalidID = errors.New("invalid id")
	// ErrEmailTaken is returned when an email is already used by another user.
	ErrEmailTaken = errors.New("email already in use")
	// ErrParentHasStudents is returned when deleting a parent that still has students.
	ErrParentHasStudents = errors.New("cannot delete parent with assigned students")
	// ErrInvalidParentRef is returned when parentId does not reference a parent.
	ErrInvalidParentRef = errors.New("parentId does not reference a parent")
	// ErrUnauthorized is returned when the caller is unauthenticated or lacks the role.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is the parent of every not-found error. Ownership mismatches
	// are reported with the same errors.
	ErrNotFound = errors.New("not found")
	// ErrParentNotFound is returned when a parent does not exist or is out of scope.
	ErrParentNotFound = &notFoundError{msg: "parent not found"}
	// ErrStudentNotFound is returned when a student does not exist or is out of scope.
	ErrStudentNotFound = &notFoundError{msg: "student not found"}
	// ErrSessionNotFound is returned when a session does not exist or is out of scope.
	ErrSessionNotFound = &notFoundError{msg: "session not found or unauthorized"}
)

type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a ValidationError.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so internals never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ID")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrParentHasStudents):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PARENT_HAS_STUDENTS")
	case errors.Is(err, ErrInvalidParentRef):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PARENT")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), codeFor(err))
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

func codeFor(err error) string {
	var nf *notFoundError
	if errors.As(err, &nf) {
		word := strings.Fields(nf.msg)[0]
		return strings.ToUpper(word) + "_NOT_FOUND"
	}
	return "NOT_FOUND"
}
