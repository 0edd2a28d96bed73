package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or bad credentials, or a missing auth context.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidRefreshToken indicates a refresh token that failed verification,
// resolved to no user, or no longer matches the stored value (reuse of a
// rotated-out token).
var ErrInvalidRefreshToken = errors.New("refresh token is expired or used")

// AppError carries an HTTP status code alongside a message so handlers can
// surface domain failures without mapping statuses ad hoc.
type AppError struct {
	Code    int      `json:"statusCode"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewBadRequestError creates an AppError with a 400 status.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Errors: []string{}}
}

// NewUnauthorizedError creates an AppError with a 401 status.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Errors: []string{}}
}

// NewNotFoundError creates an AppError with a 404 status.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Errors: []string{}}
}

// NewConflictError creates an AppError with a 409 status.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Errors: []string{}}
}

// NewInternalServerError creates an AppError with a 500 status.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Errors: []string{}}
}

// StatusCode maps an error to the HTTP status it should be reported with.
// Unrecognized errors default to 500.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
