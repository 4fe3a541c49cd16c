package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes are part of the HTTP error body and stable across releases.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeConflict         = "CONFLICT"
	CodeSlotConflict     = "SLOT_CONFLICT"
	CodeInternal         = "INTERNAL_ERROR"
	CodeTimeout          = "TIMEOUT"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeRateLimited      = "RATE_LIMITED"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
)

// AppError is an error that knows how it should be rendered to an HTTP client.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func newCaused(code, message string, httpStatus int, cause error) *AppError {
	e := New(code, message, httpStatus)
	e.Err = cause
	return e
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) StatusCode() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

// NotFoundWithID keeps cause reachable through errors.Is.
func NotFoundWithID(resource string, id any, cause error) *AppError {
	e := newCaused(CodeNotFound, resource+" not found", http.StatusNotFound, cause)
	e.Details = map[string]any{"resource": resource, "id": id}
	return e
}

func Validation(message string, details map[string]any) *AppError {
	e := New(CodeValidation, message, http.StatusUnprocessableEntity)
	e.Details = details
	return e
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

func Conflict(message string, cause error) *AppError {
	return newCaused(CodeConflict, message, http.StatusConflict, cause)
}

// SlotConflict answers 400, the status booking clients already handle for a taken slot.
func SlotConflict(message string, cause error) *AppError {
	return newCaused(CodeSlotConflict, message, http.StatusBadRequest, cause)
}

func Internal(message string, cause error) *AppError {
	return newCaused(CodeInternal, message, http.StatusInternalServerError, cause)
}

func Timeout(message string) *AppError {
	return New(CodeTimeout, message, http.StatusServiceUnavailable)
}

func RateLimited() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

func UnsupportedMediaType(message string) *AppError {
	return New(CodeUnsupportedMedia, message, http.StatusUnsupportedMediaType)
}

func PayloadTooLarge(limit int64) *AppError {
	return New(CodePayloadTooLarge, fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError unwraps err to an AppError, treating anything else as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
