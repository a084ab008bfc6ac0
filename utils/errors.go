package utils

import (
	"errors"
	"net/http"
)

// ErrorCode is the machine readable code returned in the error envelope
type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// AppError is an error that knows how it should be reported over HTTP
type AppError struct {
	Code    ErrorCode
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status maps the error code onto an HTTP status.
// Conflicts are reported as 400 so clients see them as bad input.
func (e *AppError) Status() int {
	switch e.Code {
	case CodeValidation, CodeConflict:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WithDetails attaches structured details (field errors, ids) to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewInternalError surfaces the underlying failure message to the client
func NewInternalError(err error) *AppError {
	msg := "Internal server error"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{Code: CodeInternal, Message: msg, Err: err}
}

// AsAppError returns err as an *AppError, wrapping unknown errors as internal
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var uploadErr *FileUploadError
	if errors.As(err, &uploadErr) {
		return &AppError{Code: CodeValidation, Message: uploadErr.Message, Details: map[string]string{"reason": uploadErr.Code}, Err: err}
	}
	return NewInternalError(err)
}

// Response is the JSON failure envelope
func (e *AppError) Response() map[string]any {
	body := map[string]any{"code": e.Code, "message": e.Message}
	if e.Details != nil {
		body["details"] = e.Details
	}
	return map[string]any{"success": false, "message": e.Message, "error": body}
}
