package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation      ErrorKind = "VALIDATION_ERROR"
	KindUnauthenticated ErrorKind = "UNAUTHORIZED"
	KindForbidden       ErrorKind = "FORBIDDEN"
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindInvalidState    ErrorKind = "INVALID_STATE"
	KindInternal        ErrorKind = "INTERNAL_ERROR"
)

// AppError carries the taxonomy kind the HTTP layer maps to a status code.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError of the same kind and message, so package-level
// sentinels work with errors.Is after wrapping.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewInvalidStateError(message string) *AppError {
	return &AppError{Kind: KindInvalidState, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the taxonomy kind of err, defaulting to KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrNotAuthenticated = NewUnauthenticatedError("Not authenticated")
	ErrAdminRequired    = NewForbiddenError("Forbidden: Admin access required")

	ErrInvalidReviewStatus     = NewValidationError("Invalid status provided")
	ErrRequestIDsRequired      = NewValidationError("requestIds array is required")
	ErrRequestNotFound         = NewNotFoundError("Request not found")
	ErrRequestAlreadyProcessed = NewInvalidStateError("Request has already been processed")

	ErrArticleNotFound = NewNotFoundError("Article not found")
	ErrUserNotFound    = NewNotFoundError("User not found")
	ErrFAQNotFound     = NewNotFoundError("FAQ not found")
	ErrReportNotFound  = NewNotFoundError("Report not found")
)
