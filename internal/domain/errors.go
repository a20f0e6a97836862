package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies business failures so every boundary (CLI, HTTP) can
// react the same way regardless of which service produced them.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeDayClosed    ErrorCode = "DAY_CLOSED"
	CodeInvalidState ErrorCode = "INVALID_STATE"
	CodeConflict     ErrorCode = "CONFLICT"
)

// Error is the typed result returned for expected business conditions.
// Two Errors match under errors.Is when their codes are equal, so callers can
// test against the sentinels below without caring about the message.
type Error struct {
	Code    ErrorCode
	Message string
	// Date is set for day-scoped failures (closed day, reopen of an open day).
	Date string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrValidation   = &Error{Code: CodeValidation}
	ErrNotFound     = &Error{Code: CodeNotFound}
	ErrDayClosed    = &Error{Code: CodeDayClosed}
	ErrInvalidState = &Error{Code: CodeInvalidState}
	ErrConflict     = &Error{Code: CodeConflict}
)

func NewValidationError(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewDayClosedError reports a write against an archived day.
func NewDayClosedError(date string) *Error {
	return &Error{
		Code:    CodeDayClosed,
		Message: fmt.Sprintf("day %s is closed; reopen it or use the override", date),
		Date:    date,
	}
}

func NewInvalidStateError(date, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidState, Message: fmt.Sprintf(format, args...), Date: date}
}

func NewConflictError(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the ErrorCode from err, or "" when err is not a domain Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
