package errors

import "fmt"

// ErrorCode represents an advent error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"  // 400
	ErrInvalidDate    ErrorCode = "INVALID_DATE"     // 400
	ErrNotYetUnlocked ErrorCode = "NOT_YET_UNLOCKED" // 403
	ErrNotFound       ErrorCode = "NOT_FOUND"        // 404
	ErrNotOpened      ErrorCode = "NOT_OPENED"       // 409
	ErrInternal       ErrorCode = "INTERNAL"         // 500
)

// NotYetUnlockedMessage is the user-facing text returned when a day is opened too early.
const NotYetUnlockedMessage = "It's not time to open this gift yet! 🎅"

// AdventError represents a structured error with code, status, and details.
type AdventError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *AdventError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *AdventError {
	return &AdventError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidDate creates a 400 error for a clock override that is not a YYYY-MM-DD date.
func NewInvalidDate(value string) *AdventError {
	return &AdventError{
		Code:    ErrInvalidDate,
		Status:  400,
		Message: fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", value),
		Details: map[string]any{"value": value},
	}
}

// NewNotYetUnlocked creates a 403 error for a day whose unlock date has not passed.
func NewNotYetUnlocked(day int) *AdventError {
	return &AdventError{
		Code:    ErrNotYetUnlocked,
		Status:  403,
		Message: NotYetUnlockedMessage,
		Details: map[string]any{"day": day},
	}
}

// NewNotFound creates a 404 error for a day outside the calendar.
func NewNotFound(day int) *AdventError {
	return &AdventError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("day not found: %d", day),
		Details: map[string]any{"day": day},
	}
}

// NewNotOpened creates a 409 error when content is requested for a closed day.
func NewNotOpened(day int) *AdventError {
	return &AdventError{
		Code:    ErrNotOpened,
		Status:  409,
		Message: fmt.Sprintf("day %d has not been opened yet", day),
		Details: map[string]any{"day": day},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *AdventError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AdventError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an AdventError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*AdventError); ok {
		return aErr.Code == code
	}
	return false
}
