package service

import "errors"

// ErrAlreadyResolved is returned when a complete/skip action targets a
// reminder that no longer exists or already reached a terminal status.
// Recipient actions race with the scanner, so callers acknowledge neutrally
// instead of surfacing an error.
var ErrAlreadyResolved = errors.New("reminder already resolved")

// ValidationError rejects a malformed or past-dated reminder draft before
// anything is persisted. Its message is shown to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(message string) *ValidationError {
	return &ValidationError{Message: message}
}
