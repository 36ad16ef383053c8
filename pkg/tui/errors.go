package tui

import (
	"errors"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrRejected signals the form failed validation and the user declined to
	// fix it.
	ErrRejected = errors.New("tui: form rejected")
)

// RejectedError carries the failing result of a rejected form.
type RejectedError struct {
	FormID string
	Result validation.Result
}

func (e *RejectedError) Error() string {
	if err := e.Result.Err(); err != nil {
		return "tui: form " + e.FormID + " rejected: " + err.Error()
	}
	return "tui: form " + e.FormID + " rejected"
}

// Is matches ErrRejected.
func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// Unwrap exposes the validation errors.
func (e *RejectedError) Unwrap() error {
	return e.Result.Err()
}
