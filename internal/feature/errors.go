package feature

import (
	"errors"
	"fmt"
)

// Sentinel errors. Operations wrap them with detail; use errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrNoPreferences   = errors.New("no gift preferences enabled")
	ErrUnknownCategory = errors.New("unknown gift category")
	ErrWrongPIN        = errors.New("current PIN is incorrect")
	ErrPINFormat       = errors.New("new PIN must be 4 digits")
	ErrPINMismatch     = errors.New("PIN confirmation does not match")
	ErrLocked          = errors.New("wrong PIN")
)

// InputError reports a rejected user input field.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsInputError returns true if err is or wraps an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func checkRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w (got %d)", ErrInvalidRating, rating)
	}
	return nil
}
