package predict

import (
	"errors"
	"fmt"
)

// InvalidDateError is returned when a history entry is rejected.
type InvalidDateError struct {
	Input  string
	Reason string
	Err    error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// IsInvalidDate returns true if err is or wraps an *InvalidDateError.
func IsInvalidDate(err error) bool {
	var ide *InvalidDateError
	return errors.As(err, &ide)
}
