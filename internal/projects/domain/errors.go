package domain

import "errors"

var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is lets callers match any ValidationError with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
