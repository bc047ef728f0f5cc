package studyplan

import (
	"errors"
	"fmt"
)

// ErrNotFound and ErrValidation are the two recoverable failure classes.
// Controllers map them to 404 and 400; everything else is a 500.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

var (
	ErrSubjectNotFound  = fmt.Errorf("subject %w", ErrNotFound)
	ErrTestNotFound     = fmt.Errorf("test %w", ErrNotFound)
	ErrTopicNotFound    = fmt.Errorf("topic %w", ErrNotFound)
	ErrResourceNotFound = fmt.Errorf("resource %w", ErrNotFound)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
