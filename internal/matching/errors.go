package matching

import "errors"

// ErrTargetNotFound is returned when the swiped job or candidate does not
// exist or is not swipeable.
var ErrTargetNotFound = errors.New("swipe target not found")

// ValidationError indicates a rejected swipe request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
