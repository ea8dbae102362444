package pipeline

import "errors"

// ErrParseInProgress is returned when another request already holds the
// parsing transition for the seeker.
var ErrParseInProgress = errors.New("resume parse already in progress")

// ErrResumeNotFound is returned when the resume does not exist or does not
// belong to the requesting seeker.
var ErrResumeNotFound = errors.New("resume not found")

// ErrSeekerNotFound is returned when the seeker has no profile state row.
var ErrSeekerNotFound = errors.New("seeker profile not found")

// ValidationError indicates a rejected upload or confirm payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
