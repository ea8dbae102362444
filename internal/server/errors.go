// Package server provides the HTTP REST API for the job matching platform.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nikhilshetty5/superhireX/internal/extraction"
	"github.com/nikhilshetty5/superhireX/internal/matching"
	"github.com/nikhilshetty5/superhireX/internal/pipeline"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUnauthenticated indicates the request carries no valid identity
type ErrUnauthenticated struct{}

func (e *ErrUnauthenticated) Error() string {
	return "authentication required"
}

// ErrForbidden indicates the authenticated account may not perform the action
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	return e.Message
}

// ErrNotFound indicates the requested resource does not exist
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrUnauthenticated:
		return http.StatusUnauthorized
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, pipeline.ErrParseInProgress):
		return http.StatusConflict
	case errors.Is(err, pipeline.ErrResumeNotFound),
		errors.Is(err, pipeline.ErrSeekerNotFound),
		errors.Is(err, matching.ErrTargetNotFound):
		return http.StatusNotFound
	}

	var pipelineValidation *pipeline.ValidationError
	var matchingValidation *matching.ValidationError
	var textErr *extraction.TextError
	if errors.As(err, &pipelineValidation) ||
		errors.As(err, &matchingValidation) ||
		errors.As(err, &textErr) {
		return http.StatusBadRequest
	}

	// Upstream model failures surface as a bad gateway so clients can tell
	// them apart from our own faults.
	var apiErr *extraction.APICallError
	var parseErr *extraction.ParseError
	if errors.As(err, &apiErr) || errors.As(err, &parseErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
