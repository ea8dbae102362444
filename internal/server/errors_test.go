package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nikhilshetty5/superhireX/internal/extraction"
	"github.com/nikhilshetty5/superhireX/internal/matching"
	"github.com/nikhilshetty5/superhireX/internal/pipeline"
)

func TestHTTPStatus_AuthErrors(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(&ErrEmailAlreadyExists{Email: "a@b.c"}))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(&ErrInvalidCredentials{}))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(&ErrUnauthenticated{}))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(&ErrForbidden{Message: "nope"}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrNotFound{Resource: "profile"}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "email", Message: "required"}))
}

func TestHTTPStatus_PipelineErrors(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(pipeline.ErrParseInProgress))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(pipeline.ErrResumeNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(pipeline.ErrSeekerNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(matching.ErrTargetNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&pipeline.ValidationError{Message: "bad"}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&matching.ValidationError{Message: "bad"}))
}

func TestHTTPStatus_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("parse failed: %w", pipeline.ErrParseInProgress)
	assert.Equal(t, http.StatusConflict, HTTPStatus(wrapped))
}

func TestHTTPStatus_ExtractionErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(&extraction.APICallError{Message: "down"}))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(&extraction.ParseError{Message: "bad json"}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&extraction.TextError{Filename: "x.txt", Message: "binary"}))
}

func TestHTTPStatus_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
