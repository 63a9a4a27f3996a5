package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/InnoShay/HireSight-sub000/internal/pipeline"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var validation *ErrValidation
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}
	var notFound *ErrNotFound
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, pipeline.ErrEmptyJobDescription) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
