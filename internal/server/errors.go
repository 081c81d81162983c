package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/outreach-drafter/internal/generation"
)

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
	var (
		validationErr *ErrValidation
		timeoutErr    *generation.UpstreamTimeoutError
		upstreamErr   *generation.InvalidUpstreamResponseError
		planningErr   *generation.PlanningError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	case errors.As(err, &planningErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
