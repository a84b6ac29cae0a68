// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/cfohub/cfohub/internal/shared"
)

// Sentinel errors for the transport layer.
var (
	ErrValidation   = shared.ErrValidation
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream unavailable")
	ErrBadRequest   = errors.New("bad request")
)

// fieldError is implemented by validation errors that name the failing field.
type fieldError interface {
	error
	FieldName() string
}

// StatusFor returns the HTTP status and problem title err maps to.
func StatusFor(err error) (int, string) {
	var fe fieldError
	switch {
	case errors.As(err, &fe), errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity, "Validation Failed"
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound, "Not Found"
	case errors.Is(err, shared.ErrDuplicate):
		return http.StatusConflict, "Duplicate"
	case errors.Is(err, shared.ErrInvalidTransition):
		return http.StatusConflict, "Invalid Transition"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "Bad Request"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrTokenRevoked):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway, "Upstream Error"
	default:
		return http.StatusInternalServerError, "Internal Error"
	}
}

// RespondError maps domain errors to HTTP responses using RFC7807. Internal
// errors are reported without detail.
func RespondError(w http.ResponseWriter, err error) {
	status, title := StatusFor(err)
	problem := ProblemDetail{Title: title, Status: status}
	if status != http.StatusInternalServerError {
		problem.Detail = err.Error()
	}
	var fe fieldError
	if errors.As(err, &fe) {
		problem.Field = fe.FieldName()
	}
	JSON(w, status, problem)
}
