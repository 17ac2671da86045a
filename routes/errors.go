package routes

import (
	"errors"
	"net/http"
	"strings"

	"roomease-server/services"
	"roomease-server/utils"

	"github.com/kataras/iris/v12"
)

// handleServiceError maps the services error taxonomy onto HTTP statuses
// and stable error codes. The detail attached by the service (everything
// after the sentinel) becomes the user-facing message, so callers see
// "you already have a request for this listing" rather than a generic 409.
func handleServiceError(ctx iris.Context, err error) {
	status := http.StatusInternalServerError
	code := "server_error"

	switch {
	case errors.Is(err, services.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, services.ErrForbiddenRole):
		status, code = http.StatusForbidden, "forbidden_role"
	case errors.Is(err, services.ErrForbiddenAction):
		status, code = http.StatusForbidden, "forbidden_action"
	case errors.Is(err, services.ErrInvalidTransition):
		status, code = http.StatusConflict, "invalid_transition"
	case errors.Is(err, services.ErrDuplicateRequest):
		status, code = http.StatusConflict, "duplicate_request"
	case errors.Is(err, services.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	}

	utils.JSONError(ctx, status, code, errorDetail(err, code))
}

func errorDetail(err error, code string) string {
	msg := err.Error()
	// Strip the "sentinel: " prefix the services use for wrapping.
	if idx := strings.Index(msg, ": "); idx >= 0 && strings.HasPrefix(msg, code) {
		return msg[idx+2:]
	}
	return msg
}
