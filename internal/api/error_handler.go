package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps tagged domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<CODE>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Tagged domain errors map deterministically by code.
	var de *domain.Error
	if errors.As(err, &de) {
		return statusForCode(de.Code), errorResponse{Error: de.Message, Code: string(de.Code)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeEntityNotFound:
		return http.StatusNotFound
	case domain.CodeDuplicateEntity:
		return http.StatusConflict
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeUnsupportedLanguage:
		return http.StatusUnprocessableEntity
	case domain.CodeUnauthorizedAccess:
		return http.StatusForbidden
	case domain.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case domain.CodeCalculation:
		return http.StatusBadGateway
	case domain.CodeInterpretation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
