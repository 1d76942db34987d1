package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HTTPErrorHandler is the single boundary translator: every error escaping a
// handler or middleware passes through here and becomes a structured response.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// Errors echo raised itself: routing misses, bind failures.
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			_ = c.JSON(echoErr.Code, ErrorResponse{
				Error: fmt.Sprintf("%v", echoErr.Message),
				Code:  codeForStatus(echoErr.Code),
			})
			return
		}

		httpErr := MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logger.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}
		_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_ERROR"
	}
}
