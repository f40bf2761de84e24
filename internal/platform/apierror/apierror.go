// Package apierror defines the JSON error envelope every endpoint answers
// with, and the echo error handler that renders it.
package apierror

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Response is the error body: a human message, optionally the stringified
// cause and a field-path -> reason map for validation failures.
type Response struct {
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// BadRequest returns a 400 carrying message.
func BadRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, Response{Message: message})
}

// NotFound returns a 404 carrying message.
func NotFound(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, Response{Message: message})
}

// Invalid returns a 400 listing the offending fields.
func Invalid(fields map[string]string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, Response{
		Message: "Invalid request format",
		Errors:  fields,
	})
}

// Malformed returns a 400 for a body that could not be decoded at all.
func Malformed(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, Response{
		Message: "Invalid request format",
		Error:   causeText(err),
	}).SetInternal(err)
}

// Internal returns a 500 carrying a generic message and the stringified cause.
func Internal(message string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, Response{
		Message: message,
		Error:   causeText(err),
	}).SetInternal(err)
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if s, ok := he.Message.(string); ok {
			return s
		}
	}
	return err.Error()
}

// Handler renders any error returned by a handler or middleware as a
// Response. It is installed as echo's HTTPErrorHandler.
func Handler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := Response{Message: "Internal server error", Error: err.Error()}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch m := he.Message.(type) {
			case Response:
				body = m
			case *Response:
				body = *m
			case string:
				body = Response{Message: m}
			case error:
				body = Response{Message: http.StatusText(status), Error: m.Error()}
			default:
				body = Response{Message: http.StatusText(status)}
			}
		}

		if status >= http.StatusInternalServerError {
			rid, _ := c.Get("request_id").(string)
			logger.Error().Err(err).
				Str("request_id", rid).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}
