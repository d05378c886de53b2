package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/logger"
)

// NewHTTPErrorHandler renders every error as an ErrorResponse. Server errors
// are logged with their cause and reported.
func NewHTTPErrorHandler(log zerolog.Logger, reporter *logger.Reporter) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body, cause := resolve(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(cause).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("request failed")
			reporter.Report(c.Request(), cause)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}

func resolve(err error) (int, apperrors.ErrorResponse, error) {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		mapped := apperrors.MapErrorToHTTP(err)
		return mapped.StatusCode, mapped.ToErrorResponse(), err
	}

	cause := err
	if he.Internal != nil {
		cause = he.Internal
	}
	switch msg := he.Message.(type) {
	case apperrors.ErrorResponse:
		return he.Code, msg, cause
	case string:
		return he.Code, apperrors.ErrorResponse{Error: msg, Code: statusCode(he.Code)}, cause
	default:
		return he.Code, apperrors.ErrorResponse{Error: http.StatusText(he.Code), Code: statusCode(he.Code)}, cause
	}
}

// statusCode derives an error code from an HTTP status, e.g. 404 -> NOT_FOUND.
func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	case http.StatusInternalServerError:
		return "INTERNAL_ERROR"
	}
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
