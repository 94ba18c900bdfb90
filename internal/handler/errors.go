package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "userapi/internal/errors"
	"userapi/internal/logging"
)

// MsgInvalidBody is returned when the request body cannot be decoded.
const MsgInvalidBody = "Corpo da requisição inválido"

// ErrorHandler renders every error as apperrors.ErrorResponse. Causes of 5xx
// responses are logged and never sent to the client.
func ErrorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := toHTTPError(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logger.Error(c.Request().Context(), "request failed",
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err.Error())
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(httpErr.StatusCode)
		} else {
			sendErr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		if sendErr != nil {
			logger.Warn(c.Request().Context(), "write error response", "error", sendErr.Error())
		}
	}
}

func toHTTPError(err error) *apperrors.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return apperrors.NewHTTPError(he.Code, "")
		}
		return apperrors.NewHTTPError(he.Code, fmt.Sprint(he.Message))
	}
	return apperrors.MapErrorToHTTP(err)
}

func invalidBody() error {
	return apperrors.NewHTTPError(http.StatusBadRequest, MsgInvalidBody)
}
