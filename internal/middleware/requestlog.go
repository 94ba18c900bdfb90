package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"userapi/internal/logging"
)

// RequestLog logs each request with request_id, method, path, status and
// duration. Use after RequestID so the ID is available.
func RequestLog(logger logging.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"request_id", v.RequestID,
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"duration_ms", v.Latency.Milliseconds(),
				"remote_ip", v.RemoteIP,
			}
			ctx := c.Request().Context()
			if v.Status >= 500 {
				logger.Warn(ctx, "request", attrs...)
				return nil
			}
			logger.Info(ctx, "request", attrs...)
			return nil
		},
	})
}
