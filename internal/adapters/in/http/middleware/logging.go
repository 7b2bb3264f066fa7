// Package middleware provides echo middleware for the HTTP adapters.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/containerlens/containerlens/internal/adapters/dto"
	"github.com/containerlens/containerlens/internal/logging"
)

// RequestLogger logs every request and attaches a request-scoped logger to
// the request context for downstream handlers. An incoming X-Request-ID is
// reused, otherwise a new one is generated.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			reqLog := log.With().Str(logging.FieldRequest, requestID).Logger()
			c.SetRequest(req.WithContext(logging.WithCtx(req.Context(), reqLog)))

			if err := next(c); err != nil {
				c.Error(err)
			}

			reqLog.Info().
				Str(logging.FieldLayer, "adapter").
				Str(logging.FieldAdapter, "http").
				Str(logging.FieldMethod, req.Method).
				Str(logging.FieldPath, req.URL.Path).
				Str("query", req.URL.RawQuery).
				Str("client_ip", c.RealIP()).
				Str("user_agent", req.UserAgent()).
				Int(logging.FieldStatus, c.Response().Status).
				Int64("bytes", c.Response().Size).
				Dur(logging.FieldDuration, time.Since(start)).
				Msg("HTTP request")
			return nil
		}
	}
}

// PanicRecovery recovers from handler panics, logs them and answers 500.
func PanicRecovery(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Str(logging.FieldLayer, "adapter").
						Str(logging.FieldAdapter, "http").
						Str("panic", fmt.Sprint(r)).
						Str(logging.FieldMethod, c.Request().Method).
						Str(logging.FieldPath, c.Request().URL.Path).
						Msg("panic recovered")
					err = c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
				}
			}()
			return next(c)
		}
	}
}
