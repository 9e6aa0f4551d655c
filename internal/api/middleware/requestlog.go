package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// quietPaths are the health and scrape endpoints that orchestrators
// and Prometheus hit every few seconds.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLog returns Echo middleware that logs each request with its
// id, outcome, and timing. A request id is minted when the caller did
// not send one, and is echoed back in the response header.
//
// Health and metrics endpoints are special-cased: a successful hit is
// logged once and repeats are suppressed until one fails, while
// failures always log at warning level.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var mu sync.Mutex
	quietLogged := make(map[string]bool)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			status := c.Response().Status
			attrs := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}

			if path := c.Request().URL.Path; quietPaths[path] {
				if status >= 400 {
					mu.Lock()
					quietLogged[path] = false
					mu.Unlock()
					log.Warn("request", attrs...)
					return err
				}

				mu.Lock()
				seen := quietLogged[path]
				quietLogged[path] = true
				mu.Unlock()
				if seen {
					return err
				}
			}

			log.Info("request", attrs...)
			return err
		}
	}
}
