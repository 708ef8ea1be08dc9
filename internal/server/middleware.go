package server

import (
	"time"

	"github.com/Brownie44l1/tinyhttp/internal/response"
	"github.com/Brownie44l1/tinyhttp/internal/router"
)

// LoggingMiddleware logs every dispatched request
func LoggingMiddleware(logger Logger) router.Middleware {
	return func(next router.Handler) router.Handler {
		return func(ctx *router.Context) *response.Response {
			start := time.Now()

			resp := next(ctx)

			var status response.StatusCode
			if resp != nil {
				status = resp.StatusCode
			}

			logger.Info("request handled",
				Field{"method", string(ctx.Method())},
				Field{"path", ctx.Path()},
				Field{"route", ctx.Route},
				Field{"status", int(status)},
				Field{"gzip", resp != nil && resp.ShouldCompress},
				Field{"duration_us", time.Since(start).Microseconds()},
			)
			return resp
		}
	}
}
