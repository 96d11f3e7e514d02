package middleware

import (
	"context"
	"time"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/observability"
)

// Logging returns a middleware that logs every request with its outcome.
func Logging(logger observability.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *event.Request) (*event.Response, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			duration := time.Since(start)
			status := 0
			if resp != nil {
				status = resp.StatusCode
			}

			fields := []observability.Field{
				observability.String("method", req.Method),
				observability.String("path", req.RawPath),
				observability.Int("status", status),
				observability.Duration("duration", duration),
				observability.String("request_id", req.Context.RequestID),
			}

			if err != nil {
				logger.Error("request failed", append(fields, observability.Error(err))...)
			} else {
				logger.Info("request", fields...)
			}

			return resp, err
		}
	}
}
