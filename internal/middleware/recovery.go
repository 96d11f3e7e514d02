package middleware

import (
	"context"
	"runtime/debug"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/observability"
)

// Recovery returns a middleware that converts handler panics into a 500
// response. The panic value and stack are logged, never exposed to the
// client.
func Recovery(logger observability.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *event.Request) (resp *event.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						observability.String("method", req.Method),
						observability.String("path", req.RawPath),
						observability.String("request_id", req.Context.RequestID),
						observability.Any("panic", r),
						observability.String("stack", string(debug.Stack())),
					)
					getMiddlewareMetrics().panicsRecovered.Inc()

					resp = event.InternalServerError("internal server error")
					err = nil
				}
			}()

			return next(ctx, req)
		}
	}
}
