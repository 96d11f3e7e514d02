package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
)

// RequestIDHeader is the header echoed on every response.
const RequestIDHeader = "X-Request-ID"

// RequestID returns a middleware that guarantees a request ID. When the host
// event carried none, a fresh UUID is generated. The ID is echoed in the
// X-Request-ID response header.
func RequestID() Middleware {
	return RequestIDWithGenerator(func() string {
		return uuid.New().String()
	})
}

// RequestIDWithGenerator returns a RequestID middleware using a custom ID
// generator.
func RequestIDWithGenerator(generator func() string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *event.Request) (*event.Response, error) {
			if req.Context.RequestID == "" {
				rc := req.Context.Clone()
				rc.RequestID = generator()
				req.Context = rc
			}

			resp, err := next(ctx, req)
			if resp != nil {
				resp.WithHeader(RequestIDHeader, req.Context.RequestID)
			}
			return resp, err
		}
	}
}
