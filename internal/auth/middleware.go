package auth

import (
	"context"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/middleware"
	"github.com/vyrodovalexey/avfnrouter/internal/observability"
)

// middlewareOptions holds the configurable behavior of the auth middleware.
type middlewareOptions struct {
	logger    observability.Logger
	skipPaths map[string]bool
}

// MiddlewareOption configures the auth middleware.
type MiddlewareOption func(*middlewareOptions)

// WithLogger sets the logger.
func WithLogger(logger observability.Logger) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.logger = logger
	}
}

// WithSkipPaths exempts exact paths from authentication.
func WithSkipPaths(paths ...string) MiddlewareOption {
	return func(o *middlewareOptions) {
		for _, p := range paths {
			o.skipPaths[p] = true
		}
	}
}

// Middleware returns a middleware that authenticates every request through
// the verifier. On success the request Context is replaced with one carrying
// the verified identity and claims, visible to all downstream middleware and
// the handler. On failure the chain is short-circuited: 401 when identity
// could not be established, 403 when the identity is denied.
func Middleware(v Verifier, opts ...MiddlewareOption) middleware.Middleware {
	o := &middlewareOptions{
		logger:    observability.NopLogger(),
		skipPaths: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(o)
	}

	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req *event.Request) (*event.Response, error) {
			if o.skipPaths[req.RawPath] {
				return next(ctx, req)
			}

			body, _ := req.Body()
			result, err := v.Verify(ctx, &Input{
				Headers:               req.Headers(),
				PathParameters:        req.PathParams(),
				QueryStringParameters: req.QueryParams(),
				Body:                  body,
			})
			if err != nil {
				o.logger.Warn("authentication failed",
					observability.String("path", req.RawPath),
					observability.String("request_id", req.Context.RequestID),
					observability.Error(err),
				)
				middleware.IncAuthRejection("unauthorized")
				return event.Unauthorized("authentication required"), nil
			}

			if !result.IsAuthorized {
				reason := result.Error
				if reason == "" {
					reason = "access denied"
				}
				o.logger.Warn("authorization denied",
					observability.String("path", req.RawPath),
					observability.String("request_id", req.Context.RequestID),
					observability.String("reason", reason),
				)
				middleware.IncAuthRejection("forbidden")
				return event.Forbidden(reason), nil
			}

			rc := req.Context.WithIdentity(result.UserID, result.Email)
			for name, value := range result.Claims {
				rc.Custom[name] = value
			}
			req.Context = rc

			return next(ctx, req)
		}
	}
}
