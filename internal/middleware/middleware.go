// Package middleware provides the middleware chain executor and the built-in
// cross-cutting middleware for the function router.
package middleware

import (
	"context"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
)

// Handler is the single function-shaped contract for terminal route handlers
// and for every composed continuation. The ctx governs cancellation and
// deadlines supplied by the hosting runtime; per-request identity and custom
// values travel on req.Context.
type Handler func(ctx context.Context, req *event.Request) (*event.Response, error)

// Middleware wraps a Handler with pre- and post-processing. A middleware must
// call next at most once. If it does not call next, its own return value is
// the final response and nothing downstream runs. A middleware may replace
// req.Context before calling next; the replacement is visible to everything
// downstream.
type Middleware func(next Handler) Handler

// Chain composes mws around h into a single continuation. The fold runs
// right to left so that mws[0] is outermost: it is the first middleware to
// see the request and the last to see the response.
//
// The composed continuation is the only way the terminal handler is reached;
// callers must never retain a separate direct path to h.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
