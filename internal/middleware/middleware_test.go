package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
)

// testRequest builds a request for middleware tests.
func testRequest(method, path string) *event.Request {
	return event.NewRequest(&event.Event{
		Method:         method,
		RawPath:        path,
		RequestContext: event.RequestContext{RequestID: "mw-test"},
	})
}

func named(name string, order *[]string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *event.Request) (*event.Response, error) {
			*order = append(*order, name+":pre")
			resp, err := next(ctx, req)
			*order = append(*order, name+":post")
			return resp, err
		}
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	terminal := Handler(func(_ context.Context, _ *event.Request) (*event.Response, error) {
		order = append(order, "handler")
		return event.NoContent(), nil
	})

	composed := Chain(terminal, named("m1", &order), named("m2", &order), named("m3", &order))

	resp, err := composed(context.Background(), testRequest("GET", "/x"))
	require.NoError(t, err)
	require.Equal(t, 204, resp.StatusCode)

	assert.Equal(t, []string{
		"m1:pre", "m2:pre", "m3:pre",
		"handler",
		"m3:post", "m2:post", "m1:post",
	}, order)
}

func TestChain_NoMiddleware(t *testing.T) {
	t.Parallel()

	terminal := Handler(func(_ context.Context, _ *event.Request) (*event.Response, error) {
		return event.OK("plain"), nil
	})

	composed := Chain(terminal)
	resp, err := composed(context.Background(), testRequest("GET", "/x"))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestChain_ShortCircuitStopsDownstream(t *testing.T) {
	t.Parallel()

	var downstreamRan bool
	terminal := Handler(func(_ context.Context, _ *event.Request) (*event.Response, error) {
		downstreamRan = true
		return event.NoContent(), nil
	})

	stop := Middleware(func(next Handler) Handler {
		return func(_ context.Context, _ *event.Request) (*event.Response, error) {
			return event.Forbidden("stop"), nil
		}
	})
	after := Middleware(func(next Handler) Handler {
		return func(ctx context.Context, req *event.Request) (*event.Response, error) {
			downstreamRan = true
			return next(ctx, req)
		}
	})

	composed := Chain(terminal, stop, after)
	resp, err := composed(context.Background(), testRequest("GET", "/x"))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	assert.False(t, downstreamRan)
}

func TestChain_ResponseWrappingPropagates(t *testing.T) {
	t.Parallel()

	terminal := Handler(func(_ context.Context, _ *event.Request) (*event.Response, error) {
		return event.NoContent(), nil
	})

	tag := Middleware(func(next Handler) Handler {
		return func(ctx context.Context, req *event.Request) (*event.Response, error) {
			resp, err := next(ctx, req)
			if resp != nil {
				resp.WithHeader("X-Processed-By", "tag")
			}
			return resp, err
		}
	})

	resp, err := Chain(terminal, tag)(context.Background(), testRequest("GET", "/x"))
	require.NoError(t, err)
	assert.Equal(t, "tag", resp.Headers["X-Processed-By"])
}
