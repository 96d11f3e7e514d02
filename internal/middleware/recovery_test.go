package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/observability"
)

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	t.Parallel()

	panicking := Handler(func(_ context.Context, _ *event.Request) (*event.Response, error) {
		panic("database handle is nil")
	})

	composed := Chain(panicking, Recovery(observability.NopLogger()))

	resp, err := composed(context.Background(), testRequest("GET", "/x"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// The panic value must not leak to the client.
	assert.NotContains(t, resp.Body, "database handle")
	assert.Contains(t, resp.Body, "internal server error")
}

func TestRecovery_PassesThroughNormally(t *testing.T) {
	t.Parallel()

	ok := Handler(func(_ context.Context, _ *event.Request) (*event.Response, error) {
		return event.OK("fine"), nil
	})

	resp, err := Chain(ok, Recovery(observability.NopLogger()))(context.Background(), testRequest("GET", "/x"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRecovery_PreservesHandlerError(t *testing.T) {
	t.Parallel()

	failing := Handler(func(_ context.Context, _ *event.Request) (*event.Response, error) {
		return nil, assert.AnError
	})

	resp, err := Chain(failing, Recovery(observability.NopLogger()))(context.Background(), testRequest("GET", "/x"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, assert.AnError)
}
