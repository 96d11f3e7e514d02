package health

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
)

func TestChecker_Evaluate_NoChecks(t *testing.T) {
	t.Parallel()

	c := NewChecker("1.2.3")
	resp := c.Evaluate(context.Background())

	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Empty(t, resp.Checks)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestChecker_Evaluate_AggregatesChecks(t *testing.T) {
	t.Parallel()

	c := NewChecker("dev")
	c.RegisterCheck("store", func(ctx context.Context) Check {
		return Check{Status: StatusHealthy}
	})
	c.RegisterCheck("upstream", func(ctx context.Context) Check {
		return Check{Status: StatusUnhealthy, Message: "connection refused"}
	})

	resp := c.Evaluate(context.Background())
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.Equal(t, StatusHealthy, resp.Checks["store"].Status)
	assert.Equal(t, "connection refused", resp.Checks["upstream"].Message)
}

func TestChecker_RegisterCheck_Replaces(t *testing.T) {
	t.Parallel()

	c := NewChecker("dev")
	c.RegisterCheck("store", func(ctx context.Context) Check {
		return Check{Status: StatusUnhealthy}
	})
	c.RegisterCheck("store", func(ctx context.Context) Check {
		return Check{Status: StatusHealthy}
	})

	resp := c.Evaluate(context.Background())
	assert.Equal(t, StatusHealthy, resp.Status)
}

func TestChecker_Handler(t *testing.T) {
	t.Parallel()

	t.Run("healthy answers 200", func(t *testing.T) {
		t.Parallel()

		c := NewChecker("dev")
		resp, err := c.Handler()(context.Background(), &event.Request{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body Response
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
		assert.Equal(t, StatusHealthy, body.Status)
	})

	t.Run("failing check answers 503", func(t *testing.T) {
		t.Parallel()

		c := NewChecker("dev")
		c.RegisterCheck("store", func(ctx context.Context) Check {
			return Check{Status: StatusUnhealthy}
		})

		resp, err := c.Handler()(context.Background(), &event.Request{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
