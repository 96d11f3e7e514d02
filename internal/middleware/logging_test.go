package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/observability"
)

// observedLogger wraps a zap test observer behind the observability.Logger
// interface.
type observedLogger struct {
	logger *zap.Logger
}

func (l *observedLogger) Debug(msg string, fields ...observability.Field) { l.logger.Debug(msg, fields...) }
func (l *observedLogger) Info(msg string, fields ...observability.Field)  { l.logger.Info(msg, fields...) }
func (l *observedLogger) Warn(msg string, fields ...observability.Field)  { l.logger.Warn(msg, fields...) }
func (l *observedLogger) Error(msg string, fields ...observability.Field) { l.logger.Error(msg, fields...) }
func (l *observedLogger) With(fields ...observability.Field) observability.Logger {
	return &observedLogger{logger: l.logger.With(fields...)}
}
func (l *observedLogger) WithContext(_ context.Context) observability.Logger { return l }
func (l *observedLogger) Sync() error                                        { return nil }

func TestLogging_LogsOutcome(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	logger := &observedLogger{logger: zap.New(core)}

	handler := Handler(func(_ context.Context, _ *event.Request) (*event.Response, error) {
		return event.OK("done"), nil
	})

	_, err := Chain(handler, Logging(logger))(context.Background(), testRequest("GET", "/api/items"))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "request", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/items", fields["path"])
	assert.Equal(t, int64(200), fields["status"])
	assert.Equal(t, "mw-test", fields["request_id"])
}

func TestLogging_LogsFailureAtErrorLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	logger := &observedLogger{logger: zap.New(core)}

	handler := Handler(func(_ context.Context, _ *event.Request) (*event.Response, error) {
		return nil, assert.AnError
	})

	_, err := Chain(handler, Logging(logger))(context.Background(), testRequest("GET", "/x"))
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Equal(t, "request failed", entries[0].Message)
}
