package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
)

func TestKind_StatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{KindRouteNotFound, http.StatusNotFound},
		{KindMethodNotAllowed, http.StatusMethodNotAllowed},
		{KindBadRequest, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindHandlerError, http.StatusInternalServerError},
		{KindInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.kind.StatusCode())
		})
	}
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	err := NewRouteNotFound("GET", "/missing")
	assert.True(t, errors.Is(err, &Error{Kind: KindRouteNotFound}))
	assert.False(t, errors.Is(err, &Error{Kind: KindMethodNotAllowed}))
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("storage unavailable")
	err := NewHandlerError(cause)
	assert.ErrorIs(t, err, cause)
}

func TestError_Response_ErrorBodyShape(t *testing.T) {
	t.Parallel()

	resp := NewBadRequest("limit must be a number").Response()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "limit must be a number", body["error"])
	assert.Equal(t, event.ContentTypeJSON, resp.Headers[event.HeaderContentType])
}

func TestError_Response_ServerErrorsAreGeneric(t *testing.T) {
	t.Parallel()

	cause := errors.New("pq: connection refused host=db.internal")

	for _, err := range []*Error{NewHandlerError(cause), NewInternalError(cause)} {
		resp := err.Response()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, resp.Body, "db.internal")
		assert.Contains(t, resp.Body, "internal server error")
	}
}

func TestToResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "taxonomy error", err: NewForbidden("nope"), wantStatus: http.StatusForbidden},
		{name: "wrapped taxonomy error", err: fmt.Errorf("context: %w", NewUnauthorized("expired")), wantStatus: http.StatusUnauthorized},
		{name: "missing body sentinel", err: event.ErrNoBody, wantStatus: http.StatusBadRequest},
		{name: "malformed body sentinel", err: fmt.Errorf("%w: unexpected EOF", event.ErrMalformedBody), wantStatus: http.StatusBadRequest},
		{name: "arbitrary handler error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := ToResponse(tt.err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestToResponse_MalformedBodyHidesDecoderDetail(t *testing.T) {
	t.Parallel()

	resp := ToResponse(fmt.Errorf("%w: invalid character 'x'", event.ErrMalformedBody))
	assert.NotContains(t, resp.Body, "invalid character")
	assert.Contains(t, resp.Body, "malformed request body")
}
