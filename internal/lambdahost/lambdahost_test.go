package lambdahost

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/router"
)

func TestFromProxyRequest(t *testing.T) {
	t.Parallel()

	ev := FromProxyRequest(events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodPost,
		Path:                  "/api/items",
		Headers:               map[string]string{"Content-Type": "application/json"},
		QueryStringParameters: map[string]string{"limit": "5"},
		Body:                  `{"name":"x"}`,
		RequestContext:        events.APIGatewayProxyRequestContext{RequestID: "apigw-1"},
	})

	assert.Equal(t, http.MethodPost, ev.Method)
	assert.Equal(t, "/api/items", ev.RawPath)
	assert.Equal(t, "application/json", ev.Headers["Content-Type"])
	assert.Equal(t, "5", ev.QueryStringParameters["limit"])
	require.NotNil(t, ev.Body)
	assert.Equal(t, `{"name":"x"}`, *ev.Body)
	assert.Equal(t, "apigw-1", ev.RequestContext.RequestID)
}

func TestFromProxyRequest_EmptyBody(t *testing.T) {
	t.Parallel()

	ev := FromProxyRequest(events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/healthz",
	})
	assert.Nil(t, ev.Body)
}

func TestToProxyResponse(t *testing.T) {
	t.Parallel()

	resp := ToProxyResponse(event.OK(map[string]bool{"ok": true}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, resp.Body)
	assert.Equal(t, event.ContentTypeJSON, resp.Headers[event.HeaderContentType])
	assert.False(t, resp.IsBase64Encoded)
}

func TestHandler_Handle(t *testing.T) {
	t.Parallel()

	r := router.New()
	require.NoError(t, r.Handle(http.MethodGet, "/items/:id", func(ctx context.Context, req *event.Request) (*event.Response, error) {
		return event.OK(map[string]string{"id": req.PathParam("id")}), nil
	}))

	h := New(r)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/items/42",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"42"}`, resp.Body)
}

func TestHandler_Handle_NeverReturnsError(t *testing.T) {
	t.Parallel()

	r := router.New()
	require.NoError(t, r.Handle(http.MethodGet, "/boom", func(ctx context.Context, req *event.Request) (*event.Response, error) {
		panic("exploded")
	}))

	h := New(r)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/boom",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
