// Package lambdahost adapts the router to the AWS Lambda proxy integration.
// It translates API Gateway proxy events into the normalized event model and
// back, so the router core stays host-agnostic.
package lambdahost

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/router"
)

// FromProxyRequest converts an API Gateway proxy request into the normalized
// inbound event.
func FromProxyRequest(req events.APIGatewayProxyRequest) *event.Event {
	ev := &event.Event{
		Method:                req.HTTPMethod,
		RawPath:               req.Path,
		Headers:               req.Headers,
		QueryStringParameters: req.QueryStringParameters,
		RequestContext: event.RequestContext{
			RequestID: req.RequestContext.RequestID,
		},
	}
	if req.Body != "" {
		body := req.Body
		ev.Body = &body
	}
	return ev
}

// ToProxyResponse converts a router response into the API Gateway proxy
// response shape.
func ToProxyResponse(resp *event.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode,
		Headers:         resp.Headers,
		Body:            resp.Body,
		IsBase64Encoded: resp.IsBase64Encoded,
	}
}

// Handler bridges Lambda invocations to a router.
type Handler struct {
	router *router.Router
}

// New creates a Lambda handler for the given router.
func New(r *router.Router) *Handler {
	return &Handler{router: r}
}

// Handle processes one Lambda invocation. Dispatch never fails, so the error
// return is always nil; Lambda-level failures are reserved for the runtime
// itself.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := h.router.Dispatch(ctx, FromProxyRequest(req))
	return ToProxyResponse(resp), nil
}

// Start hands the handler to the Lambda runtime. It blocks for the lifetime
// of the process.
func (h *Handler) Start() {
	lambda.Start(h.Handle)
}
