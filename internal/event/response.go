package event

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// HeaderContentType is the Content-Type header name.
const HeaderContentType = "Content-Type"

// ContentTypeJSON is the JSON content type.
const ContentTypeJSON = "application/json"

// Response is the outbound result of a dispatch. Every outcome of the router,
// including every error, is expressed as a Response.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// NewResponse creates a response with the given status, body, and headers.
// The Content-Type header defaults to JSON when not supplied.
func NewResponse(statusCode int, body string, headers map[string]string) *Response {
	h := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		h[k] = v
	}
	if _, ok := h[HeaderContentType]; !ok {
		h[HeaderContentType] = ContentTypeJSON
	}
	return &Response{
		StatusCode: statusCode,
		Headers:    h,
		Body:       body,
	}
}

// JSON creates a response with the given status and v marshaled as the JSON
// body. A marshaling failure degrades to a 500 response rather than
// propagating.
func JSON(statusCode int, v any) *Response {
	data, err := json.Marshal(v)
	if err != nil {
		return InternalServerError("internal server error")
	}
	return NewResponse(statusCode, string(data), nil)
}

// OK creates a 200 response with v as the JSON body.
func OK(v any) *Response {
	return JSON(http.StatusOK, v)
}

// Created creates a 201 response with v as the JSON body.
func Created(v any) *Response {
	return JSON(http.StatusCreated, v)
}

// NoContent creates a 204 response with an empty body.
func NoContent() *Response {
	return NewResponse(http.StatusNoContent, "", nil)
}

// errorBody renders the stable error body shape {"error": message}.
func errorBody(message string) string {
	data, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		return `{"error":"internal server error"}`
	}
	return string(data)
}

// ErrorResponse creates an error response with the given status and the
// stable {"error": message} body shape.
func ErrorResponse(statusCode int, message string) *Response {
	return NewResponse(statusCode, errorBody(message), nil)
}

// BadRequest creates a 400 error response.
func BadRequest(message string) *Response {
	return ErrorResponse(http.StatusBadRequest, message)
}

// Unauthorized creates a 401 error response.
func Unauthorized(message string) *Response {
	return ErrorResponse(http.StatusUnauthorized, message)
}

// Forbidden creates a 403 error response.
func Forbidden(message string) *Response {
	return ErrorResponse(http.StatusForbidden, message)
}

// NotFound creates a 404 error response.
func NotFound(message string) *Response {
	return ErrorResponse(http.StatusNotFound, message)
}

// MethodNotAllowed creates a 405 error response.
func MethodNotAllowed(message string) *Response {
	return ErrorResponse(http.StatusMethodNotAllowed, message)
}

// InternalServerError creates a 500 error response.
func InternalServerError(message string) *Response {
	return ErrorResponse(http.StatusInternalServerError, message)
}

// WithHeader returns the response with the header set. The receiver is
// modified and returned for chaining.
func (r *Response) WithHeader(name, value string) *Response {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[name] = value
	return r
}

// WithHeaders sets every header in h on the response. Existing headers with
// the same name are overwritten.
func (r *Response) WithHeaders(h map[string]string) *Response {
	for name, value := range h {
		r.WithHeader(name, value)
	}
	return r
}

// shapedResponse mirrors the {statusCode, headers, body} shape returned by
// external business controllers.
type shapedResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       json.RawMessage   `json:"body"`
}

// FromShaped converts a pre-shaped {statusCode, headers, body} value, as
// returned by external business controllers, into a canonical Response. The
// value may be a *Response (returned unchanged), a map, or any struct that
// marshals to the shaped form. A value without a usable statusCode is
// rejected.
func FromShaped(v any) (*Response, error) {
	if resp, ok := v.(*Response); ok {
		return resp, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("not a shaped response: %w", err)
	}

	var shaped shapedResponse
	if err := json.Unmarshal(data, &shaped); err != nil {
		return nil, fmt.Errorf("not a shaped response: %w", err)
	}

	if shaped.StatusCode < 100 || shaped.StatusCode > 599 {
		return nil, fmt.Errorf("shaped response has invalid status code %d", shaped.StatusCode)
	}

	body := ""
	if len(shaped.Body) > 0 {
		// A JSON string body is unwrapped; any other JSON value is kept as
		// its serialized form.
		var s string
		if err := json.Unmarshal(shaped.Body, &s); err == nil {
			body = s
		} else {
			body = string(shaped.Body)
		}
	}

	return NewResponse(shaped.StatusCode, body, shaped.Headers), nil
}
