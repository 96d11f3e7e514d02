package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Body parsing sentinel errors. The router converts both to a 400 response.
var (
	// ErrNoBody is returned by Bind when the request carried no body.
	ErrNoBody = errors.New("request body is required")

	// ErrMalformedBody is returned by Bind when the body is not valid JSON
	// for the target type.
	ErrMalformedBody = errors.New("malformed request body")
)

// Request is the normalized inbound request handed to middleware and
// handlers. It is constructed once per invocation and is read-only to
// handlers, except for Context.
type Request struct {
	// Method is the HTTP method, upper-cased.
	Method string

	// RawPath is the request path.
	RawPath string

	// Context is the per-request carrier for identity and custom values.
	// Middleware may replace it before delegating to the rest of the chain.
	Context *Context

	headers     map[string]string
	queryParams map[string]string
	pathParams  map[string]string
	rawBody     *string
}

// NewRequest constructs a Request from an inbound event. Path parameters are
// empty until the router matches a route.
func NewRequest(ev *Event) *Request {
	headers := make(map[string]string, len(ev.Headers))
	for k, v := range ev.Headers {
		headers[strings.ToLower(k)] = v
	}

	queryParams := make(map[string]string, len(ev.QueryStringParameters))
	for k, v := range ev.QueryStringParameters {
		queryParams[k] = v
	}

	return &Request{
		Method:      strings.ToUpper(ev.Method),
		RawPath:     ev.RawPath,
		Context:     NewContext(ev.RequestContext.RequestID),
		headers:     headers,
		queryParams: queryParams,
		pathParams:  make(map[string]string),
		rawBody:     ev.Body,
	}
}

// Header returns the value of the named header. Lookup is case-insensitive.
func (r *Request) Header(name string) string {
	return r.headers[strings.ToLower(name)]
}

// Headers returns a copy of all request headers. Keys are lower-cased.
func (r *Request) Headers() map[string]string {
	headers := make(map[string]string, len(r.headers))
	for k, v := range r.headers {
		headers[k] = v
	}
	return headers
}

// Query returns the value of the named query parameter and whether it was set.
func (r *Request) Query(name string) (string, bool) {
	v, ok := r.queryParams[name]
	return v, ok
}

// QueryDefault returns the value of the named query parameter, or def when it
// is unset.
func (r *Request) QueryDefault(name, def string) string {
	if v, ok := r.queryParams[name]; ok {
		return v
	}
	return def
}

// QueryParams returns a copy of all query parameters.
func (r *Request) QueryParams() map[string]string {
	params := make(map[string]string, len(r.queryParams))
	for k, v := range r.queryParams {
		params[k] = v
	}
	return params
}

// PathParam returns the value bound to the named path parameter, empty when
// the route pattern does not define it.
func (r *Request) PathParam(name string) string {
	return r.pathParams[name]
}

// PathParams returns a copy of all bound path parameters.
func (r *Request) PathParams() map[string]string {
	params := make(map[string]string, len(r.pathParams))
	for k, v := range r.pathParams {
		params[k] = v
	}
	return params
}

// SetPathParams binds the matcher's extracted parameters. It is called by the
// router after route resolution and must not be called from handlers.
func (r *Request) SetPathParams(params map[string]string) {
	if params == nil {
		params = make(map[string]string)
	}
	r.pathParams = params
}

// Body returns the raw request body and whether one was present.
func (r *Request) Body() (string, bool) {
	if r.rawBody == nil {
		return "", false
	}
	return *r.rawBody, true
}

// Bind parses the request body as JSON into v. It returns ErrNoBody when the
// request carried no body and an error wrapping ErrMalformedBody when the
// body is not valid JSON for v.
func (r *Request) Bind(v any) error {
	body, ok := r.Body()
	if !ok || strings.TrimSpace(body) == "" {
		return ErrNoBody
	}

	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}
