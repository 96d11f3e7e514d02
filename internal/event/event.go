package event

// Event is the normalized inbound invocation payload consumed by the router.
// The hosting runtime (Lambda adapter, local HTTP adapter, tests) is
// responsible for producing it.
type Event struct {
	// Method is the HTTP method of the request.
	Method string `json:"method"`

	// RawPath is the request path, without query string.
	RawPath string `json:"rawPath"`

	// Headers contains the request headers. Lookup through Request.Header
	// is case-insensitive regardless of the casing used here.
	Headers map[string]string `json:"headers,omitempty"`

	// QueryStringParameters contains the parsed query parameters.
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`

	// Body is the raw request body, absent when the request carried none.
	Body *string `json:"body,omitempty"`

	// RequestContext carries invocation metadata supplied by the host.
	RequestContext RequestContext `json:"requestContext"`
}

// RequestContext carries host-supplied invocation metadata.
type RequestContext struct {
	// RequestID is the host-assigned correlation ID for this invocation.
	RequestID string `json:"requestId"`
}
