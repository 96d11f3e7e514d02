package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
)

// Kind identifies one member of the closed routing error taxonomy. Every
// Kind has exactly one status code and every Error is convertible to an
// event.Response before it leaves the dispatch boundary.
type Kind int

// Routing error kinds.
const (
	// KindRouteNotFound means no registered pattern matched the path.
	KindRouteNotFound Kind = iota

	// KindMethodNotAllowed means a pattern matched the path but no route
	// shares the request method.
	KindMethodNotAllowed

	// KindBadRequest means the request was malformed (body parsing,
	// parameter validation).
	KindBadRequest

	// KindUnauthorized means the request lacked valid credentials.
	KindUnauthorized

	// KindForbidden means the authenticated identity is denied.
	KindForbidden

	// KindHandlerError means a handler surfaced a business-logic failure.
	KindHandlerError

	// KindInternalError means an unexpected framework failure, including
	// failures inside the error-conversion path itself.
	KindInternalError
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindRouteNotFound:
		return "route_not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindHandlerError:
		return "handler_error"
	default:
		return "internal_error"
	}
}

// StatusCode returns the fixed status code for the kind.
func (k Kind) StatusCode() int {
	switch k {
	case KindRouteNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is a routing or framework error carrying its taxonomy kind, a
// client-safe message, and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// Response converts the error to its fixed response. Server-side kinds never
// expose their message or cause to the client.
func (e *Error) Response() *event.Response {
	message := e.Message
	switch e.Kind {
	case KindHandlerError, KindInternalError:
		message = "internal server error"
	}
	if message == "" {
		message = http.StatusText(e.Kind.StatusCode())
	}
	return event.ErrorResponse(e.Kind.StatusCode(), message)
}

// NewRouteNotFound creates a route-not-found error.
func NewRouteNotFound(method, path string) *Error {
	return &Error{
		Kind:    KindRouteNotFound,
		Message: fmt.Sprintf("no route found for %s %s", method, path),
	}
}

// NewMethodNotAllowed creates a method-not-allowed error.
func NewMethodNotAllowed(method, path string) *Error {
	return &Error{
		Kind:    KindMethodNotAllowed,
		Message: fmt.Sprintf("method %s not allowed for %s", method, path),
	}
}

// NewBadRequest creates a bad-request error.
func NewBadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// NewUnauthorized creates an unauthorized error.
func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewForbidden creates a forbidden error.
func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewHandlerError wraps a business-logic failure surfaced by a handler.
func NewHandlerError(cause error) *Error {
	return &Error{Kind: KindHandlerError, Message: "handler failed", Cause: cause}
}

// NewInternalError wraps an unexpected framework failure.
func NewInternalError(cause error) *Error {
	return &Error{Kind: KindInternalError, Message: "internal error", Cause: cause}
}

// ToResponse converts any error into an event.Response. Taxonomy errors map
// through their kind, body-parsing sentinels become 400, and everything else
// is treated as a handler failure. The conversion itself cannot fail; it
// degrades to a generic 500.
func ToResponse(err error) *event.Response {
	var routerErr *Error
	if errors.As(err, &routerErr) {
		return routerErr.Response()
	}

	if errors.Is(err, event.ErrNoBody) {
		return NewBadRequest(event.ErrNoBody.Error()).Response()
	}
	if errors.Is(err, event.ErrMalformedBody) {
		return NewBadRequest(event.ErrMalformedBody.Error()).Response()
	}

	return NewHandlerError(err).Response()
}
