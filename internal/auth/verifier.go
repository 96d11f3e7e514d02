package auth

import "context"

// Input is the request-shaped payload handed to a verifier. The middleware
// populates it from the in-flight request; verifiers must not reach into the
// request any other way.
type Input struct {
	Headers               map[string]string `json:"headers"`
	PathParameters        map[string]string `json:"pathParameters"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Body                  string            `json:"body"`
}

// Result is a verifier's verdict.
type Result struct {
	// IsAuthorized reports whether the credentials identify a permitted
	// caller. When false with a nil verification error, the middleware
	// responds 403.
	IsAuthorized bool `json:"isAuthorized"`

	// UserID identifies the authenticated user.
	UserID string `json:"userId,omitempty"`

	// Email is the authenticated user's email.
	Email string `json:"email,omitempty"`

	// Claims carries verifier-supplied claims propagated into the request
	// Context's custom values.
	Claims map[string]any `json:"claims,omitempty"`

	// Error is an optional human-readable denial reason.
	Error string `json:"error,omitempty"`
}

// Verifier validates the credentials carried by a request. Implementations
// may perform I/O (remote key sets, identity services) and must honor ctx
// cancellation.
//
// A failure to establish identity (missing or invalid credentials) is
// reported as an error; an established identity that is denied is reported
// as a Result with IsAuthorized false.
type Verifier interface {
	Verify(ctx context.Context, in *Input) (*Result, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, in *Input) (*Result, error)

// Verify implements Verifier.
func (f VerifierFunc) Verify(ctx context.Context, in *Input) (*Result, error) {
	return f(ctx, in)
}
