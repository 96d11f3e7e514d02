package event

// Context is the per-request carrier for the request ID, the authenticated
// identity, and arbitrary middleware-to-handler values.
//
// A fresh Context is created by the router for every dispatch and destroyed
// when the response is returned. It is never shared across invocations.
// Middleware replaces the Request's Context through the WithX helpers, which
// copy rather than mutate, so a replacement is visible to everything
// downstream without affecting anything upstream.
type Context struct {
	// RequestID is always present; the router falls back to a generated ID
	// when the inbound event carries none.
	RequestID string

	// UserID is the authenticated user ID, empty until an auth middleware
	// sets it.
	UserID string

	// Email is the authenticated user email, empty until an auth middleware
	// sets it.
	Email string

	// Custom holds arbitrary values passed from middleware to handlers.
	Custom map[string]any
}

// NewContext creates a fresh per-request context.
func NewContext(requestID string) *Context {
	return &Context{
		RequestID: requestID,
		Custom:    make(map[string]any),
	}
}

// Clone returns a copy of the context with its own Custom map.
func (c *Context) Clone() *Context {
	clone := &Context{
		RequestID: c.RequestID,
		UserID:    c.UserID,
		Email:     c.Email,
		Custom:    make(map[string]any, len(c.Custom)),
	}
	for k, v := range c.Custom {
		clone.Custom[k] = v
	}
	return clone
}

// WithIdentity returns a copy of the context carrying the authenticated
// identity.
func (c *Context) WithIdentity(userID, email string) *Context {
	clone := c.Clone()
	clone.UserID = userID
	clone.Email = email
	return clone
}

// WithValue returns a copy of the context with key set to value in Custom.
func (c *Context) WithValue(key string, value any) *Context {
	clone := c.Clone()
	clone.Custom[key] = value
	return clone
}

// Value returns the custom value for key.
func (c *Context) Value(key string) (any, bool) {
	v, ok := c.Custom[key]
	return v, ok
}

// Authenticated reports whether an identity has been attached.
func (c *Context) Authenticated() bool {
	return c.UserID != ""
}
