// Package router resolves normalized inbound events to registered handlers
// and drives the middleware chain.
//
// A Router is built once at cold start: routes are registered with Handle,
// middleware with Use, and the table is frozen on the first Dispatch. After
// that point the router is read-only and safe for concurrent use without
// locking.
//
// Dispatch guarantees that every outcome becomes an event.Response: a CORS
// preflight answer, the handler's own response, or the fixed conversion of a
// routing or handler error. Nothing escapes the dispatch boundary.
package router
