// Package event defines the normalized request/response model for the
// function router.
//
// An Event is the inbound invocation payload handed to the router by the
// hosting runtime. The router turns it into a Request, threads the Request
// through the middleware chain, and produces a Response. The Response is the
// only representation allowed to leave the dispatch boundary.
//
// Requests are read-only to handlers by convention, with one exception: the
// per-request Context, which middleware may replace before delegating to the
// rest of the chain.
package event
