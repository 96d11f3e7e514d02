// Package auth provides the identity verification contract consumed by the
// router's auth middleware, plus a JWT verifier implementation.
//
// The router core never parses credentials itself. The auth middleware hands
// the verifier a request-shaped Input (headers, path parameters, query
// parameters, body) and acts on the Result: on success the request Context is
// replaced with one carrying the identity; on failure the chain is
// short-circuited with 401 or 403 before any handler runs. Handlers read
// identity exclusively through the Context.
package auth
