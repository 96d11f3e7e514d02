package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/middleware"
	"github.com/vyrodovalexey/avfnrouter/internal/observability"
)

// ErrRouterFinalized is returned when routes or middleware are registered
// after the first dispatch.
var ErrRouterFinalized = errors.New("router is finalized")

// route is one registered (method, pattern, handler) entry. After the router
// is finalized, handler holds the composed middleware continuation; the bare
// terminal handler is no longer reachable.
type route struct {
	method  string
	pattern *PathPattern
	handler middleware.Handler
}

// Router owns the route table and drives dispatch. Registration happens at
// cold start; the table freezes on the first dispatch and is thereafter
// read-only and safe for concurrent use.
type Router struct {
	routes      []*route
	middlewares []middleware.Middleware
	cors        *middleware.CORS
	logger      observability.Logger

	mu        sync.Mutex
	finalized bool
	finalize  sync.Once
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used at the dispatch boundary.
func WithLogger(logger observability.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithCORS sets the CORS configuration. Permissive defaults apply otherwise.
func WithCORS(cfg middleware.CORSConfig) Option {
	return func(r *Router) {
		r.cors = middleware.NewCORS(cfg)
	}
}

// New creates a router with the given options.
func New(opts ...Option) *Router {
	r := &Router{
		logger: observability.NopLogger(),
		cors:   middleware.NewCORS(middleware.DefaultCORSConfig()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use appends middleware to the chain. Middleware run in registration order
// for pre-processing and reverse order for post-processing. Registration
// after the first dispatch fails.
func (r *Router) Use(mws ...middleware.Middleware) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized {
		return ErrRouterFinalized
	}
	for _, mw := range mws {
		if mw == nil {
			return errors.New("nil middleware")
		}
	}
	r.middlewares = append(r.middlewares, mws...)
	return nil
}

// Handle registers a handler for the given method and pattern. Ties between
// overlapping patterns are resolved by registration order: the first
// registered route wins, so register literal routes before parameterized
// ones that cover the same paths. Registration after the first dispatch
// fails.
func (r *Router) Handle(method, pattern string, h middleware.Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized {
		return ErrRouterFinalized
	}
	if h == nil {
		return errors.New("nil handler")
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return errors.New("method must not be empty")
	}

	compiled, err := CompilePattern(pattern)
	if err != nil {
		return fmt.Errorf("failed to compile route %s %s: %w", method, pattern, err)
	}

	for _, existing := range r.routes {
		if existing.method == method && existing.pattern.Raw() == compiled.Raw() {
			return fmt.Errorf("duplicate route: %s %s", method, pattern)
		}
	}

	r.routes = append(r.routes, &route{
		method:  method,
		pattern: compiled,
		handler: h,
	})
	return nil
}

// MustHandle is Handle that panics on error, for static cold-start route
// tables.
func (r *Router) MustHandle(method, pattern string, h middleware.Handler) {
	if err := r.Handle(method, pattern, h); err != nil {
		panic(err)
	}
}

// Finalize freezes the route table and composes every route's middleware
// chain. It runs once; Dispatch calls it implicitly on first use. After
// Finalize, each route's stored handler is the composed continuation and the
// terminal handler is only reachable through it.
func (r *Router) Finalize() {
	r.finalize.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.finalized = true
		for _, rt := range r.routes {
			rt.handler = middleware.Chain(rt.handler, r.middlewares...)
		}
	})
}

// Dispatch resolves the inbound event to a handler, runs the middleware
// chain, and returns the response. It never panics and never returns nil.
func (r *Router) Dispatch(ctx context.Context, ev *event.Event) (resp *event.Response) {
	r.Finalize()

	start := time.Now()
	metrics := getRouterMetrics()

	req := event.NewRequest(ev)
	if req.Context.RequestID == "" {
		req.Context.RequestID = uuid.New().String()
	}
	ctx = observability.ContextWithRequestID(ctx, req.Context.RequestID)
	logger := r.logger.WithContext(ctx)

	routeLabel := "none"
	defer func() {
		// Last line of defense: a panic anywhere in dispatch, including the
		// error-conversion path, still degrades to a 500 response.
		if rec := recover(); rec != nil {
			logger.Error("dispatch panic",
				observability.String("method", req.Method),
				observability.String("path", req.RawPath),
				observability.Any("panic", rec),
			)
			resp = event.InternalServerError("internal server error")
		}

		resp = r.cors.Apply(resp, req.Header(middleware.HeaderOrigin))
		metrics.requestsTotal.WithLabelValues(req.Method, routeLabel, strconv.Itoa(resp.StatusCode)).Inc()
		metrics.dispatchDuration.WithLabelValues(req.Method, routeLabel).Observe(time.Since(start).Seconds())
	}()

	// CORS preflight is answered before route selection, before middleware,
	// and before auth.
	if req.Method == http.MethodOptions {
		if allowed := r.allowedMethods(req.RawPath); len(allowed) > 0 {
			metrics.preflightTotal.Inc()
			routeLabel = "preflight"
			return r.cors.Preflight(req.Header(middleware.HeaderOrigin), allowed)
		}
	}

	matched, params, pathMatched := r.resolve(req.Method, req.RawPath)
	if matched == nil {
		var routeErr *Error
		if pathMatched {
			routeErr = NewMethodNotAllowed(req.Method, req.RawPath)
			metrics.routeMisses.WithLabelValues(KindMethodNotAllowed.String()).Inc()
		} else {
			routeErr = NewRouteNotFound(req.Method, req.RawPath)
			metrics.routeMisses.WithLabelValues(KindRouteNotFound.String()).Inc()
		}

		logger.Warn("route miss",
			observability.String("method", req.Method),
			observability.String("path", req.RawPath),
			observability.String("kind", routeErr.Kind.String()),
		)

		miss := routeErr.Response()
		if routeErr.Kind == KindMethodNotAllowed {
			miss.WithHeader("Allow", strings.Join(r.allowedMethods(req.RawPath), ", "))
		}
		return miss
	}

	routeLabel = matched.pattern.Raw()
	req.SetPathParams(params)

	// The stored handler is the composed continuation; invoking anything
	// else here would silently bypass the middleware chain.
	handlerResp, err := matched.handler(ctx, req)
	if err != nil {
		return r.convertError(logger, req, err)
	}
	if handlerResp == nil {
		logger.Error("handler returned no response",
			observability.String("method", req.Method),
			observability.String("path", req.RawPath),
		)
		return event.InternalServerError("internal server error")
	}
	return handlerResp
}

// resolve scans routes in registration order. It returns the first route
// whose pattern matches the path and whose method equals the request method,
// along with the extracted path parameters. pathMatched reports whether any
// pattern matched the path regardless of method, which distinguishes 405
// from 404.
func (r *Router) resolve(method, path string) (matched *route, params map[string]string, pathMatched bool) {
	for _, rt := range r.routes {
		p, ok := rt.pattern.Match(path)
		if !ok {
			continue
		}
		pathMatched = true
		if rt.method == method {
			return rt, p, true
		}
	}
	return nil, nil, pathMatched
}

// allowedMethods returns the methods registered for any pattern matching the
// path, in registration order, with OPTIONS appended since the router
// answers it directly.
func (r *Router) allowedMethods(path string) []string {
	var methods []string
	seen := make(map[string]bool)

	for _, rt := range r.routes {
		if _, ok := rt.pattern.Match(path); !ok {
			continue
		}
		if !seen[rt.method] {
			seen[rt.method] = true
			methods = append(methods, rt.method)
		}
	}

	if len(methods) > 0 && !seen[http.MethodOptions] {
		methods = append(methods, http.MethodOptions)
	}
	return methods
}

// convertError maps a propagated error to its response, logging framework
// errors apart from handler failures.
func (r *Router) convertError(logger observability.Logger, req *event.Request, err error) *event.Response {
	fields := []observability.Field{
		observability.String("method", req.Method),
		observability.String("path", req.RawPath),
		observability.Error(err),
	}

	var routerErr *Error
	if errors.As(err, &routerErr) {
		switch routerErr.Kind {
		case KindHandlerError, KindInternalError:
			logger.Error("handler failed", fields...)
		default:
			logger.Warn("request rejected", fields...)
		}
	} else if errors.Is(err, event.ErrNoBody) || errors.Is(err, event.ErrMalformedBody) {
		logger.Warn("request rejected", fields...)
	} else {
		logger.Error("handler failed", fields...)
	}

	return ToResponse(err)
}

// Routes returns the registered (method, pattern) pairs in registration
// order, for diagnostics.
func (r *Router) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt.method+" "+rt.pattern.Raw())
	}
	return out
}
