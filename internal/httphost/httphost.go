// Package httphost serves a router over net/http for local development. It
// performs the same event normalization the Lambda adapter does, so handlers
// behave identically under both hosts. It is a development harness, not a
// production edge.
package httphost

import (
	"encoding/base64"
	"io"
	"net/http"
	"time"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/observability"
	"github.com/vyrodovalexey/avfnrouter/internal/router"
)

// Server serves a router over HTTP.
type Server struct {
	router *router.Router
	logger observability.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger observability.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a development server for the given router.
func New(r *router.Router, opts ...Option) *Server {
	s := &Server{
		router: r,
		logger: observability.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromHTTPRequest normalizes an *http.Request into an inbound event. Only
// the first value of repeated headers and query parameters is kept, matching
// the normalized event shape.
func FromHTTPRequest(r *http.Request) (*event.Event, error) {
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	query := make(map[string]string)
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			query[name] = values[0]
		}
	}

	ev := &event.Event{
		Method:                r.Method,
		RawPath:               r.URL.Path,
		Headers:               headers,
		QueryStringParameters: query,
	}

	if r.Body != nil {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(data) > 0 {
			body := string(data)
			ev.Body = &body
		}
	}

	return ev, nil
}

// Handler returns an http.Handler that dispatches every request through the
// router.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ev, err := FromHTTPRequest(r)
		if err != nil {
			s.logger.Error("failed to read request", observability.Error(err))
			http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			return
		}

		resp := s.router.Dispatch(r.Context(), ev)
		writeResponse(w, resp)
	})
}

// writeResponse translates a router response onto the ResponseWriter.
func writeResponse(w http.ResponseWriter, resp *event.Response) {
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(resp.StatusCode)

	body := []byte(resp.Body)
	if resp.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(resp.Body); err == nil {
			body = decoded
		}
	}
	_, _ = w.Write(body)
}

// ListenAndServe serves the router on addr until the server fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("development server listening", observability.String("addr", addr))
	return srv.ListenAndServe()
}
