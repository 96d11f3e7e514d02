package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
)

// CORS header names.
const (
	HeaderAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAllowMethods     = "Access-Control-Allow-Methods"
	HeaderAllowHeaders     = "Access-Control-Allow-Headers"
	HeaderExposeHeaders    = "Access-Control-Expose-Headers"
	HeaderAllowCredentials = "Access-Control-Allow-Credentials"
	HeaderMaxAge           = "Access-Control-Max-Age"
	HeaderOrigin           = "Origin"
	HeaderVary             = "Vary"
)

// CORSConfig contains CORS configuration.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int
}

// DefaultCORSConfig returns the permissive default CORS configuration.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		MaxAge:       86400,
	}
}

// CORS holds pre-computed CORS header values derived from a CORSConfig. It is
// built once at cold start and shared read-only across invocations.
type CORS struct {
	allowOrigins     map[string]bool
	wildcardPatterns []string
	allowAllOrigins  bool
	allowMethods     string
	allowHeaders     string
	exposeHeaders    string
	maxAge           string
	allowCredentials bool
}

// NewCORS creates a CORS helper from the given configuration. Zero-valued
// fields fall back to the permissive defaults.
func NewCORS(cfg CORSConfig) *CORS {
	def := DefaultCORSConfig()
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = def.AllowOrigins
	}
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = def.AllowMethods
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = def.AllowHeaders
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = def.MaxAge
	}

	allowOrigins := make(map[string]bool)
	var wildcardPatterns []string
	allowAllOrigins := false

	for _, origin := range cfg.AllowOrigins {
		switch {
		case origin == "*":
			allowAllOrigins = true
		case strings.HasPrefix(origin, "*."):
			wildcardPatterns = append(wildcardPatterns, origin)
		default:
			allowOrigins[origin] = true
		}
	}

	return &CORS{
		allowOrigins:     allowOrigins,
		wildcardPatterns: wildcardPatterns,
		allowAllOrigins:  allowAllOrigins,
		allowMethods:     strings.Join(cfg.AllowMethods, ", "),
		allowHeaders:     strings.Join(cfg.AllowHeaders, ", "),
		exposeHeaders:    strings.Join(cfg.ExposeHeaders, ", "),
		maxAge:           strconv.Itoa(cfg.MaxAge),
		allowCredentials: cfg.AllowCredentials,
	}
}

// isOriginAllowed checks if the given origin is allowed.
func (c *CORS) isOriginAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	if c.allowAllOrigins {
		return true
	}
	if c.allowOrigins[origin] {
		return true
	}
	for _, pattern := range c.wildcardPatterns {
		if matchWildcardOrigin(origin, pattern) {
			return true
		}
	}
	return false
}

// matchWildcardOrigin checks if an origin matches a wildcard pattern.
// Pattern format: "*.example.com" matches "sub.example.com", "api.example.com".
func matchWildcardOrigin(origin, pattern string) bool {
	if !strings.HasPrefix(pattern, "*.") {
		return false
	}

	suffix := pattern[1:] // ".example.com"

	host := origin
	if idx := strings.Index(host, "://"); idx != -1 {
		host = host[idx+3:]
	}
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}

	// At least one character must precede the suffix (the subdomain).
	return len(host) > len(suffix) && strings.HasSuffix(host, suffix)
}

// allowOriginValue returns the Access-Control-Allow-Origin value for the
// given request origin, or "" when the origin is not allowed.
func (c *CORS) allowOriginValue(origin string) string {
	if c.isOriginAllowed(origin) {
		// Echo the specific origin; required when credentials are allowed.
		return origin
	}
	if c.allowAllOrigins && origin == "" {
		return "*"
	}
	return ""
}

// Apply sets the standard CORS headers on resp for the given request origin
// and returns resp.
func (c *CORS) Apply(resp *event.Response, origin string) *event.Response {
	if allowed := c.allowOriginValue(origin); allowed != "" {
		resp.WithHeader(HeaderAllowOrigin, allowed)
		if allowed != "*" {
			resp.WithHeader(HeaderVary, HeaderOrigin)
		}
	}
	if c.exposeHeaders != "" {
		resp.WithHeader(HeaderExposeHeaders, c.exposeHeaders)
	}
	if c.allowCredentials {
		resp.WithHeader(HeaderAllowCredentials, "true")
	}
	return resp
}

// Preflight builds the response to an OPTIONS preflight request. When
// allowedMethods is non-empty it advertises exactly those methods (the
// methods registered for the requested path); otherwise it falls back to the
// configured method list.
func (c *CORS) Preflight(origin string, allowedMethods []string) *event.Response {
	resp := event.NewResponse(http.StatusNoContent, "", nil)

	methods := c.allowMethods
	if len(allowedMethods) > 0 {
		methods = strings.Join(allowedMethods, ", ")
	}

	resp.WithHeader(HeaderAllowMethods, methods)
	resp.WithHeader(HeaderAllowHeaders, c.allowHeaders)
	resp.WithHeader(HeaderMaxAge, c.maxAge)

	return c.Apply(resp, origin)
}
