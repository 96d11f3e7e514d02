// Package health provides the health endpoint handler for the function
// router. Checks registered at cold start are evaluated on every probe.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/middleware"
)

// Status represents the health status.
type Status string

const (
	// StatusHealthy indicates the service is healthy.
	StatusHealthy Status = "healthy"
	// StatusUnhealthy indicates the service is unhealthy.
	StatusUnhealthy Status = "unhealthy"
)

// Response is the health probe response body.
type Response struct {
	Status    Status           `json:"status"`
	Version   string           `json:"version,omitempty"`
	Uptime    string           `json:"uptime,omitempty"`
	Checks    map[string]Check `json:"checks,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// Check is an individual check result.
type Check struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// CheckFunc performs one health check.
type CheckFunc func(ctx context.Context) Check

// Checker evaluates registered checks and renders the probe response.
type Checker struct {
	version   string
	startTime time.Time

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

// NewChecker creates a health checker.
func NewChecker(version string) *Checker {
	return &Checker{
		version:   version,
		startTime: time.Now(),
		checks:    make(map[string]CheckFunc),
	}
}

// RegisterCheck registers a named check. Registering the same name twice
// replaces the earlier check.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Evaluate runs every registered check and aggregates the result. The overall
// status is unhealthy when any check is.
func (c *Checker) Evaluate(ctx context.Context) Response {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, fn := range c.checks {
		checks[name] = fn
	}
	c.mu.RUnlock()

	resp := Response{
		Status:    StatusHealthy,
		Version:   c.version,
		Uptime:    time.Since(c.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
	}

	if len(checks) > 0 {
		resp.Checks = make(map[string]Check, len(checks))
		for name, fn := range checks {
			result := fn(ctx)
			resp.Checks[name] = result
			if result.Status != StatusHealthy {
				resp.Status = StatusUnhealthy
			}
		}
	}

	return resp
}

// Handler returns the route handler for the health endpoint. It answers 200
// when healthy and 503 when any check fails.
func (c *Checker) Handler() middleware.Handler {
	return func(ctx context.Context, req *event.Request) (*event.Response, error) {
		resp := c.Evaluate(ctx)
		status := http.StatusOK
		if resp.Status != StatusHealthy {
			status = http.StatusServiceUnavailable
		}
		return event.JSON(status, resp), nil
	}
}
