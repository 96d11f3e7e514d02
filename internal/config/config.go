// Package config provides YAML configuration for the function router.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration, loaded once at cold start.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	CORS    CORSConfig    `yaml:"cors"`
	Auth    AuthConfig    `yaml:"auth"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// CORSConfig configures cross-origin behavior. Empty fields fall back to
// permissive defaults.
type CORSConfig struct {
	AllowOrigins     []string `yaml:"allowOrigins"`
	AllowMethods     []string `yaml:"allowMethods"`
	AllowHeaders     []string `yaml:"allowHeaders"`
	ExposeHeaders    []string `yaml:"exposeHeaders"`
	AllowCredentials bool     `yaml:"allowCredentials"`
	MaxAge           int      `yaml:"maxAge"`
}

// AuthConfig configures the JWT verifier wired into the auth middleware.
type AuthConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Secret    string   `yaml:"secret"`
	Algorithm string   `yaml:"algorithm"`
	JWKSURL   string   `yaml:"jwksUrl"`
	Issuer    string   `yaml:"issuer"`
	Audience  string   `yaml:"audience"`
	SkipPaths []string `yaml:"skipPaths"`
}

// SetDefaults fills unset fields with their defaults.
func (c *Config) SetDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if c.Auth.Enabled {
		if c.Auth.Secret == "" && c.Auth.JWKSURL == "" {
			return fmt.Errorf("auth.secret or auth.jwksUrl is required when auth is enabled")
		}
		if c.Auth.Secret != "" && c.Auth.JWKSURL != "" {
			return fmt.Errorf("auth.secret and auth.jwksUrl are mutually exclusive")
		}
	}

	for _, p := range c.Auth.SkipPaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("auth.skipPaths entry %q must start with /", p)
		}
	}

	return nil
}
