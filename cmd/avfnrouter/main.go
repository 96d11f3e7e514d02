// Package main is the entry point for the function router. It builds the
// route table and shared services once at cold start, then hands dispatch to
// the Lambda runtime, or to a local development server when run outside a
// function environment.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/vyrodovalexey/avfnrouter/internal/auth"
	"github.com/vyrodovalexey/avfnrouter/internal/config"
	"github.com/vyrodovalexey/avfnrouter/internal/event"
	"github.com/vyrodovalexey/avfnrouter/internal/health"
	"github.com/vyrodovalexey/avfnrouter/internal/httphost"
	"github.com/vyrodovalexey/avfnrouter/internal/lambdahost"
	"github.com/vyrodovalexey/avfnrouter/internal/middleware"
	"github.com/vyrodovalexey/avfnrouter/internal/observability"
	"github.com/vyrodovalexey/avfnrouter/internal/router"
)

// Version information (set at build time).
var (
	version   = "dev"
	gitCommit = "unknown"
)

// cliFlags holds command line flags.
type cliFlags struct {
	configPath  string
	addr        string
	showVersion bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Printf("avfnrouter %s (%s)\n", version, gitCommit)
		return
	}

	cfg := loadConfig(flags.configPath)

	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	rt, err := buildRouter(cfg, logger)
	if err != nil {
		logger.Error("failed to build router", observability.Error(err))
		os.Exit(1)
	}

	// The Lambda runtime sets this variable inside a function environment.
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		logger.Info("starting lambda host", observability.Strings("routes", rt.Routes()))
		lambdahost.New(rt).Start()
		return
	}

	logger.Info("starting development server",
		observability.String("addr", flags.addr),
		observability.Strings("routes", rt.Routes()),
	)
	srv := httphost.New(rt, httphost.WithLogger(logger))
	if err := srv.ListenAndServe(flags.addr); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", observability.Error(err))
		os.Exit(1)
	}
}

// parseFlags parses command line flags.
func parseFlags() cliFlags {
	configPath := flag.String("config", getEnvOrDefault("FNROUTER_CONFIG_PATH", ""),
		"Path to configuration file")
	addr := flag.String("addr", getEnvOrDefault("FNROUTER_ADDR", ":8080"),
		"Listen address for the development server")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	return cliFlags{
		configPath:  *configPath,
		addr:        *addr,
		showVersion: *showVersion,
	}
}

// loadConfig loads the configuration file, falling back to defaults when no
// path is given.
func loadConfig(path string) *config.Config {
	if path == "" {
		cfg := &config.Config{}
		cfg.SetDefaults()
		return cfg
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// buildRouter assembles the middleware chain and route table.
func buildRouter(cfg *config.Config, logger observability.Logger) (*router.Router, error) {
	rt := router.New(
		router.WithLogger(logger),
		router.WithCORS(middleware.CORSConfig{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     cfg.CORS.AllowMethods,
			AllowHeaders:     cfg.CORS.AllowHeaders,
			ExposeHeaders:    cfg.CORS.ExposeHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}),
	)

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logging(logger),
	}

	if cfg.Auth.Enabled {
		verifier, err := auth.NewJWTVerifier(context.Background(), auth.JWTConfig{
			Secret:    cfg.Auth.Secret,
			Algorithm: cfg.Auth.Algorithm,
			JWKSURL:   cfg.Auth.JWKSURL,
			Issuer:    cfg.Auth.Issuer,
			Audience:  cfg.Auth.Audience,
		})
		if err != nil {
			return nil, err
		}
		mws = append(mws, auth.Middleware(verifier,
			auth.WithLogger(logger),
			auth.WithSkipPaths(cfg.Auth.SkipPaths...),
		))
	}

	if err := rt.Use(mws...); err != nil {
		return nil, err
	}

	if err := registerRoutes(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// registerRoutes installs the built-in service routes.
func registerRoutes(rt *router.Router) error {
	checker := health.NewChecker(version)
	if err := rt.Handle(http.MethodGet, "/healthz", checker.Handler()); err != nil {
		return err
	}
	return rt.Handle(http.MethodPost, "/echo", echoHandler)
}

// echoHandler returns the parsed request body, demonstrating typed binding.
func echoHandler(_ context.Context, req *event.Request) (*event.Response, error) {
	var payload map[string]any
	if err := req.Bind(&payload); err != nil {
		return nil, err
	}
	return event.OK(map[string]any{
		"echo":      payload,
		"requestId": req.Context.RequestID,
	}), nil
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
