package config

import (
	"log/slog"
	"strings"

	httpctrl "github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

// Server holds the HTTP listener and router settings.
type Server struct {
	addr        string
	apiVersion  string
	corsOrigin  string
	environment string
	rateRPS     float64
	rateBurst   int
}

func (x *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address. A bare port (as set by PORT) listens on all interfaces",
			Category:    "Server",
			Value:       ":8080",
			Sources:     cli.EnvVars("GRC_ADDR", "PORT"),
			Destination: &x.addr,
		},
		&cli.StringFlag{
			Name:        "api-version",
			Usage:       "API version segment of the route prefix (/api/<version>)",
			Category:    "Server",
			Value:       httpctrl.DefaultAPIVersion,
			Sources:     cli.EnvVars("GRC_API_VERSION"),
			Destination: &x.apiVersion,
		},
		&cli.StringFlag{
			Name:        "cors-origin",
			Usage:       "Allowed CORS origin (\"*\" for any, empty disables CORS)",
			Category:    "Server",
			Sources:     cli.EnvVars("GRC_CORS_ORIGIN"),
			Destination: &x.corsOrigin,
		},
		&cli.StringFlag{
			Name:        "env",
			Usage:       "Deployment environment reported by /health and Sentry",
			Category:    "Server",
			Value:       "development",
			Sources:     cli.EnvVars("GRC_ENV"),
			Destination: &x.environment,
		},
		&cli.FloatFlag{
			Name:        "rate-limit-rps",
			Usage:       "Requests per second allowed per client on /api (0 disables the limiter)",
			Category:    "Server",
			Value:       10,
			Sources:     cli.EnvVars("GRC_RATE_LIMIT_RPS"),
			Destination: &x.rateRPS,
		},
		&cli.IntFlag{
			Name:        "rate-limit-burst",
			Usage:       "Burst size of the per client rate limiter",
			Category:    "Server",
			Value:       50,
			Sources:     cli.EnvVars("GRC_RATE_LIMIT_BURST"),
			Destination: &x.rateBurst,
		},
	}
}

func (x Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", x.Addr()),
		slog.String("api_version", x.apiVersion),
		slog.String("cors_origin", x.corsOrigin),
		slog.String("env", x.environment),
		slog.Float64("rate_limit_rps", x.rateRPS),
		slog.Int("rate_limit_burst", x.rateBurst),
	)
}

// Addr returns the listen address. A bare port is prefixed with ":".
func (x *Server) Addr() string {
	if x.addr != "" && !strings.Contains(x.addr, ":") {
		return ":" + x.addr
	}
	return x.addr
}

func (x *Server) Environment() string {
	return x.environment
}

// Options returns the HTTP server options for these settings.
func (x *Server) Options() []httpctrl.Options {
	opts := []httpctrl.Options{
		httpctrl.WithEnvironment(x.environment),
		httpctrl.WithRateLimit(x.rateRPS, x.rateBurst),
	}
	if x.apiVersion != "" {
		opts = append(opts, httpctrl.WithAPIVersion(x.apiVersion))
	}
	if x.corsOrigin != "" {
		opts = append(opts, httpctrl.WithCORSOrigin(x.corsOrigin))
	}
	return opts
}
