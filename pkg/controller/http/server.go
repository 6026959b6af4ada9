package http

import (
	"net/http"
	"regexp"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/errutil"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/logging"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/utils/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultAPIVersion = "v1"

var apiVersionPattern = regexp.MustCompile(`^v[0-9]+$`)

type Server struct {
	router    *chi.Mux
	uc        *usecase.UseCases
	authUC    AuthUseCase
	startedAt time.Time

	apiVersion  string
	environment string
	version     string
	corsOrigin  string
	uploadDir   string
	rateRPS     float64
	rateBurst   int
	idempotency interfaces.Cache

	slackInteraction   *SlackInteractionHandler
	slackSigningSecret string
}

type Options func(*Server)

// WithAuth overrides the authentication use case of the UseCases.
func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func WithAPIVersion(version string) Options {
	return func(s *Server) {
		s.apiVersion = version
	}
}

func WithEnvironment(env string) Options {
	return func(s *Server) {
		s.environment = env
	}
}

func WithVersion(version string) Options {
	return func(s *Server) {
		s.version = version
	}
}

// WithCORSOrigin allows cross origin requests from origin. "*" allows any
// origin.
func WithCORSOrigin(origin string) Options {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// WithUploadDir serves the files under dir at /uploads/.
func WithUploadDir(dir string) Options {
	return func(s *Server) {
		s.uploadDir = dir
	}
}

// WithRateLimit limits every client address to rps requests per second
// with bursts of up to burst requests. A non-positive rps disables the
// limiter.
func WithRateLimit(rps float64, burst int) Options {
	return func(s *Server) {
		s.rateRPS = rps
		s.rateBurst = burst
	}
}

// WithIdempotencyCache enables Idempotency-Key replay for POST requests.
func WithIdempotencyCache(cache interfaces.Cache) Options {
	return func(s *Server) {
		s.idempotency = cache
	}
}

func WithSlackInteraction(handler *SlackInteractionHandler, signingSecret string) Options {
	return func(s *Server) {
		s.slackInteraction = handler
		s.slackSigningSecret = signingSecret
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router:      r,
		uc:          uc,
		authUC:      uc.Auth,
		startedAt:   time.Now(),
		apiVersion:  DefaultAPIVersion,
		environment: "development",
		version:     "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	if !apiVersionPattern.MatchString(s.apiVersion) {
		return nil, goerr.New("invalid API version", goerr.V("api_version", s.apiVersion))
	}
	if s.slackInteraction != nil && s.slackSigningSecret == "" {
		return nil, goerr.New("Slack signing secret is required for interactions")
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLogger)
	r.Use(recoverer)
	r.Use(metricsMiddleware)
	r.Use(securityHeaders)
	if s.corsOrigin != "" {
		r.Use(corsMiddleware(s.corsOrigin))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errutil.HandleHTTP(r.Context(), w, goerr.New("route not found", goerr.V("path", r.URL.Path)), http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errutil.HandleHTTP(r.Context(), w, goerr.New("method not allowed", goerr.V("method", r.Method)), http.StatusMethodNotAllowed)
	})

	r.Get("/health", s.healthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	if s.uploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))))
	}

	// Slack interaction endpoint - No auth required, uses signature verification
	if s.slackInteraction != nil {
		r.Route("/hooks/slack", func(r chi.Router) {
			r.Use(SlackSignatureMiddleware(s.slackSigningSecret))
			r.Post("/interaction", s.slackInteraction.ServeHTTP)
		})
	}

	r.Route("/api/"+s.apiVersion, func(r chi.Router) {
		if s.rateRPS > 0 {
			r.Use(newRateLimiter(s.rateRPS, s.rateBurst).middleware)
		}

		r.Route("/auth", s.authRoutes)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(s.authUC))
			r.Use(requireWriter)
			r.Use(idempotency(s.idempotency))

			r.Route("/risks", s.riskRoutes)
			r.Route("/incidents", s.incidentRoutes)
			r.Route("/controls", s.controlRoutes)
			r.Route("/policies", s.policyRoutes)
			r.Route("/documents", s.documentRoutes)
			r.Route("/compliance", s.complianceRoutes)
			r.Route("/bcp", s.bcpRoutes)
			r.Route("/audits", s.auditRoutes)
			r.Route("/vendors", s.vendorRoutes)
			r.Route("/integrations", s.integrationRoutes)

			r.Get("/dashboard", s.dashboardHandler)
			r.Get("/search", s.searchHandler)
			r.Post("/search/reindex", s.reindexHandler)
			r.Get("/activity", s.activityHandler)
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type healthResponse struct {
	Status      string    `json:"status"`
	Uptime      float64   `json:"uptime"`
	Environment string    `json:"environment"`
	Version     string    `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
}

// healthHandler reports liveness. Uptime is in seconds.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, healthResponse{
		Status:      "OK",
		Uptime:      time.Since(s.startedAt).Seconds(),
		Environment: s.environment,
		Version:     s.version,
		Timestamp:   time.Now().UTC(),
	})
}

// accessLogger is a middleware that logs HTTP requests. The request logger
// carrying the request id is stored in the context for handlers.
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		reqID := middleware.GetReqID(r.Context())
		logger := logging.Default().With("request_id", reqID)
		r = r.WithContext(logging.With(r.Context(), logger))

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
