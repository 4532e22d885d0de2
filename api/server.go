package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/hospitality-studio-backend/config"
	"github.com/rpupo63/hospitality-studio-backend/database"
	"github.com/rpupo63/hospitality-studio-backend/errs"
	"github.com/rpupo63/hospitality-studio-backend/metrics"
	"github.com/rpupo63/hospitality-studio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, db database.Database, opts ...RouterOption) Server {
	address := fmt.Sprintf("0.0.0.0:%d", cfg.Port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	opts = append([]RouterOption{
		withStartupTime(startupTime),
		withAcceptedOrigins(cfg.AcceptedOrigins),
		withMetrics(cfg.MetricsEnabled),
	}, opts...)
	handler := newRouter(db, opts...)

	server := &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}
}

// RouterOption customises the HTTP router built by NewServer.
type RouterOption func(*router)

type router struct {
	env             map[string]string
	startupTime     time.Time
	acceptedOrigins []string
	notifier        services.InquiryNotifier
	accessLogger    zerolog.Logger
	metricsEnabled  bool
}

// WithEnv sets the environment snapshot the health endpoint inspects.
func WithEnv(env map[string]string) RouterOption {
	return func(r *router) {
		r.env = env
	}
}

// WithNotifier sets who is told about new inquiries.
func WithNotifier(n services.InquiryNotifier) RouterOption {
	return func(r *router) {
		r.notifier = n
	}
}

// WithAccessLogger replaces the logger used for per-request access lines.
func WithAccessLogger(l zerolog.Logger) RouterOption {
	return func(r *router) {
		r.accessLogger = l
	}
}

func withStartupTime(startupTime time.Time) RouterOption {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withAcceptedOrigins(origins []string) RouterOption {
	return func(r *router) {
		r.acceptedOrigins = origins
	}
}

func withMetrics(enabled bool) RouterOption {
	return func(r *router) {
		r.metricsEnabled = enabled
	}
}

func newRouter(db database.Database, opts ...RouterOption) *chi.Mux {
	router := router{
		startupTime:     time.Now(),
		acceptedOrigins: []string{"*"},
		notifier:        services.NoopNotifier{},
		accessLogger:    log.With().Str("component", "http").Logger(),
		metricsEnabled:  true,
	}
	for _, opt := range opts {
		opt(&router)
	}
	if router.env == nil {
		router.env = config.New()
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	if router.metricsEnabled {
		chiRouter.Use(metrics.PrometheusMiddleware)
	}
	chiRouter.Use(HTTPLoggingMiddleware(router.accessLogger))

	// Apply CORS middleware
	chiRouter.Use(CORSCheckMiddleware(router.acceptedOrigins))
	chiRouter.Use(corsMiddleware(router.acceptedOrigins))

	responder := NewResponder(router.accessLogger)
	chiRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewNotFoundError("route "+r.URL.Path))
	})
	chiRouter.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewMethodNotAllowedError(r.Method, r.URL.Path))
	})

	handlers := initializeHandlers(db, router.notifier, router.env, router.startupTime)
	setupRoutes(chiRouter, handlers, router.metricsEnabled)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChannel <- err
	}
}

func (s Server) ShutdownGracefully(timeout time.Duration) error {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
		return err
	}
	log.Info().Msg("HttpServer gracefully shut down")
	return nil
}
