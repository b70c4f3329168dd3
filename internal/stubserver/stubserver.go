// Package stubserver is the shared HTTP scaffolding for the reader,
// writer and indexer service stubs: a chi router with health endpoints,
// OTLP trace export and graceful shutdown.
package stubserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/searchops/searchops/internal/logging"
)

// Config shapes one service stub.
type Config struct {
	ServiceName  string
	Port         int
	OTLPEndpoint string
	SampleRatio  float64
}

// FromEnv builds a Config from the environment variables the deployer
// injects into every workload.
func FromEnv(serviceName string, defaultPort int) Config {
	cfg := Config{ServiceName: serviceName, Port: defaultPort, SampleRatio: 1}
	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if v := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.SampleRatio = r
		}
	}
	return cfg
}

// Server hosts one service stub.
type Server struct {
	cfg    Config
	router chi.Router
	ready  func() bool
}

// New creates a Server with health endpoints wired. Domain routes are
// added through Route before Run.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg, ready: func() bool { return true }}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !s.ready() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router = r
	return s
}

// Route registers domain handlers on the router.
func (s *Server) Route(fn func(r chi.Router)) { fn(s.router) }

// SetReady overrides the readiness check.
func (s *Server) SetReady(fn func() bool) { s.ready = fn }

// Run serves HTTP until the context is cancelled or SIGINT/SIGTERM
// arrives, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	shutdownTracing, err := setupTracing(ctx, s.cfg)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	handler := otelhttp.NewHandler(s.router, s.cfg.ServiceName)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "listening", "service", s.cfg.ServiceName, "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info(ctx, "shutting down", "service", s.cfg.ServiceName)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn(ctx, "tracing shutdown failed", "err", err)
	}
	return nil
}
