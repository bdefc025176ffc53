package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Houeta/price-cage/internal/models"
	"github.com/Houeta/price-cage/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus"
)

type Analyzer interface {
	Analyze(ctx context.Context, filter models.PriceFilter, windowDays int) (*models.TrendReport, error)
	Compare(ctx context.Context, productIDs []string, windowDays int) (*models.Comparison, error)
}

type AlertGenerator interface {
	Generate(ctx context.Context, thresholdPct float64, lookback time.Duration) ([]models.Alert, error)
}

type StatsProvider interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

// Pinger reports whether the storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds the listen address and query defaults of the API.
type Config struct {
	Addr           string
	RequestTimeout time.Duration
	AlertThreshold float64
	AlertLookback  time.Duration
}

// Deps are the services the handlers read from. Metrics and Gatherer may be nil.
type Deps struct {
	Analyzer Analyzer
	Alerts   AlertGenerator
	Stats    StatsProvider
	DB       Pinger
	Metrics  *monitoring.Metrics
	Gatherer prometheus.Gatherer
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	log        *slog.Logger
	cfg        Config
	deps       Deps
	router     http.Handler
	httpServer *http.Server
}

func NewServer(log *slog.Logger, cfg Config, deps Deps) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	s := &Server{log: log, cfg: cfg, deps: deps}
	s.router = s.setupRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}

	return s
}

// Handler exposes the routed handler, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("HTTP server is starting...", "addr", s.cfg.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api.Start: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("HTTP server is stopping...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("api.Shutdown: %w", err)
	}

	return nil
}
