// Package engine assembles the store, seed data, mutation engine, and
// GraphQL surface into one HTTP server.
package engine

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"github.com/invmock/invmock/pkg/api"
	"github.com/invmock/invmock/pkg/config"
	"github.com/invmock/invmock/pkg/graphql"
	"github.com/invmock/invmock/pkg/logging"
	"github.com/invmock/invmock/pkg/metrics"
	"github.com/invmock/invmock/pkg/mutation"
	"github.com/invmock/invmock/pkg/seed"
	"github.com/invmock/invmock/pkg/stats"
	"github.com/invmock/invmock/pkg/store"
)

// Server serves the mock data engine over HTTP.
type Server struct {
	cfg      *config.Config
	store    *store.Store
	handler  http.Handler
	log      *slog.Logger
	registry *metrics.Registry
	requests *metrics.Counter

	mu         sync.RWMutex
	httpServer *http.Server
	running    bool
	startTime  time.Time
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer wires up a server from the given configuration. The store is
// seeded immediately so the engine answers queries from the first request.
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:      cfg,
		store:    store.New(),
		log:      logging.Nop(),
		registry: metrics.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.requests = s.registry.NewCounter("invmock_http_requests_total",
		"HTTP requests served, by method and status.", "method", "status")

	cfg.Seed.Apply(s.store, time.Now())

	engine := mutation.New(s.store,
		mutation.WithPolicy(cfg.Policy()),
		mutation.WithLogger(s.log.With("component", "mutation")),
	)
	a := api.New(s.store, engine, stats.New(s.store), cfg.Seed,
		api.WithLogger(s.log.With("component", "api")),
	)

	executor := graphql.NewExecutor(graphql.MustSchema(),
		graphql.WithLogger(s.log.With("component", "graphql")),
	)
	a.Register(executor)

	s.registry.NewGaugeFunc("invmock_items", "Items in the store.",
		func() float64 { return float64(s.store.Items.Len()) })
	s.registry.NewGaugeFunc("invmock_invoices", "Invoices in the store.",
		func() float64 { return float64(s.store.Invoices.Len()) })
	s.registry.NewGaugeFunc("invmock_stock_lines", "Stock lines in the store.",
		func() float64 { return float64(s.store.StockLines.Len()) })

	mux := http.NewServeMux()
	mux.Handle("/graphql", graphql.NewHandler(executor))
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", s.registry.Handler())
	s.handler = s.withRequestLog(mux)

	return s
}

// Handler returns the server's HTTP handler. Tests drive requests through it
// without binding a port.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Store returns the backing store.
func (s *Server) Store() *store.Store {
	return s.store
}

// SeedConfig returns the seed sizing in use.
func (s *Server) SeedConfig() seed.Config {
	return s.cfg.Seed
}

// Start begins serving HTTP. It returns once the listener goroutine is
// launched; serve errors are logged.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server is already running")
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:      s.handler,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
	}

	s.log.Info("starting HTTP server", "addr", s.httpServer.Addr)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	s.startTime = time.Now()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	s.running = false
	s.log.Info("server stopped")
	return nil
}

// IsRunning returns whether the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Uptime returns the server uptime in seconds.
func (s *Server) Uptime() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return int(time.Since(s.startTime).Seconds())
}
