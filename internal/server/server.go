package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/nao1215/phishscore/internal/engine"
	"github.com/nao1215/phishscore/internal/model"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":5000"

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// maxBodySize bounds request bodies. URLs and notes are small.
const maxBodySize = 64 << 10

// Store is the persistence used by the report and history routes.
type Store interface {
	RecordReport(ctx context.Context, rep *model.UserReport) error
	RecentScans(ctx context.Context, limit int) ([]model.ScanRecord, error)
}

// Server serves the scan API.
type Server struct {
	engine  *engine.Engine
	store   Store
	metrics *Metrics
	logger  *slog.Logger
	origins []string
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the report and history routes.
func WithStore(s Store) Option {
	return func(srv *Server) {
		srv.store = s
	}
}

// WithMetrics exposes the given metrics at /metrics.
func WithMetrics(m *Metrics) Option {
	return func(srv *Server) {
		srv.metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(srv *Server) {
		if logger != nil {
			srv.logger = logger
		}
	}
}

// WithAllowedOrigins sets the CORS origins. The default allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(srv *Server) {
		srv.origins = origins
	}
}

// WithClock overrides the clock used to stamp user reports.
func WithClock(now func() time.Time) Option {
	return func(srv *Server) {
		srv.now = now
	}
}

// New creates a Server around the engine.
func New(e *engine.Engine, opts ...Option) *Server {
	srv := &Server{
		engine:  e,
		logger:  slog.Default(),
		origins: []string{"*"},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /scan", s.handleScan)
	mux.HandleFunc("POST /report", s.handleReport)
	mux.HandleFunc("GET /scans", s.handleScans)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	var h http.Handler = mux
	h = CORSMiddleware(s.origins)(h)
	h = LoggingMiddleware(s.logger)(h)
	h = RequestIDMiddleware(h)
	return h
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		// Requests keep ctx's values but not its cancellation, so
		// in-flight requests finish during graceful shutdown.
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
