// Package gin serves the aggregation layer and registries as a JSON API
// over github.com/gin-gonic/gin.
package gin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/aggregate"
	"github.com/gin-gonic/gin"
)

// ShutdownTimeout bounds graceful shutdown of in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Getter performs a GET with per-call header overrides. The HTML proxy
// uses it to reach client-only upstreams.
type Getter interface {
	Get(ctx context.Context, url string, header http.Header) (string, error)
}

// Server exposes the API routes.
type Server struct {
	aggregator *aggregate.Aggregator
	frontpages scanhub.FrontpageRegistry
	health     scanhub.HealthChecker
	proxy      Getter
	logger     *slog.Logger
	now        func() time.Time

	router *gin.Engine
	server *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for access logs and internal errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates a Server and registers its routes.
func NewServer(agg *aggregate.Aggregator, frontpages scanhub.FrontpageRegistry, health scanhub.HealthChecker, proxy Getter, opts ...Option) *Server {
	s := &Server{
		aggregator: agg,
		frontpages: frontpages,
		health:     health,
		proxy:      proxy,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = gin.New()
	s.router.Use(
		RecoveryMiddleware(s.logger),
		RequestIDMiddleware(),
		LoggerMiddleware(s.logger),
	)
	s.registerRoutes(s.router)
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/sources", s.handleSources)
	api.POST("/search", s.handleSearch)
	api.POST("/chapters", s.handleChapters)
	api.POST("/info", s.handleInfo)
	api.GET("/health", s.handleHealth)
	api.GET("/frontpage", s.handleFrontpageList)
	api.POST("/frontpage", s.handleFrontpageSection)
	api.GET("/proxy/html", s.handleProxyHTML)
	api.OPTIONS("/proxy/html", s.handleProxyOptions)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", ln.Addr().String())

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
