// Package webserver hosts the press-council REST API over HTTP with
// graceful shutdown.
package webserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/council"
	"github.com/unbobounbobo/press-council/internal/store"
	"github.com/unbobounbobo/press-council/internal/webapi"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port    int
	DataDir string
	Catalog *catalog.Catalog
	Caller  council.Caller
	Logger  *slog.Logger

	// AllowedOrigins enables CORS for the listed origins. Empty means
	// same-origin only.
	AllowedOrigins []string
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg    Config
	srv    *http.Server
	logger *slog.Logger
}

// New creates a new HTTP server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "conversations"
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Builtin()
	}
	if cfg.Caller == nil {
		return nil, fmt.Errorf("webserver: Caller is required")
	}

	convs, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	webapi.RegisterRoutes(mux, webapi.NewHandlers(cfg.Catalog, cfg.Caller, convs, cfg.Logger))

	var handler http.Handler = mux
	if len(cfg.AllowedOrigins) > 0 {
		handler = webapi.CORSMiddleware(mux, cfg.AllowedOrigins...)
	}

	return &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe starts the HTTP server and blocks until the context is
// cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	url := fmt.Sprintf("http://localhost:%d", s.cfg.Port)
	s.logger.Info("HTTP server starting", "address", s.srv.Addr, "url", url)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
