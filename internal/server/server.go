// Package server exposes the affordability engine as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/config"
	"go.uber.org/zap"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Options configures a Server
type Options struct {
	// Defaults supplies the base scenario, grid and tax tables; nil uses the built-ins
	Defaults    *config.Configuration
	Logger      *zap.Logger
	CORSOrigins []string
	Version     string
}

// Server routes API requests to one shared engine. The engine holds no
// per-request state, so handlers run concurrently.
type Server struct {
	engine      *calculation.Engine
	parser      *config.InputParser
	defaultsCfg *config.Configuration
	log         *zap.Logger
	version     string
	router      *gin.Engine
}

// New builds a server and its router
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	defaults := opts.Defaults
	if defaults == nil {
		defaults = config.DefaultConfiguration()
	}

	s := &Server{
		engine:      defaults.NewEngine(log.Sugar()),
		parser:      config.NewInputParser(),
		defaultsCfg: defaults,
		log:         log,
		version:     opts.Version,
	}

	router := gin.New()
	// Order: RequestID -> Logger -> Recovery -> CORS
	router.Use(RequestID())
	router.Use(Logger(log))
	router.Use(Recovery(log))
	if len(opts.CORSOrigins) > 0 {
		router.Use(CORS(opts.CORSOrigins))
	}
	router.NoRoute(s.notFound)

	router.GET("/health", s.health)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/defaults", s.defaults)
		v1.GET("/states", s.states)
		v1.POST("/scenario", s.scenario)
		v1.POST("/grid", s.grid)
		v1.GET("/templates", s.templates)
		v1.POST("/compare", s.compare)
		v1.POST("/solve", s.solve)
		v1.POST("/frontier", s.frontier)
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("Server stopped")
	return nil
}
