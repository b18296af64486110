// Package httpapi is the thin transport over the engines: it decodes the
// request body, invokes one engine, and writes the engine's output back.
// All tool semantics live in the engine packages; nothing here inspects
// payloads beyond the outermost decode.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reoring/jsontools/internal/config"
	"github.com/reoring/jsontools/internal/logging"
)

// Server owns the router and its lifecycle.
type Server struct {
	cfg    *config.Config
	router *gin.Engine
}

// New builds a server from the configuration.
func New(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(BodyLimitMiddleware(cfg.MaxBodyBytes))

	s := &Server{cfg: cfg, router: router}
	s.registerRoutes()
	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until SIGINT/SIGTERM or context cancellation, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logging.Info("starting HTTP server", "address", fmt.Sprintf("http://%s", s.cfg.Addr()))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	case <-quit:
	}
	logging.Debug("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logging.Info("server shutdown completed")
	return nil
}
