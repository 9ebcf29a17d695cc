// Package server exposes the analysis engine over HTTP. Failures map to
// status codes through the shared error kinds: unknown ids and nodes are
// 404, malformed input is 400, everything unexpected is 500.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/repolens-dev/repolens/internal/apperr"
	"github.com/repolens-dev/repolens/internal/engine"
)

// Server wraps the engine with a gin router.
type Server struct {
	engine *engine.Engine
	logger *slog.Logger
	router *gin.Engine
}

// New builds the router. Metrics endpoints are optional so embedded or
// test deployments can skip them.
func New(e *engine.Engine, logger *slog.Logger, enableMetrics bool) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{engine: e, logger: logger, router: router}

	if enableMetrics {
		router.Use(metricsMiddleware())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.GET("/health", s.health)

	v1 := router.Group("/v1")
	{
		v1.POST("/scan", s.scan)
		v1.GET("/layers/:n", s.layerConfig)

		sessions := v1.Group("/sessions/:id")
		{
			sessions.GET("/graph", s.graph)
			sessions.GET("/cycles", s.cycles)
			sessions.GET("/path", s.path)
			sessions.GET("/impact", s.impact)
			sessions.GET("/centrality", s.centrality)
			sessions.GET("/complexity", s.complexity)
			sessions.GET("/units", s.units)
			sessions.GET("/state", s.state)
			sessions.PUT("/layer", s.setLayer)
			sessions.POST("/unlock", s.unlock)
			sessions.POST("/focus", s.focus)
			sessions.POST("/expand", s.expand)
			sessions.POST("/undo", s.undo)
			sessions.DELETE("", s.closeSession)
		}
	}

	return s
}

// Handler returns the router for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// statusFor maps error kinds onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrNodeNotFound),
		errors.Is(err, apperr.ErrNoPath):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrOutOfRange),
		errors.Is(err, apperr.ErrNotADirectory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
