// Package httpapi exposes the task service over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/workforce/internal/app"
)

const shutdownTimeout = 5 * time.Second

// Server is the workforce HTTP server.
type Server struct {
	container *app.Container
	logger    *slog.Logger
	router    *gin.Engine
}

// NewServer creates a new server with all routes registered.
// mode is a gin mode ("release", "debug" or "test"); empty means release.
func NewServer(c *app.Container, mode string) *Server {
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	router := gin.New()
	s := &Server{
		container: c,
		logger:    c.Logger,
		router:    router,
	}

	router.Use(requestID(), requestLogger(s.logger), gin.Recovery())

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/task-mgmt")
	{
		api.GET("/:id", s.handleGetTask)
		api.POST("/create", s.handleCreateTasks)
		api.POST("/update", s.handleUpdateTasks)
		api.POST("/assign-by-ref", s.handleAssignByReference)
		api.POST("/fetch-by-date/v2", s.handleFetchByDate)
		api.PUT("/priority", s.handleUpdatePriority)
		api.GET("/priority/:priority", s.handleListByPriority)
		api.POST("/comment", s.handleAddComment)
		api.GET("/consistency", s.handleConsistency)
	}

	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
