// Package store is a reference implementation of the remote task collection.
// Every response uses the {err, result, count, token} envelope.
package store

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/validation"
)

// Server serves one task collection over HTTP
type Server struct {
	cfg    *config.Config
	repo   sqlite.Repository
	router *gin.Engine
}

// New builds the router for cfg.Remote.Collection backed by repo
func New(cfg *config.Config, repo sqlite.Repository) *Server {
	s := &Server{cfg: cfg, repo: repo}
	s.router = newRouter(cfg, repo)
	return s
}

// Router exposes the handler, e.g. for httptest
func (s *Server) Router() *gin.Engine {
	return s.router
}

func newRouter(cfg *config.Config, repo sqlite.Repository) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Application.Verbose {
		r.Use(gin.Logger())
	}

	corsConfig := cors.Config{
		AllowOrigins:  cfg.Store.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		respond(c, http.StatusOK, "ok")
	})

	h := NewTaskHandler(repo, validation.NewTaskValidatorWithConfig(cfg))
	registerTaskRoutes(r.Group("/"+strings.Trim(cfg.Remote.Collection, "/")), h)
	return r
}

func registerTaskRoutes(g *gin.RouterGroup, h *TaskHandler) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Run listens on cfg.Store.Addr until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Store.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Debugf("store listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
