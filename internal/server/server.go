// Package server is the HTTP API in front of the plan pipeline.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/logger"
	"github.com/abhisek/curricula/internal/overview"
	"github.com/abhisek/curricula/internal/pipeline"
	"github.com/abhisek/curricula/internal/schedule"
)

// Deps are the services the handlers call.
type Deps struct {
	Pipeline *pipeline.Pipeline
	Overview *overview.Service
	Schedule *schedule.Service
	// Provider is only inspected for the health report.
	Provider     llm.Provider
	ProviderName string
	Log          *logger.Logger
}

// Server serves the API on one address.
type Server struct {
	Engine *gin.Engine
	log    *logger.Logger
}

// New builds the server and its routes.
func New(deps Deps) *Server {
	deps.Log = logger.OrNop(deps.Log)
	return &Server{Engine: NewRouter(deps), log: deps.Log}
}

// Run listens on addr until ctx is cancelled, then drains in-flight
// requests for up to ten seconds.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
