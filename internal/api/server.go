package api

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vitalstream/vsb/internal/config"
)

// Server is the HTTP API server. Construct it with NewServer; there is no
// process-wide instance.
type Server struct {
	httpServer *http.Server
	stream     StreamPort
	probe      DiagPort
	cfg        *config.Config
	lg         *zap.SugaredLogger
	startTime  time.Time
}

// NewServer creates an API server over the given collaborators.
func NewServer(cfg *config.Config, stream StreamPort, probe DiagPort, lg *zap.SugaredLogger) *Server {
	return &Server{
		stream:    stream,
		probe:     probe,
		cfg:       cfg,
		lg:        lg,
		startTime: time.Now(),
	}
}

// Start runs the HTTP server on the given address. It blocks until the
// server stops.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: corsMiddleware(mux),
		// These bound the request/response endpoints. Telemetry
		// connections are hijacked during the upgrade and manage their
		// own lifetime.
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}
	return nil
}
