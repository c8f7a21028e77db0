package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/bidboard/marketplace-api/internal/config"
	"github.com/bidboard/marketplace-api/pkg/logger"
)

// ShutdownTimeout bounds how long in-flight requests may take to drain.
const ShutdownTimeout = 30 * time.Second

// Server owns the listening http.Server.
type Server struct {
	srv *http.Server
}

func New(cfg config.ServerConfig, h http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", ln.Addr())
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Infof("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Infof("server exited")
	return nil
}
