// Package server wraps net/http with the lifecycle the application needs:
// timeouts from config, signal-driven graceful shutdown and an ordered set
// of shutdown hooks for resources like the database pool.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nidohq/nido/config"
)

type Server struct {
	cfg     config.Server
	handler http.Handler
	logger  *slog.Logger
	hooks   []func(ctx context.Context) error
}

func NewServer(cfg config.Server, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
	}
}

// OnShutdown registers a hook that runs during graceful shutdown, after the
// HTTP server stopped accepting requests. Hooks run concurrently.
func (s *Server) OnShutdown(hook func(ctx context.Context) error) {
	s.hooks = append(s.hooks, hook)
}

// Run starts the HTTP server and blocks until a shutdown signal arrives or
// the listener fails. It returns once shutdown completed; a non-nil error
// means at least one shutdown task failed.
func (s *Server) Run() error {
	s.logger.Info("server configuration",
		"addr", s.cfg.Addr,
		"read_timeout", s.cfg.ReadTimeout.Duration,
		"read_header_timeout", s.cfg.ReadHeaderTimeout.Duration,
		"write_timeout", s.cfg.WriteTimeout.Duration,
		"idle_timeout", s.cfg.IdleTimeout.Duration,
		"shutdown_timeout", s.cfg.ShutdownGracefulTimeout.Duration,
	)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout.Duration,
		WriteTimeout:      s.cfg.WriteTimeout.Duration,
		IdleTimeout:       s.cfg.IdleTimeout.Duration,
	}

	serverError := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	select {
	case <-ctx.Done():
		s.logger.Info("received shutdown signal, shutting down gracefully")
	case err := <-serverError:
		s.logger.Error("server error, initiating shutdown", "err", err)
	}

	stop()

	gracefulCtx, cancelShutdown := context.WithTimeout(context.Background(), s.cfg.ShutdownGracefulTimeout.Duration)
	defer cancelShutdown()

	shutdownGroup, _ := errgroup.WithContext(gracefulCtx)

	shutdownGroup.Go(func() error {
		s.logger.Info("shutting down HTTP server")
		if err := srv.Shutdown(gracefulCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "err", err)
			return err
		}
		s.logger.Info("HTTP server stopped gracefully")
		return nil
	})

	for _, hook := range s.hooks {
		shutdownGroup.Go(func() error {
			return hook(gracefulCtx)
		})
	}

	if err := shutdownGroup.Wait(); err != nil {
		s.logger.Error("error during shutdown", "err", err)
		return err
	}

	s.logger.Info("all systems stopped gracefully")
	return nil
}
