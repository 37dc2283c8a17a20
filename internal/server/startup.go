package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resumescore/internal/analyzer"
	"resumescore/internal/nlp"
	"resumescore/internal/observability"
)

// Start runs the HTTP server until ctx is canceled or the listener fails.
// Shutdown is graceful with a 30 second drain window.
func (s *Server) Start(ctx context.Context) error {
	om, err := observability.NewManager(s.AppConfig, s.Version)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer s.shutdownObservability(om)

	caps := nlp.NewCapabilities(s.AppConfig, om.Metrics().NLPObserver(), s.Logger)
	pipeline, err := analyzer.New(s.AppConfig, caps, om.Metrics(), s.Logger)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}
	s.analyzer = pipeline
	defer func() {
		if err := pipeline.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close analyzer")
		}
	}()

	httpServer := s.setupHTTPServer(om)

	s.displayServerInfo()

	return s.serveWithGracefulShutdown(ctx, httpServer)
}

// shutdownObservability handles observability cleanup
func (s *Server) shutdownObservability(om *observability.Manager) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := om.Shutdown(ctx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown observability")
	}
}

// setupHTTPServer creates and configures the HTTP server
func (s *Server) setupHTTPServer(om *observability.Manager) *http.Server {
	mux := s.setupRoutes(om)
	handler := om.HTTPMiddleware()(mux)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}
}

// serveWithGracefulShutdown runs the listener and drains on ctx cancellation
func (s *Server) serveWithGracefulShutdown(ctx context.Context, server *http.Server) error {
	serverErrors := make(chan error, 1)

	go func() {
		s.Logger.Info("Starting HTTP server",
			"address", server.Addr,
			"tls_enabled", s.TLS.Enabled)

		var err error
		if s.TLS.Enabled {
			err = server.ListenAndServeTLS(s.TLS.CertFile, s.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.Logger.Info("Received shutdown signal, starting graceful shutdown")
		return s.performGracefulShutdown(server)
	}
}

// performGracefulShutdown handles the graceful shutdown process
func (s *Server) performGracefulShutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.cleanupRateLimiter()

	s.Logger.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		return server.Close()
	}

	s.Logger.Info("Server shutdown completed successfully")
	return nil
}

// cleanupRateLimiter cleans up the rate limiter resources
func (s *Server) cleanupRateLimiter() {
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
		s.Logger.Info("Rate limiter cleaned up")
	}
}
