// Package ui serves the dashboard over HTTP.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/tabdash/internal/panel"
	"github.com/KaramelBytes/tabdash/internal/session"
)

// Config holds configuration for the dashboard server.
type Config struct {
	Addr          string
	SessionSecret string
	// SessionTTL expires idle sessions; 0 keeps them for the process lifetime.
	SessionTTL time.Duration
	// MaxUploadBytes caps the upload request body; 0 means unlimited.
	MaxUploadBytes int64
	Delimiter      rune
	Panel          panel.Options
	Logger         *slog.Logger
}

// Server is the dashboard server.
type Server struct {
	cfg     Config
	store   *session.Store
	cookies *sessions.CookieStore
	logger  *slog.Logger
}

// NewServer creates a server with an empty session store.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		cfg:     cfg,
		store:   session.NewStore(cfg.SessionTTL, logger),
		cookies: session.NewCookieStore([]byte(cfg.SessionSecret), int(cfg.SessionTTL/time.Second)),
		logger:  logger,
	}
}

// Store exposes the session store.
func (s *Server) Store() *session.Store { return s.store }

// Handler builds the router with every route mounted.
func (s *Server) Handler() (http.Handler, error) {
	h, err := NewHandlers(s.store, s.cookies, s.cfg, s.logger)
	if err != nil {
		return nil, err
	}
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	SetupRoutes(r, h)
	return r, nil
}

// Serve runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting dashboard", "addr", s.cfg.Addr)

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		return s.store.Run(egctx, sweepInterval(s.cfg.SessionTTL))
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Debug("shutting down dashboard")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	if iv := ttl / 2; iv > time.Minute {
		return iv
	}
	return time.Minute
}
