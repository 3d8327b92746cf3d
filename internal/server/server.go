// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the wiring layer — the composition root where handlers,
// middleware, and routes are assembled. It decides:
//   - which URL patterns map to which handlers
//   - which routes sit behind session middleware
//   - how the server starts and stops gracefully
//
// Keeping it separate from main.go makes the wiring testable: a test can
// build a Server without a process around it.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/prajyots60/CODE-CRAFT/internal/auth"
	"github.com/prajyots60/CODE-CRAFT/internal/config"
	"github.com/prajyots60/CODE-CRAFT/internal/handler"
	"github.com/prajyots60/CODE-CRAFT/internal/middleware"
	sqliteRepo "github.com/prajyots60/CODE-CRAFT/internal/repository/sqlite"
	"github.com/prajyots60/CODE-CRAFT/internal/service"
	"github.com/prajyots60/CODE-CRAFT/internal/webhook"
)

// Server owns the router and the resources behind it. The database
// connection is closed during graceful shutdown so the WAL is flushed and
// the file lock released.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the whole dependency chain:
//
//	sqlite.DB → services → handlers → routes
//
// Each layer only receives what it needs: services get the repository
// interfaces (not the concrete DB), handlers get services (not
// repositories). The handler never touches the database directly and the
// service never touches HTTP.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// MIDDLEWARE ORDER MATTERS — it executes in the order it's added:
//  1. RequestID — assigns a unique ID to each request (for tracing)
//  2. RealIP — extracts the real client IP from proxy headers
//  3. Recoverer — catches panics and returns 500 instead of crashing
//  4. Logger — logs each request with timing info
//
// The webhook route is OUTSIDE the session middleware: the identity
// provider authenticates with a signature over the body, not a cookie.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// === Services ===
	userSvc := service.NewUserSyncService(s.db, s.logger)
	snippetSvc := service.NewSnippetService(s.db, s.db, s.db, s.db, s.logger)
	commentSvc := service.NewCommentService(s.db, s.db, s.db, s.logger)
	starSvc := service.NewStarService(s.db, s.logger)

	validate := handler.NewAppValidator()

	// === Webhook intake ===
	verifier, err := webhook.NewVerifier(s.config.ClerkWebhookSecret)
	if err != nil {
		return fmt.Errorf("creating webhook verifier: %w", err)
	}
	dispatcher := webhook.NewDispatcher(userSvc, s.logger)
	webhookHandler := handler.NewWebhookHandler(verifier, dispatcher, s.logger)
	s.router.Post("/clerk-webhook", webhookHandler.HandleClerkWebhook)

	// === Session tokens ===
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// === API Routes ===
	snippetHandler := handler.NewSnippetHandler(snippetSvc, validate, s.logger)
	commentHandler := handler.NewCommentHandler(commentSvc, validate, s.logger)
	starHandler := handler.NewStarHandler(starSvc, s.logger)
	userHandler := handler.NewUserHandler(userSvc, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Public reads — no session required.
		r.Get("/snippets", snippetHandler.HandleList)
		r.Get("/snippets/{id}", snippetHandler.HandleGet)
		r.Get("/snippets/{id}/comments", commentHandler.HandleList)
		r.Get("/snippets/{id}/stars/count", starHandler.HandleCount)

		// Optional session — anonymous callers get an empty list.
		r.With(auth.OptionalAuth(tokens)).Get("/me/starred", starHandler.HandleStarred)

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Post("/snippets", snippetHandler.HandleCreate)
			r.Delete("/snippets/{id}", snippetHandler.HandleDelete)

			r.Post("/snippets/{id}/comments", commentHandler.HandleCreate)
			r.Delete("/comments/{id}", commentHandler.HandleDelete)

			r.Post("/snippets/{id}/star", starHandler.HandleToggle)
			r.Get("/snippets/{id}/star", starHandler.HandleIsStarred)

			r.Get("/me", userHandler.HandleMe)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully:
//  1. stop accepting new connections
//  2. wait up to 30s for in-flight requests
//  3. close the database connection
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Handler exposes the assembled router, mainly for tests that want to
// drive the full middleware chain with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}
