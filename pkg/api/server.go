package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host         string        // Host to bind to (default "localhost")
	Port         int           // Port to listen on (default 8080)
	ReadTimeout  time.Duration // Read timeout (default 30s)
	WriteTimeout time.Duration // Write timeout (default 30s)
	IdleTimeout  time.Duration // Idle timeout (default 60s)
	MaxSessions  int           // Max concurrent game sessions (default 1024)
}

// DefaultConfig returns a ServerConfig with sensible defaults.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Host:         "localhost",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		MaxSessions:  DefaultMaxSessions,
	}
}

// Server is the HTTP API server.
type Server struct {
	config   ServerConfig
	store    *SessionStore
	handlers *Handlers
	server   *http.Server
	version  string
}

// NewServer creates a new API server.
func NewServer(config ServerConfig, version string) *Server {
	store := NewSessionStore(config.MaxSessions)
	handlers := NewHandlers(store, version)

	return &Server{
		config:   config,
		store:    store,
		handlers: handlers,
		version:  version,
	}
}

// Store returns the session registry for monitoring.
func (s *Server) Store() *SessionStore {
	return s.store
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs all requests.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handlers.Health)
	mux.HandleFunc("POST /api/game", s.handlers.NewGame)
	mux.HandleFunc("GET /api/game/{id}", s.handlers.State)
	mux.HandleFunc("DELETE /api/game/{id}", s.handlers.Delete)
	mux.HandleFunc("POST /api/game/{id}/move", s.handlers.Move)
	mux.HandleFunc("POST /api/game/{id}/undo", s.handlers.Undo)
	mux.HandleFunc("POST /api/game/{id}/redo", s.handlers.Redo)
	mux.HandleFunc("POST /api/game/{id}/jump", s.handlers.Jump)
	mux.HandleFunc("GET /api/game/{id}/export", s.handlers.Export)
	mux.HandleFunc("POST /api/game/{id}/import", s.handlers.Import)
	mux.HandleFunc("/api/game/{id}/ws", s.handlers.WebSocket)

	// Apply middleware
	handler := corsMiddleware(loggingMiddleware(mux))

	return handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Printf("Starting gomoku API server v%s on %s", s.version, addr)
	log.Printf("Endpoints:")
	log.Printf("  GET    /api/health           - Health check")
	log.Printf("  POST   /api/game             - Create session (optional token import)")
	log.Printf("  GET    /api/game/{id}        - Game state")
	log.Printf("  DELETE /api/game/{id}        - Drop session")
	log.Printf("  POST   /api/game/{id}/move   - Place a stone")
	log.Printf("  POST   /api/game/{id}/undo   - Undo last move")
	log.Printf("  POST   /api/game/{id}/redo   - Redo next move")
	log.Printf("  POST   /api/game/{id}/jump   - Jump to move index")
	log.Printf("  GET    /api/game/{id}/export - Export game token")
	log.Printf("  POST   /api/game/{id}/import - Import game token")
	log.Printf("  WS     /api/game/{id}/ws     - WebSocket session control")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ListenAndServeWithGracefulShutdown starts the server and handles shutdown signals.
func (s *Server) ListenAndServeWithGracefulShutdown() error {
	// Channel to listen for errors from server
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until signal or error
	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Printf("Received signal %v, shutting down...", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
