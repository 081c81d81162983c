// Package server provides the HTTP REST API for the outreach drafter.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appconfig "github.com/jonathan/outreach-drafter/internal/config"
	"github.com/jonathan/outreach-drafter/internal/generation"
	"github.com/jonathan/outreach-drafter/internal/store"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	svc        *generation.Service
	store      *store.Store
	jwtService *JWTService
	senderPath string
	useBrowser bool
	verbose    bool
}

// Config holds server configuration.
type Config struct {
	Addr              string
	DatabaseURL       string
	SenderProfilePath string
	UseBrowser        bool
	Verbose           bool
}

// New creates a new server instance. The database and bearer auth are
// both optional: without DATABASE_URL the profile endpoints return 503,
// and without JWT_SECRET the API runs open.
func New(cfg Config, svc *generation.Service) (*Server, error) {
	s := &Server{
		svc:        svc,
		senderPath: cfg.SenderProfilePath,
		useBrowser: cfg.UseBrowser,
		verbose:    cfg.Verbose,
	}

	if cfg.DatabaseURL != "" {
		st, err := store.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := st.EnsureSchema(context.Background()); err != nil {
			st.Close()
			return nil, err
		}
		s.store = st
	}

	jwtConfig, err := appconfig.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	if jwtConfig != nil {
		s.jwtService = NewJWTService(jwtConfig)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("POST /generate", s.withAuth(http.HandlerFunc(s.handleGenerate)))
	mux.Handle("POST /scrape", s.withAuth(http.HandlerFunc(s.handleScrape)))
	mux.Handle("GET /profile", s.withAuth(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("PUT /profile", s.withAuth(http.HandlerFunc(s.handlePutProfile)))
	mux.Handle("GET /drafts", s.withAuth(http.HandlerFunc(s.handleListDrafts)))

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation makes upstream model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.store != nil {
		s.store.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
