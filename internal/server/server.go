// Package server provides the HTTP server for the Natya pose scoring service.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/natya/internal/score"
	"github.com/ayusman/natya/internal/server/api"
	"github.com/ayusman/natya/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Store  *store.Store
	Scorer *score.Scorer
}

// Server represents the HTTP server for the Natya service.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register reference API handler if Store is configured
	if s.config.Store != nil {
		referenceHandler := api.NewReferenceHandler(s.config.Store)
		s.mux.Handle("/api/references", referenceHandler)
		s.mux.Handle("/api/references/", referenceHandler)
	}

	// Register scoring endpoints if both Store and Scorer are configured
	if s.config.Store != nil && s.config.Scorer != nil {
		scoreHandler := api.NewScoreHandler(s.config.Store, s.config.Scorer)
		s.mux.Handle("/api/score", scoreHandler)

		sessionHandler := NewSessionHandler(s.config.Store, s.config.Scorer)
		s.mux.Handle("/api/session", sessionHandler)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
