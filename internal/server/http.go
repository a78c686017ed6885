// Package server exposes the PHY encoder over HTTP: a JSON encode API,
// a WebSocket feed of encode events and Prometheus metrics.
package server

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP server for the encoder API.
type Server struct {
	mux           *http.ServeMux
	handler       *Handlers
	addr          string
	enableMetrics bool
}

// NewServer creates a new HTTP server.
func NewServer(addr string, handler *Handlers, enableMetrics bool) *Server {
	s := &Server{
		mux:           http.NewServeMux(),
		handler:       handler,
		addr:          addr,
		enableMetrics: enableMetrics,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// API routes
	s.mux.HandleFunc("/api/encode", s.handler.HandleEncode)
	s.mux.HandleFunc("/api/rates", s.handler.HandleRates)
	s.mux.HandleFunc("/api/status", s.handler.HandleStatus)

	// WebSocket
	s.mux.HandleFunc("/ws", s.handler.HandleWebSocket)

	// Prometheus
	if s.enableMetrics {
		s.mux.Handle("/metrics", promhttp.Handler())
	}
}

// Handler returns the route mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting encoder server on %s", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}
