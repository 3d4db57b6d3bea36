// Package server exposes the aggregation engine over a small HTTP API: a
// health check and an endpoint generating the flow graph for a requested
// period. All rendering happens in whatever client consumes the graph JSON.
package server

import (
	"net/http"

	"github.com/geldfluss/sankey/internal/config"
	"github.com/geldfluss/sankey/internal/engine"
	"github.com/geldfluss/sankey/internal/log"
	"github.com/geldfluss/sankey/internal/state"
)

// Server wires the engine, the CSV input and the last-used settings store
// into an http.Handler.
type Server struct {
	cfg    *config.Config
	eng    *engine.Engine
	store  *state.Store // may be nil: period fallbacks then rely on query params only
	logger *log.Logger
	mux    *http.ServeMux
}

// New creates a server. store may be nil when no state path is configured.
func New(cfg *config.Config, store *state.Store, logger *log.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		eng:    engine.New(cfg),
		store:  store,
		logger: logger.WithComponent("server"),
		mux:    http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/sankey", s.handleSankey)
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return CORS(s.mux)
}
