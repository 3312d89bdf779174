// Package api exposes editing sessions over a JSON HTTP API.
//
// Every session owns its own FieldStore and configuration registry; requests address a
// session by the id returned from POST /api/v1/sessions. The server follows the usual
// lifecycle:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/picogrid/cosim-input/pkg/metrics"
	"github.com/picogrid/cosim-input/pkg/regions"
	"github.com/picogrid/cosim-input/pkg/session"
	"github.com/picogrid/cosim-input/pkg/simulation"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Listen      string
	Logger      zerolog.Logger
	Sessions    *session.Manager
	Simulations *simulation.Registry
	Metrics     *metrics.Metrics // optional
	Regions     regions.Map      // defaults to regions.DefaultMap()
	Simulation  string           // run when a simulate request names none
}

// Server is the HTTP API server
type Server struct {
	listen      string
	log         zerolog.Logger
	sessions    *session.Manager
	simulations *simulation.Registry
	metrics     *metrics.Metrics
	regions     regions.Map
	defaultSim  string

	server   *http.Server
	listener net.Listener
}

// New creates a new API server. It is not listening until Start is called.
func New(deps Deps) (*Server, error) {
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if deps.Simulations == nil {
		return nil, fmt.Errorf("simulation registry is required")
	}

	m := deps.Regions
	if len(m) == 0 {
		m = regions.DefaultMap()
	}

	return &Server{
		listen:      deps.Listen,
		log:         deps.Logger.With().Str("component", "api").Logger(),
		sessions:    deps.Sessions,
		simulations: deps.Simulations,
		metrics:     deps.Metrics,
		regions:     m,
		defaultSim:  deps.Simulation,
	}, nil
}

// Handler returns the routed handler without starting a listener
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start binds the listen address and serves in the background. Binding errors are
// returned directly.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.listen, err)
	}
	s.listener = ln

	s.server = &http.Server{
		Handler:           s.buildRouter(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		s.log.Info().Str("address", ln.Addr().String()).Msg("API server starting")
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("API server error")
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close gracefully shuts the server down and drops every session.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.log.Info().Msg("API server shutting down")
	err := s.server.Shutdown(ctx)
	s.sessions.CloseAll()
	if err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}
