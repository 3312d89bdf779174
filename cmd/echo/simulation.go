package echo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/picogrid/cosim-input/pkg/logger"
	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/simulation"
)

// Name the echo simulation registers under
const Name = "echo"

// EchoSimulation stands in for the co-simulation engine: it accepts a configuration
// and writes it back as JSON.
type EchoSimulation struct {
	config   *models.Configuration
	mu       sync.Mutex
	stopChan chan struct{}
	stopped  bool
}

// NewEchoSimulation creates a new instance of the echo simulation
func NewEchoSimulation() simulation.Simulation {
	return &EchoSimulation{
		stopChan: make(chan struct{}),
	}
}

// Name returns the simulation name
func (s *EchoSimulation) Name() string {
	return Name
}

// Description returns the simulation description
func (s *EchoSimulation) Description() string {
	return "Echoes the assembled co-simulation inputs back as JSON"
}

// Configure validates and keeps a copy of the configuration
func (s *EchoSimulation) Configure(cfg models.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := cfg.Clone()
	s.config = &c
	return nil
}

// Run writes the configured inputs to out
func (s *EchoSimulation) Run(ctx context.Context, out io.Writer) error {
	s.mu.Lock()
	cfg := s.config
	s.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("simulation not configured")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopChan:
		return fmt.Errorf("simulation stopped")
	default:
	}

	logger.Debugf("Echoing %d turbine types, %d solar configs, %d EVs",
		len(cfg.Turbines), len(cfg.SolarPanels), len(cfg.EVCars))

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

// Stop prevents any further run
func (s *EchoSimulation) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stopped {
		close(s.stopChan)
		s.stopped = true
	}
	return nil
}

func init() {
	err := simulation.DefaultRegistry.Register(Name, NewEchoSimulation)
	if err != nil {
		logger.Errorf("Failed to register simulation: %v", err)
		return
	}
}
