package simulation

import (
	"context"
	"io"

	"github.com/picogrid/cosim-input/pkg/models"
)

// Simulation is the entry point an assembled configuration is handed to
type Simulation interface {
	// Name returns the name of the simulation
	Name() string

	// Description returns a brief description of what the simulation does
	Description() string

	// Configure hands the simulation the configuration snapshot to run with
	Configure(cfg models.Configuration) error

	// Run executes the simulation, writing its report to out
	Run(ctx context.Context, out io.Writer) error

	// Stop gracefully shuts down the simulation
	Stop() error
}
