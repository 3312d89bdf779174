package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/cosim-input/pkg/assembler"
	"github.com/picogrid/cosim-input/pkg/logger"
	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/session"
	"github.com/picogrid/cosim-input/pkg/simulation"
	"github.com/picogrid/cosim-input/pkg/store"
	"github.com/picogrid/cosim-input/pkg/utils"

	// Import simulations to register them
	_ "github.com/picogrid/cosim-input/cmd/echo"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation on a configuration file",
	Long: `Hand a configuration to a simulation without the interactive editor.
The input file holds a configuration in YAML (or JSON) as written by the shell's
"Show configuration" action. Without a file the default configuration is used.`,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().StringP("simulation", "s", "", "simulation name to run")
	runCmd.Flags().StringP("file", "f", "", "configuration file (YAML or JSON)")
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	sess := session.New(sessionLogger())

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		cfg, err := readConfiguration(path)
		if err != nil {
			return err
		}
		if err := sess.Do(func(fs *store.FieldStore) error {
			assembler.Apply(fs, cfg)
			return nil
		}); err != nil {
			return err
		}
		logger.Infof("Loaded configuration from %s", path)
		logCounts(cfg)
	}

	simName, err := selectSimulation(cmd)
	if err != nil {
		return fmt.Errorf("failed to select simulation: %w", err)
	}
	return simulate(sess, simName)
}

// readConfiguration parses and validates a configuration file
func readConfiguration(path string) (models.Configuration, error) {
	var cfg models.Configuration

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration file: %w", err)
	}
	return cfg, nil
}

// simulate runs the named simulation on the session's committed configuration,
// stopping it on interrupt.
func simulate(sess *session.Session, simName string) error {
	sim, err := simulation.DefaultRegistry.Get(simName)
	if err != nil {
		return fmt.Errorf("failed to get simulation: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			logger.Warn(logger.IconWarning + " Received interrupt signal, stopping simulation...")
			if err := sim.Stop(); err != nil {
				logger.Errorf("Failed to stop simulation: %v", err)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.LogSection(fmt.Sprintf("%s Starting %s", logger.IconRun, sim.Name()))
	logger.Progressf("Handing the committed configuration to %s", sim.Name())
	if err := sess.Simulate(ctx, sim, os.Stdout); err != nil {
		return err
	}

	logger.Success("Simulation completed successfully")
	return nil
}

func selectSimulation(cmd *cobra.Command) (string, error) {
	// Check if simulation is specified via flag
	if cmd != nil {
		if simName, _ := cmd.Flags().GetString("simulation"); simName != "" {
			return simName, nil
		}
	}

	options := simulation.DefaultRegistry.List()
	if len(options) == 0 {
		return "", fmt.Errorf("no simulations registered")
	}
	if len(options) == 1 {
		return options[0], nil
	}
	if utils.SkipPrompts() {
		return appConfig.Simulation, nil
	}

	descriptions := make(map[string]string)
	for _, name := range options {
		if sim, err := simulation.DefaultRegistry.Get(name); err == nil {
			descriptions[name] = sim.Description()
		}
	}

	// Interactive selection
	var selected string
	prompt := &survey.Select{
		Message: "Select simulation:",
		Options: options,
		Default: appConfig.Simulation,
		Description: func(value string, index int) string {
			return descriptions[value]
		},
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return selected, nil
}

// sessionLogger is the logger handed to sessions created by the CLI
func sessionLogger() zerolog.Logger {
	return logger.WithPrefix("session")
}
