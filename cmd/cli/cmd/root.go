package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/picogrid/cosim-input/pkg/config"
	"github.com/picogrid/cosim-input/pkg/logger"
	"github.com/picogrid/cosim-input/pkg/utils"
)

var (
	cfgFile  string
	logLevel string
	noColor  bool

	// appConfig is populated by initConfig before any command runs
	appConfig = config.Default()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cosim",
	Short: "Hybrid energy co-simulation input composer",
	Long: `cosim composes the inputs of a hybrid energy co-simulation: wind turbine
types, solar array configurations, electric vehicles and the system settings.
Configurations can be edited interactively, saved under a name, reloaded, and
handed to a simulation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cosim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	// Add commands
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	v := viper.GetViper()
	config.SetDefaults(v)

	if cfgFile != "" {
		// Use config file from the flag
		v.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory
		v.AddConfigPath("$HOME/.cosim")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	// A missing config file is fine; a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	appConfig = cfg

	if cfg.SkipPrompts {
		_ = os.Setenv(utils.SkipPromptsEnv, "true")
	}

	logger.Configure(logger.Config{
		Level:   logger.ParseLevel(cfg.LogLevel),
		Writer:  os.Stderr,
		NoColor: cfg.NoColor,
	})
	if f := v.ConfigFileUsed(); f != "" {
		logger.Debugf("Using config file %s", f)
	}
	return nil
}
