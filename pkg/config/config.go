package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/cosim-input/pkg/regions"
)

// EnvPrefix is prepended to environment variable overrides (COSIM_LOG_LEVEL, ...)
const EnvPrefix = "COSIM"

// Config holds the application settings
type Config struct {
	LogLevel    string         `mapstructure:"log_level" yaml:"log_level"`
	NoColor     bool           `mapstructure:"no_color" yaml:"no_color"`
	Listen      string         `mapstructure:"listen" yaml:"listen"`
	SkipPrompts bool           `mapstructure:"skip_prompts" yaml:"skip_prompts"`
	Simulation  string         `mapstructure:"simulation" yaml:"simulation"`
	Regions     []RegionConfig `mapstructure:"regions" yaml:"regions"`
}

// RegionConfig is a clickable region given by two opposite corners
type RegionConfig struct {
	Name    string      `mapstructure:"name" yaml:"name"`
	Corners [][]float64 `mapstructure:"corners" yaml:"corners"`
}

// DefaultConfigDir returns $HOME/.cosim
func DefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cosim"), nil
}

// DefaultConfigPath returns $HOME/.cosim/config.yaml
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the built-in settings with the default diagram regions spelled out
func Default() *Config {
	cfg := &Config{
		LogLevel:   "info",
		Listen:     "127.0.0.1:8080",
		Simulation: "echo",
	}
	for _, r := range regions.DefaultMap() {
		cfg.Regions = append(cfg.Regions, RegionConfig{
			Name:    r.Name,
			Corners: [][]float64{{r.Rect.A.X, r.Rect.A.Y}, {r.Rect.B.X, r.Rect.B.Y}},
		})
	}
	return cfg
}

// Save writes cfg as YAML to path, creating its directory
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetDefaults registers default values and environment bindings on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("no_color", false)
	v.SetDefault("listen", "127.0.0.1:8080")
	v.SetDefault("skip_prompts", false)
	v.SetDefault("simulation", "echo")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the settings held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the region definitions
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, r := range c.Regions {
		if r.Name == "" {
			return fmt.Errorf("region %d: name is required", i+1)
		}
		if seen[r.Name] {
			return fmt.Errorf("region %s defined twice", r.Name)
		}
		seen[r.Name] = true

		if len(r.Corners) != 2 || len(r.Corners[0]) != 2 || len(r.Corners[1]) != 2 {
			return fmt.Errorf("region %s: corners must be two [x, y] points", r.Name)
		}
	}
	return nil
}

// RegionMap returns the configured regions, or the default diagram regions when none are set
func (c *Config) RegionMap() regions.Map {
	if len(c.Regions) == 0 {
		return regions.DefaultMap()
	}

	m := make(regions.Map, 0, len(c.Regions))
	for _, r := range c.Regions {
		m = append(m, regions.Region{
			Name: r.Name,
			Rect: regions.Rect{
				A: regions.Point{X: r.Corners[0][0], Y: r.Corners[0][1]},
				B: regions.Point{X: r.Corners[1][0], Y: r.Corners[1][1]},
			},
		})
	}
	return m
}
