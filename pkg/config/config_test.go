package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/cosim-input/pkg/regions"
)

func loadFile(t *testing.T, cfg interface{}) (*Config, error) {
	t.Helper()

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	return Load(v)
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "echo", cfg.Simulation)
	assert.False(t, cfg.SkipPrompts)
	assert.Equal(t, regions.DefaultMap(), cfg.RegionMap())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("COSIM_LOG_LEVEL", "debug")
	t.Setenv("COSIM_SKIP_PROMPTS", "true")

	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.SkipPrompts)
}

func TestRegionsFromFile(t *testing.T) {
	cfg, err := loadFile(t, Config{
		LogLevel: "warn",
		Regions: []RegionConfig{
			{Name: "Settings", Corners: [][]float64{{0, 0}, {100, 100}}},
			{Name: "Wind", Corners: [][]float64{{200, 50}, {150, 0}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	m := cfg.RegionMap()
	require.Len(t, m, 2)
	name, ok := m.Locate(regions.Point{X: 175, Y: 25})
	assert.True(t, ok)
	assert.Equal(t, "Wind", name)
}

func TestInvalidRegions(t *testing.T) {
	tests := []struct {
		name    string
		regions []RegionConfig
	}{
		{"missing name", []RegionConfig{{Corners: [][]float64{{0, 0}, {1, 1}}}}},
		{"one corner", []RegionConfig{{Name: "EV", Corners: [][]float64{{0, 0}}}}},
		{"three coordinates", []RegionConfig{{Name: "EV", Corners: [][]float64{{0, 0, 0}, {1, 1}}}}},
		{"duplicate", []RegionConfig{
			{Name: "EV", Corners: [][]float64{{0, 0}, {1, 1}}},
			{Name: "EV", Corners: [][]float64{{2, 2}, {3, 3}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Regions: tt.regions}
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(path, Default()))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "echo", cfg.Simulation)
	assert.Len(t, cfg.Regions, 4)
	assert.Equal(t, regions.DefaultMap(), cfg.RegionMap())
}
