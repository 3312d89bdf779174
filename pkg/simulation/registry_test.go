package simulation

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picogrid/cosim-input/pkg/models"
)

type stubSimulation struct{ name string }

func (s *stubSimulation) Name() string { return s.name }
func (s *stubSimulation) Description() string { return "stub" }
func (s *stubSimulation) Configure(models.Configuration) error { return nil }
func (s *stubSimulation) Run(context.Context, io.Writer) error { return nil }
func (s *stubSimulation) Stop() error { return nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("beta", func() Simulation { return &stubSimulation{name: "beta"} }))
	require.NoError(t, r.Register("alpha", func() Simulation { return &stubSimulation{name: "alpha"} }))

	assert.Error(t, r.Register("alpha", func() Simulation { return nil }))
	assert.Equal(t, []string{"alpha", "beta"}, r.List())

	sim, err := r.Get("beta")
	require.NoError(t, err)
	assert.Equal(t, "beta", sim.Name())

	other, err := r.Get("beta")
	require.NoError(t, err)
	assert.NotSame(t, sim, other)

	_, err = r.Get("gamma")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
