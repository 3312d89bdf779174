// Package assembler converts between the committed values in a store.FieldStore and
// immutable models.Configuration snapshots.
package assembler

import (
	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/store"
)

// Assemble reads every committed value and returns an independent snapshot.
// It never fails: unset values take their defaults.
func Assemble(fs *store.FieldStore) models.Configuration {
	return models.Configuration{
		Turbines:    store.Records(fs, store.Turbines),
		SolarPanels: store.Records(fs, store.SolarPanels),
		EVCars:      store.Records(fs, store.EVCars),
		System:      store.ReadSettings(fs),
	}
}

// Apply writes cfg into fs as committed values. Stored records beyond each list's new
// length are kept.
func Apply(fs *store.FieldStore, cfg models.Configuration) {
	cfg = cfg.Clone()
	store.PutRecords(fs, store.Turbines, cfg.Turbines)
	store.PutRecords(fs, store.SolarPanels, cfg.SolarPanels)
	store.PutRecords(fs, store.EVCars, cfg.EVCars)
	store.WriteSettings(fs, cfg.System)
}
