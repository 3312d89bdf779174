package store

import "github.com/picogrid/cosim-input/pkg/models"

// Kind describes one record-list entity kind
type Kind[T any] struct {
	// Name identifies the list, e.g. "turbines"
	Name string
	// CountKey is the scalar key holding the committed count
	CountKey string
	// Label is the human-readable singular name
	Label string
	// Default builds a never-edited entry
	Default func() T
}

// Record list names
const (
	TurbinesName    = "turbines"
	SolarPanelsName = "solar_panels"
	EVCarsName      = "ev_cars"
)

// Entity kinds and the count keys they commit under
var (
	Turbines = Kind[models.TurbineSpec]{
		Name:     TurbinesName,
		CountKey: "num_turbine_types",
		Label:    "Turbine type",
		Default:  models.DefaultTurbine,
	}
	SolarPanels = Kind[models.SolarSpec]{
		Name:     SolarPanelsName,
		CountKey: "num_solar_types",
		Label:    "Solar config",
		Default:  models.DefaultSolar,
	}
	EVCars = Kind[models.EVSpec]{
		Name:     EVCarsName,
		CountKey: "num_ev",
		Label:    "EV",
		Default:  models.DefaultEV,
	}
)

// DefaultCount is the committed count assumed when a kind was never committed.
const DefaultCount = 1

// Count returns the committed count for kind
func Count[T any](s *FieldStore, k Kind[T]) int {
	return s.Int(k.CountKey, DefaultCount)
}

// Record returns the stored record at index i, including indices at or beyond the
// committed count. ok is false when nothing was ever stored there.
func Record[T any](s *FieldStore, k Kind[T], i int) (rec T, ok bool) {
	list := stored[T](s, k)
	if i < 0 || i >= len(list) {
		return rec, false
	}
	return list[i], true
}

// Records returns a copy of the committed list: Count entries, defaulted where unset.
func Records[T any](s *FieldStore, k Kind[T]) []T {
	n := Count(s, k)
	out := make([]T, n)
	for i := range out {
		if rec, ok := Record(s, k, i); ok {
			out[i] = rec
		} else {
			out[i] = k.Default()
		}
	}
	return out
}

// PutRecords commits items as the whole list: the count becomes len(items) and indices
// [0, len(items)) are overwritten. Stored entries beyond that are left in place.
func PutRecords[T any](s *FieldStore, k Kind[T], items []T) {
	list := stored[T](s, k)
	if len(items) > len(list) {
		grown := make([]T, len(items))
		copy(grown, list)
		list = grown
	}
	copy(list, items)

	s.records[k.Name] = list
	s.Set(k.CountKey, len(items))
}

func stored[T any](s *FieldStore, k Kind[T]) []T {
	list, _ := s.records[k.Name].([]T)
	return list
}
