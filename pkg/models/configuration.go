package models

// Bounds on the length of every record list
const (
	MinRecords = 1
	MaxRecords = 1000
)

// Configuration is a complete snapshot of all entity lists and system settings.
// It is the unit of save, load and simulation handoff.
type Configuration struct {
	Turbines    []TurbineSpec  `json:"turbines" yaml:"turbines"`
	SolarPanels []SolarSpec    `json:"solar_panels" yaml:"solar_panels"`
	EVCars      []EVSpec       `json:"ev_cars" yaml:"ev_cars"`
	System      ScalarSettings `json:"system_config" yaml:"system_config"`
}

// Clone returns a deep copy that shares no backing arrays with c
func (c Configuration) Clone() Configuration {
	return Configuration{
		Turbines:    append([]TurbineSpec(nil), c.Turbines...),
		SolarPanels: append([]SolarSpec(nil), c.SolarPanels...),
		EVCars:      append([]EVSpec(nil), c.EVCars...),
		System:      c.System,
	}
}

// Validate checks every list length, every record and the system settings
func (c Configuration) Validate() error {
	for _, l := range []struct {
		name string
		n    int
	}{{"turbines", len(c.Turbines)}, {"solar_panels", len(c.SolarPanels)}, {"ev_cars", len(c.EVCars)}} {
		if err := CheckRecordCount(l.name, l.n); err != nil {
			return err
		}
	}
	for i, t := range c.Turbines {
		if err := t.Validate(); err != nil {
			return wrapIndex("turbines", i, err)
		}
	}
	for i, s := range c.SolarPanels {
		if err := s.Validate(); err != nil {
			return wrapIndex("solar_panels", i, err)
		}
	}
	for i, e := range c.EVCars {
		if err := e.Validate(); err != nil {
			return wrapIndex("ev_cars", i, err)
		}
	}
	return c.System.Validate()
}

func wrapIndex(list string, i int, err error) error {
	if ve, ok := err.(*ValidationError); ok {
		return NewValidationError(list, "entry %d: %s", i+1, ve.Error())
	}
	return err
}

// CheckRecordCount rejects a list length outside [MinRecords, MaxRecords]
func CheckRecordCount(field string, n int) error {
	if n < MinRecords {
		return NewValidationError(field, "must be at least %d, got %d", MinRecords, n)
	}
	if n > MaxRecords {
		return NewValidationError(field, "must be at most %d, got %d", MaxRecords, n)
	}
	return nil
}
