package models

// ScalarSettings holds the system-wide capacity and financial parameters
type ScalarSettings struct {
	// Battery storage capacity (Wh)
	StorageCapacity float64 `json:"storage_capacity" yaml:"storage_capacity"`
	// Grid capacity (W)
	GridCapacity float64 `json:"grid_capacity" yaml:"grid_capacity"`
	// Initial budget ($)
	InitialMoney float64 `json:"initial_money" yaml:"initial_money"`
	// Maximum price ($/kWh)
	PriceHigh float64 `json:"price_high" yaml:"price_high"`
	// Minimum price ($/kWh)
	PriceLow float64 `json:"price_low" yaml:"price_low"`
	// Name the configuration is saved under
	ConfigName string `json:"config_name,omitempty" yaml:"config_name,omitempty"`
}

var settingsFields = []Field{
	{Name: "storage_capacity", Type: FieldFloat, Description: "Battery storage capacity", Unit: "Wh", Min: bound(0)},
	{Name: "grid_capacity", Type: FieldFloat, Description: "Grid capacity", Unit: "W", Min: bound(0)},
	{Name: "initial_money", Type: FieldFloat, Description: "Initial budget", Unit: "$", Min: bound(0)},
	{Name: "price_high", Type: FieldFloat, Description: "Maximum price", Unit: "$/kWh", Min: bound(0)},
	{Name: "price_low", Type: FieldFloat, Description: "Minimum price", Unit: "$/kWh", Min: bound(0)},
	{Name: "config_name", Type: FieldString, Description: "Configuration version name"},
}

func (s ScalarSettings) Fields() []Field { return settingsFields }

func (s ScalarSettings) Value(name string) (interface{}, error) {
	switch name {
	case "storage_capacity":
		return s.StorageCapacity, nil
	case "grid_capacity":
		return s.GridCapacity, nil
	case "initial_money":
		return s.InitialMoney, nil
	case "price_high":
		return s.PriceHigh, nil
	case "price_low":
		return s.PriceLow, nil
	case "config_name":
		return s.ConfigName, nil
	}
	return nil, unknownField(name)
}

func (s ScalarSettings) WithField(name string, value interface{}) (ScalarSettings, error) {
	f, ok := LookupField(settingsFields, name)
	if !ok {
		return s, unknownField(name)
	}

	var err error
	switch name {
	case "storage_capacity":
		s.StorageCapacity, err = f.Float(value)
	case "grid_capacity":
		s.GridCapacity, err = f.Float(value)
	case "initial_money":
		s.InitialMoney, err = f.Float(value)
	case "price_high":
		s.PriceHigh, err = f.Float(value)
	case "price_low":
		s.PriceLow, err = f.Float(value)
	case "config_name":
		s.ConfigName, err = f.String(value)
	}
	return s, err
}

// Validate checks field bounds and that the price band is not inverted.
func (s ScalarSettings) Validate() error {
	for _, f := range settingsFields {
		if f.Type != FieldFloat {
			continue
		}
		v, _ := s.Value(f.Name)
		if err := f.CheckRange(v.(float64)); err != nil {
			return err
		}
	}
	if s.PriceLow > s.PriceHigh {
		return NewValidationError("price_low", "must not exceed price_high (%g > %g)", s.PriceLow, s.PriceHigh)
	}
	return nil
}
