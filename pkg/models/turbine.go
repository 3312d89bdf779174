package models

// TurbineSpec describes one wind turbine type
type TurbineSpec struct {
	// Hub height in metres
	HubHeight float64 `json:"hub_height" yaml:"hub_height"`
	// Nominal power in watts
	NominalPower float64 `json:"nominal_power" yaml:"nominal_power"`
	// Number of turbines of this type
	NumberOfTurbines int `json:"number_of_turbines" yaml:"number_of_turbines"`
}

var turbineFields = []Field{
	{Name: "hub_height", Type: FieldFloat, Description: "Hub height", Unit: "m", Min: bound(0)},
	{Name: "nominal_power", Type: FieldFloat, Description: "Nominal power", Unit: "W", Min: bound(0)},
	{Name: "number_of_turbines", Type: FieldInteger, Description: "Number of turbines", Min: bound(1)},
}

// DefaultTurbine returns the values a never-edited turbine entry takes
func DefaultTurbine() TurbineSpec {
	return TurbineSpec{NumberOfTurbines: 1}
}

func (t TurbineSpec) Fields() []Field { return turbineFields }

func (t TurbineSpec) Value(name string) (interface{}, error) {
	switch name {
	case "hub_height":
		return t.HubHeight, nil
	case "nominal_power":
		return t.NominalPower, nil
	case "number_of_turbines":
		return t.NumberOfTurbines, nil
	}
	return nil, unknownField(name)
}

func (t TurbineSpec) WithField(name string, value interface{}) (TurbineSpec, error) {
	f, ok := LookupField(turbineFields, name)
	if !ok {
		return t, unknownField(name)
	}

	var err error
	switch name {
	case "hub_height":
		t.HubHeight, err = f.Float(value)
	case "nominal_power":
		t.NominalPower, err = f.Float(value)
	case "number_of_turbines":
		t.NumberOfTurbines, err = f.Int(value)
	}
	return t, err
}

// Validate checks every field against its bounds
func (t TurbineSpec) Validate() error {
	for _, f := range turbineFields {
		v, _ := t.Value(f.Name)
		if _, err := t.WithField(f.Name, v); err != nil {
			return err
		}
	}
	return nil
}
