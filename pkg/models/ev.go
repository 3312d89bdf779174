package models

// EVSpec describes one electric vehicle and its charging window.
// Departure may be earlier than arrival (overnight stay).
type EVSpec struct {
	ID              string    `json:"id" yaml:"id"`
	BatteryCapacity float64   `json:"battery_capacity" yaml:"battery_capacity"`
	ChargingPort    float64   `json:"charging_port" yaml:"charging_port"`
	ArrivalTime     TimeOfDay `json:"arrival_time" yaml:"arrival_time"`
	DepartureTime   TimeOfDay `json:"departure_time" yaml:"departure_time"`
}

var evFields = []Field{
	{Name: "id", Type: FieldString, Description: "Car ID"},
	{Name: "battery_capacity", Type: FieldFloat, Description: "Battery capacity", Unit: "Wh", Min: bound(0)},
	{Name: "charging_port", Type: FieldFloat, Description: "Charging port value", Unit: "W", Min: bound(0)},
	{Name: "arrival_time", Type: FieldTime, Description: "Arrival time", Unit: "HH:MM"},
	{Name: "departure_time", Type: FieldTime, Description: "Departure time", Unit: "HH:MM"},
}

// DefaultEV returns the values a never-edited EV entry takes
func DefaultEV() EVSpec {
	return EVSpec{}
}

func (e EVSpec) Fields() []Field { return evFields }

func (e EVSpec) Value(name string) (interface{}, error) {
	switch name {
	case "id":
		return e.ID, nil
	case "battery_capacity":
		return e.BatteryCapacity, nil
	case "charging_port":
		return e.ChargingPort, nil
	case "arrival_time":
		return e.ArrivalTime, nil
	case "departure_time":
		return e.DepartureTime, nil
	}
	return nil, unknownField(name)
}

func (e EVSpec) WithField(name string, value interface{}) (EVSpec, error) {
	f, ok := LookupField(evFields, name)
	if !ok {
		return e, unknownField(name)
	}

	var err error
	switch name {
	case "id":
		e.ID, err = f.String(value)
	case "battery_capacity":
		e.BatteryCapacity, err = f.Float(value)
	case "charging_port":
		e.ChargingPort, err = f.Float(value)
	case "arrival_time":
		e.ArrivalTime, err = f.Time(value)
	case "departure_time":
		e.DepartureTime, err = f.Time(value)
	}
	return e, err
}

func (e EVSpec) Validate() error {
	for _, f := range evFields {
		v, _ := e.Value(f.Name)
		if _, err := e.WithField(f.Name, v); err != nil {
			return err
		}
	}
	return nil
}
