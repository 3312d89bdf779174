package models

// SolarSpec describes one solar panel array
type SolarSpec struct {
	Latitude       float64 `json:"latitude" yaml:"latitude"`
	Longitude      float64 `json:"longitude" yaml:"longitude"`
	Altitude       float64 `json:"altitude" yaml:"altitude"`
	SurfaceTilt    float64 `json:"surface_tilt" yaml:"surface_tilt"`
	NumberOfPanels int     `json:"number_of_panels" yaml:"number_of_panels"`
}

var solarFields = []Field{
	{Name: "latitude", Type: FieldFloat, Description: "Latitude", Unit: "°", Min: bound(-90), Max: bound(90)},
	{Name: "longitude", Type: FieldFloat, Description: "Longitude", Unit: "°", Min: bound(-180), Max: bound(180)},
	{Name: "altitude", Type: FieldFloat, Description: "Altitude", Unit: "m"},
	{Name: "surface_tilt", Type: FieldFloat, Description: "Surface tilt", Unit: "°"},
	{Name: "number_of_panels", Type: FieldInteger, Description: "Number of panels", Min: bound(1)},
}

// DefaultSolar returns the values a never-edited solar entry takes
func DefaultSolar() SolarSpec {
	return SolarSpec{NumberOfPanels: 1}
}

func (s SolarSpec) Fields() []Field { return solarFields }

func (s SolarSpec) Value(name string) (interface{}, error) {
	switch name {
	case "latitude":
		return s.Latitude, nil
	case "longitude":
		return s.Longitude, nil
	case "altitude":
		return s.Altitude, nil
	case "surface_tilt":
		return s.SurfaceTilt, nil
	case "number_of_panels":
		return s.NumberOfPanels, nil
	}
	return nil, unknownField(name)
}

func (s SolarSpec) WithField(name string, value interface{}) (SolarSpec, error) {
	f, ok := LookupField(solarFields, name)
	if !ok {
		return s, unknownField(name)
	}

	var err error
	switch name {
	case "latitude":
		s.Latitude, err = f.Float(value)
	case "longitude":
		s.Longitude, err = f.Float(value)
	case "altitude":
		s.Altitude, err = f.Float(value)
	case "surface_tilt":
		s.SurfaceTilt, err = f.Float(value)
	case "number_of_panels":
		s.NumberOfPanels, err = f.Int(value)
	}
	return s, err
}

func (s SolarSpec) Validate() error {
	for _, f := range solarFields {
		v, _ := s.Value(f.Name)
		if _, err := s.WithField(f.Name, v); err != nil {
			return err
		}
	}
	return nil
}
