package session

import (
	"github.com/picogrid/cosim-input/pkg/regions"
	"github.com/picogrid/cosim-input/pkg/store"
)

// Target names the editor a region click opens
type Target string

const (
	TargetSettings Target = "settings"
	TargetWind     Target = Target(store.TurbinesName)
	TargetSolar    Target = Target(store.SolarPanelsName)
	TargetEV       Target = Target(store.EVCarsName)
)

var regionTargets = map[string]Target{
	regions.Settings: TargetSettings,
	regions.Wind:     TargetWind,
	regions.Solar:    TargetSolar,
	regions.EV:       TargetEV,
}

// TargetForRegion maps a region name to the editor it opens
func TargetForRegion(region string) (Target, bool) {
	t, ok := regionTargets[region]
	return t, ok
}

// Locate resolves a click on the diagram to the editor it should open. ok is false when
// the point is outside every region or the region has no editor.
func Locate(m regions.Map, p regions.Point) (Target, string, bool) {
	name, found := m.Locate(p)
	if !found {
		return "", "", false
	}
	t, ok := TargetForRegion(name)
	return t, name, ok
}
