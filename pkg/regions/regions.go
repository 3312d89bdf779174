package regions

import "math"

// Point is a position on the input canvas
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is an axis-aligned rectangle given by any two opposite corners
type Rect struct {
	A Point
	B Point
}

// Region is a named clickable rectangle
type Region struct {
	Name string
	Rect Rect
}

// Map is an ordered set of regions; earlier regions win on overlap
type Map []Region

// Region names and the editors they open
const (
	Settings = "Settings"
	EV       = "EV"
	Wind     = "Wind"
	Solar    = "Solar"
)

// DefaultMap returns the regions of the 700x700 power-system diagram
func DefaultMap() Map {
	return Map{
		{Name: Settings, Rect: Rect{A: Point{240, 345}, B: Point{465, 125}}},
		{Name: EV, Rect: Rect{A: Point{440, 525}, B: Point{590, 355}}},
		{Name: Wind, Rect: Rect{A: Point{480, 310}, B: Point{670, 30}}},
		{Name: Solar, Rect: Rect{A: Point{60, 230}, B: Point{240, 70}}},
	}
}

// PointInRect reports whether p lies inside (or on the edge of) the box spanned by c1 and c2
func PointInRect(p, c1, c2 Point) bool {
	minX, maxX := math.Min(c1.X, c2.X), math.Max(c1.X, c2.X)
	minY, maxY := math.Min(c1.Y, c2.Y), math.Max(c1.Y, c2.Y)
	return minX <= p.X && p.X <= maxX && minY <= p.Y && p.Y <= maxY
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return PointInRect(p, r.A, r.B)
}

// Bounds returns the normalized (min, max) corners
func (r Rect) Bounds() (Point, Point) {
	return Point{math.Min(r.A.X, r.B.X), math.Min(r.A.Y, r.B.Y)},
		Point{math.Max(r.A.X, r.B.X), math.Max(r.A.Y, r.B.Y)}
}

// Locate returns the name of the first region containing p
func (m Map) Locate(p Point) (string, bool) {
	for _, r := range m {
		if r.Rect.Contains(p) {
			return r.Name, true
		}
	}
	return "", false
}
