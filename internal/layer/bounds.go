package layer

import (
	"math"

	"github.com/paulmach/orb"
)

// boundsPadFraction inflates the fitted bounds per side so markers are not
// flush against the viewport edge.
const boundsPadFraction = 0.1

// Bounds is the padded geographic region the viewport should fit.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// FitBounds computes the minimal bound enclosing all markers, padded by
// boundsPadFraction of its extent. It returns nil when there are no markers
// or the union is not a finite region; the caller leaves the viewport
// unchanged in that case, which is not an error.
func FitBounds(markers []Marker) *Bounds {
	if len(markers) == 0 {
		return nil
	}

	b := orb.Bound{Min: markers[0].Point, Max: markers[0].Point}
	for _, m := range markers[1:] {
		b = b.Extend(m.Point)
	}
	if !finite(b.Min[0]) || !finite(b.Min[1]) || !finite(b.Max[0]) || !finite(b.Max[1]) {
		return nil
	}

	padLon := (b.Max[0] - b.Min[0]) * boundsPadFraction
	padLat := (b.Max[1] - b.Min[1]) * boundsPadFraction

	return &Bounds{
		South: b.Min[1] - padLat,
		West:  b.Min[0] - padLon,
		North: b.Max[1] + padLat,
		East:  b.Max[0] + padLon,
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
