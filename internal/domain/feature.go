package domain

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/paulmach/orb"
)

// FeatureCollection is the root of the accident dataset. It is created once
// by the loader and never mutated afterwards.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single accident record: an optional point geometry plus the
// registry attributes.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   *Geometry  `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry holds a GeoJSON geometry. Coordinates stay raw so that non-point
// shapes in the input fail per feature instead of failing the whole decode.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Point returns the feature position as a lon/lat point. ok is false when the
// feature has no geometry, the geometry is not a Point, or the coordinates
// are not exactly two finite components.
func (f *Feature) Point() (orb.Point, bool) {
	if f.Geometry == nil {
		return orb.Point{}, false
	}
	return f.Geometry.point()
}

func (g *Geometry) point() (orb.Point, bool) {
	if g.Type != "Point" {
		return orb.Point{}, false
	}
	var coords []float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return orb.Point{}, false
	}
	if len(coords) != 2 {
		return orb.Point{}, false
	}
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return orb.Point{}, false
		}
	}
	return orb.Point{coords[0], coords[1]}, true
}

// DecodeFeatureCollection reads and validates a GeoJSON feature collection.
// Any decode failure, including a root object that is not tagged as a
// FeatureCollection, is returned as a *ParseError.
func DecodeFeatureCollection(r io.Reader) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if fc.Type != "FeatureCollection" {
		return nil, &ParseError{Err: fmt.Errorf("unexpected root type %q", fc.Type)}
	}
	return &fc, nil
}
