// Command genmock generates a deterministic mock accident GeoJSON dataset
// for local development and test fixtures. It mirrors the shape of the real
// converted registry artifact: point features with the six known property
// keys, coordinates rounded to five decimals, null values where the registry
// would have left a field unfilled.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/accidents_mock.geojson -count 250
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
)

// Bounding box roughly covering the Netherlands.
const (
	minLon = 3.36
	maxLon = 7.22
	minLat = 50.75
	maxLat = 53.55
)

var (
	outcomes = []string{"UMS", "UMS", "UMS", "Letsel", "Letsel", "Dodelijk"}
	speeds   = []int{30, 50, 60, 70, 80, 100, 120, 130}
	lights   = []string{"Daglicht", "Daglicht", "Duisternis", "Schemer"}
	surfaces = []string{"Droog", "Droog", "Nat", "Sneeuw/ijzel"}
	years    = []int{2022, 2023, 2024}
)

type properties struct {
	Outcome     *string `json:"verkeersongeval_afloop"`
	Year        *int    `json:"jaar_ongeval"`
	Parties     *int    `json:"aantal_partijen"`
	SpeedLimit  *int    `json:"maximum_snelheid"`
	Light       *string `json:"lichtgesteldheid"`
	RoadSurface *string `json:"wegdek"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type feature struct {
	Type       string     `json:"type"`
	Geometry   *geometry  `json:"geometry"`
	Properties properties `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the mock GeoJSON file")
	count := flag.Int("count", 250, "number of valid point features to generate")
	invalid := flag.Int("invalid", 0, "number of invalid-geometry features to mix in")
	seed := flag.Int64("seed", 42, "random seed for reproducible output")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))

	fc := featureCollection{
		Type:     "FeatureCollection",
		Features: make([]feature, 0, *count+*invalid),
	}
	for range *count {
		fc.Features = append(fc.Features, mockFeature(rng))
	}
	for range *invalid {
		fc.Features = append(fc.Features, invalidFeature(rng))
	}
	// Shuffle so invalid features are interleaved, not trailing.
	rng.Shuffle(len(fc.Features), func(i, j int) {
		fc.Features[i], fc.Features[j] = fc.Features[j], fc.Features[i]
	})

	if err := writeJSON(*out, fc); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d features (%d invalid) to %s", len(fc.Features), *invalid, *out)
	printStats(fc)
	return nil
}

func mockFeature(rng *rand.Rand) feature {
	lon := round5(minLon + rng.Float64()*(maxLon-minLon))
	lat := round5(minLat + rng.Float64()*(maxLat-minLat))

	p := properties{
		Outcome:     pick(rng, outcomes),
		Year:        pick(rng, years),
		Parties:     ptr(1 + rng.Intn(4)),
		SpeedLimit:  pick(rng, speeds),
		Light:       pick(rng, lights),
		RoadSurface: pick(rng, surfaces),
	}
	// The registry leaves some fields unfilled; emit nulls accordingly.
	if rng.Float64() < 0.1 {
		p.SpeedLimit = nil
	}
	if rng.Float64() < 0.05 {
		p.Outcome = nil
	}

	return feature{
		Type:       "Feature",
		Geometry:   &geometry{Type: "Point", Coordinates: []float64{lon, lat}},
		Properties: p,
	}
}

func invalidFeature(rng *rand.Rand) feature {
	f := mockFeature(rng)
	switch rng.Intn(3) {
	case 0:
		f.Geometry = nil
	case 1:
		f.Geometry.Coordinates = f.Geometry.Coordinates[:1]
	default:
		f.Geometry.Coordinates = append(f.Geometry.Coordinates, 0)
	}
	return f
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printStats(fc featureCollection) {
	byOutcome := map[string]int{}
	for _, f := range fc.Features {
		key := "null"
		if f.Properties.Outcome != nil {
			key = *f.Properties.Outcome
		}
		byOutcome[key]++
	}
	for outcome, n := range byOutcome {
		log.Printf("  %-10s %d", outcome, n)
	}
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

func pick[T any](rng *rand.Rand, values []T) *T {
	v := values[rng.Intn(len(values))]
	return &v
}

func ptr[T any](v T) *T { return &v }
