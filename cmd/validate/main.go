// Command validate performs integrity checks on an accident GeoJSON dataset
// file before it is published: collection structure, geometry validity, and
// property-key coverage against the known registry schema.
//
// Usage:
//
//	go run ./cmd/validate -dataset docs/data/accidents_2022_2024_full.geojson
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/kooroshkz/CrashScope/internal/domain"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	datasetPath := flag.String("dataset", "", "path to the GeoJSON dataset file")
	flag.Parse()

	if *datasetPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*datasetPath); code != 0 {
		os.Exit(code)
	}
}

func run(path string) int {
	fmt.Println("=== Accident Dataset Validation ===")
	fmt.Println()

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open dataset: %v\n", err)
		return 1
	}
	defer f.Close()

	fc, err := domain.DecodeFeatureCollection(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateStructure(fc),
		validateGeometry(fc),
		validateProperties(fc),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Println("all phases passed")
	return 0
}

func validateStructure(fc *domain.FeatureCollection) *phase {
	p := &phase{name: "structure"}

	fmt.Printf("features: %d\n", len(fc.Features))
	if len(fc.Features) == 0 {
		p.errorf("feature list is empty")
	}
	for i, f := range fc.Features {
		if f.Type != "Feature" {
			p.errorf("feature %d: type is %q, want \"Feature\"", i, f.Type)
			break // one example is enough
		}
	}
	return p
}

func validateGeometry(fc *domain.FeatureCollection) *phase {
	p := &phase{name: "geometry"}

	valid, invalid := 0, 0
	outOfRange := 0
	for i := range fc.Features {
		pt, ok := fc.Features[i].Point()
		if !ok {
			invalid++
			continue
		}
		valid++
		if pt[0] < -180 || pt[0] > 180 || pt[1] < -90 || pt[1] > 90 {
			outOfRange++
		}
	}

	fmt.Printf("geometry: %d valid points, %d invalid\n", valid, invalid)
	if valid == 0 {
		p.errorf("no feature has a valid point geometry")
	}
	if outOfRange > 0 {
		p.errorf("%d points outside WGS-84 range; dataset likely not reprojected", outOfRange)
	}
	return p
}

func validateProperties(fc *domain.FeatureCollection) *phase {
	p := &phase{name: "properties"}

	coverage := make(map[string]int, len(domain.PropertyLabels))
	unknown := map[string]int{}
	for i := range fc.Features {
		props := &fc.Features[i].Properties
		for _, pl := range domain.PropertyLabels {
			if v := props.Known(pl.Key); v != nil && v.Present {
				coverage[pl.Key]++
			}
		}
		for _, e := range props.Extra {
			unknown[e.Key]++
		}
	}

	for _, pl := range domain.PropertyLabels {
		fmt.Printf("  %-24s %d/%d\n", pl.Key, coverage[pl.Key], len(fc.Features))
		if coverage[pl.Key] == 0 {
			p.errorf("known key %q is missing from every feature", pl.Key)
		}
	}

	if len(unknown) > 0 {
		keys := make([]string, 0, len(unknown))
		for k := range unknown {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Printf("  unknown keys: %v\n", keys)
	}
	return p
}
