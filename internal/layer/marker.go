// Package layer turns the accident feature collection into the view model
// consumed by the browser map widget: styled point markers, the cluster
// group wrapping them, and the bounds the viewport should fit.
package layer

import (
	"log/slog"

	"github.com/paulmach/orb"

	"github.com/kooroshkz/CrashScope/internal/domain"
	"github.com/kooroshkz/CrashScope/internal/observability"
)

// MarkerStyle is the visual appearance shared by every accident marker.
// It is fixed, never data-driven. Field names follow the widget's circle
// marker options.
type MarkerStyle struct {
	Radius      float64 `json:"radius"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
}

// DefaultStyle is the single style applied to all markers.
var DefaultStyle = MarkerStyle{
	Radius:      4,
	Color:       "#8c1010",
	Weight:      1,
	Opacity:     0.9,
	FillColor:   "#d7263d",
	FillOpacity: 0.7,
}

// Marker is one rendered accident point: a lon/lat position plus the popup
// HTML computed once at construction. Never mutated afterwards.
type Marker struct {
	Point orb.Point `json:"point"` // [lon, lat]
	Popup string    `json:"popup"`
}

// Builder converts features into markers.
type Builder struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewBuilder creates a marker builder with the given observability.
func NewBuilder(logger *slog.Logger, metrics *observability.Metrics) *Builder {
	return &Builder{logger: logger, metrics: metrics}
}

// Build produces one marker per feature with a valid two-component point
// geometry. Features without one are skipped individually; they never fail
// the pass. The input collection is not modified.
func (b *Builder) Build(fc *domain.FeatureCollection) []Marker {
	markers := make([]Marker, 0, len(fc.Features))
	skipped := 0

	for i := range fc.Features {
		f := &fc.Features[i]
		pt, ok := f.Point()
		if !ok {
			skipped++
			b.metrics.FeaturesSkipped.Inc()
			b.logger.Debug("feature skipped: invalid point geometry", "index", i)
			continue
		}
		markers = append(markers, Marker{
			Point: pt,
			Popup: domain.FormatPopup(f.Properties),
		})
	}

	b.metrics.MarkersRendered.Set(float64(len(markers)))
	b.logger.Info("markers built", "markers", len(markers), "skipped", skipped)

	return markers
}
