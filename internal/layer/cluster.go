package layer

// ClusterOptions tune the external marker-grouping capability. The grouping
// mathematics live entirely on the widget side; the pipeline only carries
// the options through. Field names follow the markercluster plugin.
type ClusterOptions struct {
	MaxClusterRadius        int  `json:"maxClusterRadius"`
	DisableClusteringAtZoom int  `json:"disableClusteringAtZoom"`
	SpiderfyOnMaxZoom       bool `json:"spiderfyOnMaxZoom"`
	ShowCoverageOnHover     bool `json:"showCoverageOnHover"`
	ChunkedLoading          bool `json:"chunkedLoading"`
}

func defaultClusterOptions() ClusterOptions {
	return ClusterOptions{
		MaxClusterRadius:        50,
		DisableClusteringAtZoom: 17,
		SpiderfyOnMaxZoom:       true,
		ShowCoverageOnHover:     false,
		ChunkedLoading:          true,
	}
}

// ClusterGroup is the display-ready aggregate handed to the widget: the full
// marker set, the shared style, and the grouping options. Expanding a
// cluster on the widget side reveals the original markers with their popup
// content unchanged.
type ClusterGroup struct {
	Markers []Marker       `json:"markers"`
	Style   MarkerStyle    `json:"style"`
	Options ClusterOptions `json:"options"`
}

// Aggregate wraps the markers for clustered display. Any marker count is
// valid, including zero.
func Aggregate(markers []Marker) ClusterGroup {
	if markers == nil {
		markers = []Marker{}
	}
	return ClusterGroup{
		Markers: markers,
		Style:   DefaultStyle,
		Options: defaultClusterOptions(),
	}
}
