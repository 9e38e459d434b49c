package layer

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_ZeroMarkers(t *testing.T) {
	g := Aggregate(nil)

	require.NotNil(t, g.Markers)
	assert.Empty(t, g.Markers)
	assert.Equal(t, DefaultStyle, g.Style)
}

func TestAggregate_PreservesPopupContent(t *testing.T) {
	markers := []Marker{
		{Point: orb.Point{4.89, 52.37}, Popup: "Outcome: UMS<br>Year: 2023"},
		{Point: orb.Point{5.12, 52.09}, Popup: "Outcome: Letsel"},
	}

	g := Aggregate(markers)

	require.Len(t, g.Markers, 2)
	assert.Equal(t, "Outcome: UMS<br>Year: 2023", g.Markers[0].Popup)
	assert.Equal(t, "Outcome: Letsel", g.Markers[1].Popup)
}

func TestAggregate_FixedOptions(t *testing.T) {
	g := Aggregate(nil)

	assert.Equal(t, 50, g.Options.MaxClusterRadius)
	assert.Equal(t, 17, g.Options.DisableClusteringAtZoom)
	assert.True(t, g.Options.SpiderfyOnMaxZoom)
	assert.True(t, g.Options.ChunkedLoading)
	assert.False(t, g.Options.ShowCoverageOnHover)
}
