package domain

import (
	"html"
	"strings"
)

// maxExtraProperties caps how many unrecognized keys a popup shows. The cap
// is a display constraint, not a tunable.
const maxExtraProperties = 6

// popupLineBreak separates popup lines. Popup text is HTML handed to the map
// widget's popup binding.
const popupLineBreak = "<br>"

// PropertyLabel pairs a registry key with its display label.
type PropertyLabel struct {
	Key   string
	Label string
}

// PropertyLabels is the fixed display order and naming for the known
// registry fields. Immutable; defined once at process start.
var PropertyLabels = []PropertyLabel{
	{Key: "verkeersongeval_afloop", Label: "Outcome"},
	{Key: "jaar_ongeval", Label: "Year"},
	{Key: "aantal_partijen", Label: "Parties involved"},
	{Key: "maximum_snelheid", Label: "Speed limit"},
	{Key: "lichtgesteldheid", Label: "Light conditions"},
	{Key: "wegdek", Label: "Road surface"},
}

// FormatPopup renders the popup body for one feature's properties.
//
// Known keys come first, in PropertyLabels order regardless of input order.
// A key present with a null value renders as "<label>: " with an empty
// value; an absent key produces no line. Unrecognized keys follow in
// document order, capped at maxExtraProperties. Pure function; safe to call
// repeatedly.
func FormatPopup(p Properties) string {
	lines := make([]string, 0, len(PropertyLabels)+maxExtraProperties)

	for _, pl := range PropertyLabels {
		v := p.Known(pl.Key)
		if v == nil || !v.Present {
			continue
		}
		label := pl.Label
		if label == "" {
			label = pl.Key
		}
		lines = append(lines, label+": "+html.EscapeString(v.Text))
	}

	extra := p.Extra
	if len(extra) > maxExtraProperties {
		extra = extra[:maxExtraProperties]
	}
	for _, e := range extra {
		lines = append(lines, html.EscapeString(e.Key)+": "+html.EscapeString(e.Text))
	}

	return strings.Join(lines, popupLineBreak)
}
