// Package domain models Dutch road-accident records in GeoJSON form.
//
// # Data Source
//
// Accident records come from the BRON road-accident registry
// (Bestand geRegistreerde Ongevallen in Nederland), published by
// Rijkswaterstaat. An offline conversion step filters the raw registry down
// to the fields below, reprojects EPSG:28992 coordinates to WGS-84, rounds
// them to five decimals, and writes a single static GeoJSON FeatureCollection
// that is served over plain HTTP. The service fetches that artifact exactly
// once at startup.
//
// # Property Conventions
//
// Every feature carries the same six known property keys. Values are scalars
// and may be null when the registry left the field unfilled:
//
//	verkeersongeval_afloop  accident outcome, e.g. "UMS" (material damage
//	                        only), "Letsel" (injury), "Dodelijk" (fatal)
//	jaar_ongeval            registration year, e.g. 2023
//	aantal_partijen         number of parties involved
//	maximum_snelheid        posted speed limit in km/h
//	lichtgesteldheid        light conditions: "Daglicht", "Schemer",
//	                        "Duisternis"
//	wegdek                  road surface condition, e.g. "Droog", "Nat"
//
// Display order and English labels for these keys are fixed in
// [PropertyLabels]; popup text is produced by [FormatPopup].
//
// Keys outside the known set indicate upstream schema drift. They are kept in
// document order so the first few can still be shown for diagnosis, capped at
// a fixed count per popup.
//
// # Null vs Absent
//
// A key that is present with a JSON null renders as a labeled line with an
// empty value ("Outcome: "), while a key missing from the object produces no
// line at all. The distinction matters to analysts: null means the registry
// field was empty, absence means the converter dropped the column.
//
// # Geometry
//
// Only Point geometries with exactly two finite coordinate components
// ([longitude, latitude]) are renderable. Features with any other geometry
// are skipped individually and never fail the whole dataset.
package domain
