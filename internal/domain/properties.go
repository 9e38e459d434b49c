package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Properties is the attribute bag of one accident feature: the six known
// registry fields as typed values, plus unrecognized keys preserved in
// document order for schema-drift diagnostics.
type Properties struct {
	Outcome     Value
	Year        Value
	Parties     Value
	SpeedLimit  Value
	Light       Value
	RoadSurface Value

	// Extra holds keys outside the known set, in the order they appear in
	// the JSON object.
	Extra []ExtraProperty
}

// Value is a known property value. Present distinguishes a key that exists
// in the input (possibly null) from one that is missing entirely.
type Value struct {
	Present bool
	Text    string // rendered scalar; empty for null
}

// ExtraProperty is an unrecognized key/value pair.
type ExtraProperty struct {
	Key  string
	Text string
}

// UnmarshalJSON decodes the properties object with a token stream so that
// unrecognized keys keep their document order, which encoding/json maps
// discard.
func (p *Properties) UnmarshalJSON(data []byte) error {
	*p = Properties{}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("properties: expected key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("properties: value of %q: %w", key, err)
		}
		text := renderScalar(raw)

		if v := p.Known(key); v != nil {
			*v = Value{Present: true, Text: text}
			continue
		}
		p.Extra = append(p.Extra, ExtraProperty{Key: key, Text: text})
	}

	// closing brace
	_, err = dec.Token()
	return err
}

// Known maps a registry key to its typed field, or nil for keys outside the
// known set.
func (p *Properties) Known(key string) *Value {
	switch key {
	case "verkeersongeval_afloop":
		return &p.Outcome
	case "jaar_ongeval":
		return &p.Year
	case "aantal_partijen":
		return &p.Parties
	case "maximum_snelheid":
		return &p.SpeedLimit
	case "lichtgesteldheid":
		return &p.Light
	case "wegdek":
		return &p.RoadSurface
	}
	return nil
}

// renderScalar turns a raw JSON value into display text. Numbers keep their
// literal form ("80", not "80.000000"), null becomes the empty string, and
// non-scalar values fall back to their compacted JSON text.
func renderScalar(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	switch {
	case s == "null":
		return ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			return str
		}
	}
	return s
}
