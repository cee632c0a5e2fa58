package knobs

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultValue is assigned to a knob the first time its placeholder appears.
const DefaultValue = 10

// Knob is a named numeric tunable.
type Knob struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Set is an ordered knob map. Order follows the extracted names.
type Set []Knob

// Names returns the knob names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, k := range s {
		names[i] = k.Name
	}
	return names
}

// Map returns the knob values keyed by name.
func (s Set) Map() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, k := range s {
		m[k.Name] = k.Value
	}
	return m
}

// MarshalJSON encodes the set as a JSON object whose keys keep the set order.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(k.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Reconcile builds the knob set for names. Values present in old are carried over
// unchanged, new names get defaultValue, and names missing from names are dropped.
// It is pure and cheap enough to run on every edit.
func Reconcile(old map[string]float64, names []string, defaultValue float64) Set {
	set := make(Set, 0, len(names))
	for _, name := range names {
		value, ok := old[name]
		if !ok {
			value = defaultValue
		}
		set = append(set, Knob{Name: name, Value: value})
	}
	return set
}

// Coerce converts user-entered knob values to numbers. Anything that does not
// parse as a finite number becomes defaultValue; coercion never blocks a run.
func Coerce(raw map[string]any, defaultValue float64) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for name, v := range raw {
		out[name] = coerceValue(v, defaultValue)
	}
	return out
}

func coerceValue(v any, defaultValue float64) float64 {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return defaultValue
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return defaultValue
		}
		f = parsed
	default:
		return defaultValue
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return defaultValue
	}
	return f
}
