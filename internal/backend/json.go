package backend

import (
	"encoding/json"
	"fmt"
)

// jsonCodec handles JSON request bodies (Elasticsearch, OpenSearch).
type jsonCodec struct {
	kind Kind
}

func (c jsonCodec) Kind() Kind { return c.kind }

func (jsonCodec) Valid(text string) bool {
	return json.Valid([]byte(text))
}

func (jsonCodec) Parse(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("parse json template: %w", err)
	}
	return v, nil
}

func (jsonCodec) Serialize(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize json template: %w", err)
	}
	return string(data), nil
}

func (jsonCodec) ExtractKnobVars(text string) []string {
	return extractKnobVars(text)
}
