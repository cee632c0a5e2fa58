// Package backend models the search backends a query template can target and the
// serialization each of them uses for template text.
package backend

import (
	"fmt"
	"strings"

	"relevance-workbench/internal/knobs"
)

// Kind discriminates search backends.
type Kind string

const (
	Elasticsearch Kind = "ELASTICSEARCH"
	OpenSearch    Kind = "OPENSEARCH"
	Solr          Kind = "SOLR"
)

// Kinds lists every supported backend.
var Kinds = []Kind{Elasticsearch, OpenSearch, Solr}

// ParseKind resolves a backend discriminator case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q", s)
}

// Codec is the per-backend capability set for template text.
type Codec interface {
	// Kind returns the backend this codec serves.
	Kind() Kind
	// Valid reports whether text passes the backend's syntax gate.
	Valid(text string) bool
	// Parse decodes text into a structure suitable for semantic comparison.
	Parse(text string) (any, error)
	// Serialize encodes a value produced by Parse back into template text.
	Serialize(v any) (string, error)
	// ExtractKnobVars lists the knob names referenced by text.
	ExtractKnobVars(text string) []string
}

// For returns the codec for kind.
func For(kind Kind) (Codec, error) {
	switch kind {
	case Elasticsearch, OpenSearch:
		return jsonCodec{kind: kind}, nil
	case Solr:
		return solrCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
}

// MustFor is like For but panics on an unknown kind.
func MustFor(kind Kind) Codec {
	c, err := For(kind)
	if err != nil {
		panic(err)
	}
	return c
}

func extractKnobVars(text string) []string {
	return knobs.Extract(text)
}
