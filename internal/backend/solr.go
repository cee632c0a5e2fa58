package backend

import (
	"fmt"
	"sort"
	"strings"
)

// Params is the structural form of a flattened Solr parameter string. Keys map to
// their values in occurrence order.
type Params map[string][]string

// solrCodec handles URL-query-like parameter text. Values are kept verbatim:
// percent-decoding would corrupt '#' placeholders and literal '%' signs.
type solrCodec struct{}

func (solrCodec) Kind() Kind { return Solr }

// Valid is always true: the parameter editor has no stricter syntax gate.
func (solrCodec) Valid(string) bool { return true }

func (solrCodec) Parse(text string) (any, error) {
	return ParseParams(text), nil
}

func (solrCodec) Serialize(v any) (string, error) {
	switch p := v.(type) {
	case Params:
		return p.Encode(), nil
	case map[string][]string:
		return Params(p).Encode(), nil
	default:
		return "", fmt.Errorf("serialize solr template: unsupported type %T", v)
	}
}

func (solrCodec) ExtractKnobVars(text string) []string {
	return extractKnobVars(text)
}

// ParseParams splits text on '&' and newlines into key/value pairs. Pairs without
// '=' keep an empty value; pairs with an empty key are dropped.
func ParseParams(text string) Params {
	params := Params{}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '&' || r == '\n' || r == '\r'
	})
	for _, field := range fields {
		key, value, _ := strings.Cut(field, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		params[key] = append(params[key], strings.TrimSpace(value))
	}
	return params
}

// Encode renders params with keys sorted, so that
// ParseParams(p.Encode()).Encode() == p.Encode().
func (p Params) Encode() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range p[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
	return b.String()
}
