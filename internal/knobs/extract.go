// Package knobs discovers tunable numeric variables in query templates and keeps
// their values in step with the template text.
package knobs

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// QueryPlaceholder is the reserved token replaced by the search phrase at execution time.
// It is never reported as a knob.
const QueryPlaceholder = "#$query#"

// knobPattern matches ##name## where name has no '#', '|' or '$'.
var knobPattern = regexp.MustCompile(`##([^#|$]+)##`)

// Extract returns the distinct knob names referenced by query, sorted with a
// locale-aware collation. It never fails: malformed delimiters are ignored and an
// input without placeholders yields an empty, non-nil slice.
func Extract(query string) []string {
	names := []string{}
	if query == "" {
		return names
	}

	text := strings.ReplaceAll(query, QueryPlaceholder, "")
	seen := make(map[string]struct{})
	for _, m := range knobPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	SortNames(names)
	return names
}

// SortNames sorts knob names in place. Names that collate equal fall back to
// byte order so the result is deterministic.
func SortNames(names []string) {
	// Collators keep internal buffers and are not safe for concurrent use.
	c := collate.New(language.Und)
	slices.SortFunc(names, func(a, b string) int {
		if r := c.CompareString(a, b); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	})
}
