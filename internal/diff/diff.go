// Package diff decides whether an edited search configuration differs from its
// baseline closely enough to need new versions before a run.
//
// None of the predicates return errors. Input that cannot be parsed counts as
// changed so a new version is always written for it.
package diff

import (
	"maps"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"relevance-workbench/internal/backend"
	"relevance-workbench/internal/storage"
)

// QueryTemplateChanged compares two template texts structurally after parsing
// them with codec. Formatting and key order do not count as changes.
func QueryTemplateChanged(codec backend.Codec, candidate, baseline string) bool {
	if !codec.Valid(candidate) || !codec.Valid(baseline) {
		return true
	}
	a, err := codec.Parse(candidate)
	if err != nil {
		return true
	}
	b, err := codec.Parse(baseline)
	if err != nil {
		return true
	}
	return !cmp.Equal(a, b, cmpopts.EquateEmpty())
}

// RulesetChanged compares rule and condition payloads. A nil candidate means no
// ruleset is selected; it is unchanged only when the baseline is nil too.
func RulesetChanged(candidate, baseline *storage.RulesetValue) bool {
	switch {
	case candidate == nil && baseline == nil:
		return false
	case candidate == nil || baseline == nil:
		return true
	}
	return !cmp.Equal(*candidate, *baseline, cmpopts.EquateEmpty())
}

// RulesetIDsChanged compares attached ruleset ids as sets.
func RulesetIDsChanged(candidate, baseline []string) bool {
	a := slices.Compact(slices.Sorted(slices.Values(candidate)))
	b := slices.Compact(slices.Sorted(slices.Values(baseline)))
	return !slices.Equal(a, b)
}

// KnobsChanged compares knob values by name.
func KnobsChanged(candidate, baseline map[string]float64) bool {
	return !maps.Equal(candidate, baseline)
}

// Changes collects the per-entity change flags of a form.
type Changes struct {
	QueryTemplate bool `json:"queryTemplate"`
	Ruleset       bool `json:"ruleset"`
	RulesetIDs    bool `json:"rulesetIds"`
	Knobs         bool `json:"knobs"`
}

// Any reports whether anything changed, i.e. whether a new configuration is needed.
func (c Changes) Any() bool {
	return c.QueryTemplate || c.Ruleset || c.RulesetIDs || c.Knobs
}

// Form is the edited state compared against a baseline.
type Form struct {
	Query      string
	Ruleset    *storage.RulesetValue
	RulesetIDs []string
	Knobs      map[string]float64
}

// Compare evaluates every predicate of candidate against baseline.
func Compare(codec backend.Codec, candidate, baseline Form) Changes {
	return Changes{
		QueryTemplate: QueryTemplateChanged(codec, candidate.Query, baseline.Query),
		Ruleset:       RulesetChanged(candidate.Ruleset, baseline.Ruleset),
		RulesetIDs:    RulesetIDsChanged(candidate.RulesetIDs, baseline.RulesetIDs),
		Knobs:         KnobsChanged(candidate.Knobs, baseline.Knobs),
	}
}
