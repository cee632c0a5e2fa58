package storage

import "time"

// Direction selects which side of a configuration window to extend.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// QueryTemplate is an immutable version of a project's query template.
// A nil ParentID marks a root of the project's template forest.
type QueryTemplate struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	ParentID    *string   `json:"parentId"`
	Description string    `json:"description"`
	Query       string    `json:"query"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Ruleset is a mutable, named container for a chain of RulesetVersions.
type Ruleset struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// RuleInstruction is one action a rule applies when its expression matches.
type RuleInstruction struct {
	Type   string  `json:"type" yaml:"type"`
	Term   string  `json:"term,omitempty" yaml:"term,omitempty"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// Rule is an ordered re-ranking rule.
type Rule struct {
	Expression     string            `json:"expression" yaml:"expression"`
	ExpressionType string            `json:"expressionType" yaml:"expressionType"`
	IsEnabled      bool              `json:"isEnabled" yaml:"isEnabled"`
	Instructions   []RuleInstruction `json:"instructions" yaml:"instructions"`
}

// Condition gates when a ruleset applies.
type Condition struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// RulesetValue is the payload of a RulesetVersion.
type RulesetValue struct {
	Rules      []Rule      `json:"rules" yaml:"rules"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`
}

// RulesetVersion is an immutable snapshot of a ruleset's rules and conditions.
type RulesetVersion struct {
	ID        string       `json:"id"`
	RulesetID string       `json:"rulesetId"`
	ParentID  *string      `json:"parentId"`
	Value     RulesetValue `json:"value"`
	CreatedAt time.Time    `json:"createdAt"`
}

// SearchConfiguration pairs a template version, knob values and attached rulesets
// at a dense position (Index) in the project's configuration sequence.
type SearchConfiguration struct {
	ID              string             `json:"id"`
	ProjectID       string             `json:"projectId"`
	QueryTemplateID string             `json:"queryTemplateId"`
	Knobs           map[string]float64 `json:"knobs"`
	RulesetIDs      []string           `json:"rulesetIds"`
	// RulesetVersionIDs maps each attached ruleset to the version that was
	// latest when the configuration was created.
	RulesetVersionIDs map[string]string `json:"rulesetVersionIds"`
	Index             int               `json:"index"`
	IsActive          bool              `json:"isActive"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// SearchConfigurationSummary is the row shape used by configuration windows.
type SearchConfigurationSummary struct {
	ID              string    `json:"id"`
	Index           int       `json:"index"`
	QueryTemplateID string    `json:"queryTemplateId"`
	IsActive        bool      `json:"isActive"`
	CombinedScore   *float64  `json:"combinedScore"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ExecutionMeta holds latency percentiles in milliseconds.
type ExecutionMeta struct {
	TookP50 float64 `json:"tookP50"`
	TookP95 float64 `json:"tookP95"`
	TookP99 float64 `json:"tookP99"`
}

// Execution is the outcome of running a configuration over the judged phrases.
type Execution struct {
	ID                    string             `json:"id"`
	SearchConfigurationID string             `json:"searchConfigurationId"`
	CombinedScore         float64            `json:"combinedScore"`
	AllScores             map[string]float64 `json:"allScores"`
	Meta                  ExecutionMeta      `json:"meta"`
	CreatedAt             time.Time          `json:"createdAt"`
}

// SearchPhraseExecution is the per-phrase result of an execution. Error is set
// on failure; the score fields are meaningful only on success.
type SearchPhraseExecution struct {
	ID            string             `json:"id"`
	ExecutionID   string             `json:"executionId"`
	Phrase        string             `json:"phrase"`
	CombinedScore float64            `json:"combinedScore,omitempty"`
	AllScores     map[string]float64 `json:"allScores,omitempty"`
	TotalResults  int                `json:"totalResults,omitempty"`
	TookMs        int                `json:"tookMs,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// Failed reports whether the phrase execution carries an error.
func (p SearchPhraseExecution) Failed() bool {
	return p.Error != ""
}

// VersionID, ParentVersionID and CreatedTime let template and ruleset versions
// be arranged into history forests.
func (t QueryTemplate) VersionID() string        { return t.ID }
func (t QueryTemplate) ParentVersionID() *string { return t.ParentID }
func (t QueryTemplate) CreatedTime() time.Time   { return t.CreatedAt }

func (v RulesetVersion) VersionID() string        { return v.ID }
func (v RulesetVersion) ParentVersionID() *string { return v.ParentID }
func (v RulesetVersion) CreatedTime() time.Time   { return v.CreatedAt }
