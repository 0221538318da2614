// Package model defines the core data structures for the billflow application.
package model

import "time"

// ValueType classifies what kind of field a pattern rule extracts.
type ValueType string

// Value type constants.
const (
	ValueAccount  ValueType = "account"
	ValueName     ValueType = "name"
	ValueAddress  ValueType = "address"
	ValueDate     ValueType = "date"
	ValueCurrency ValueType = "currency"
	ValuePhone    ValueType = "phone"
	ValueEmail    ValueType = "email"
)

// Validator is an optional semantic check attached to a pattern rule.
// A candidate that fails validation is discarded, not scored.
type Validator interface {
	Validate(candidate string) bool
}

// PatternRule is a single named extraction rule. Rules are immutable data;
// the matcher compiles Pattern at the point of use so a rule set stays
// serializable. Higher Priority means more authoritative.
type PatternRule struct {
	CreatedAt   time.Time `json:"created_at,omitempty"`
	Validator   Validator `json:"-"`
	Name        string    `json:"name"`
	Pattern     string    `json:"pattern"`
	Description string    `json:"description"`
	ValueType   ValueType `json:"value_type"`
	Priority    int       `json:"priority"`
	ID          int64     `json:"id,omitempty"`
}

// PatternMatch is one candidate value found by applying a rule to text.
type PatternMatch struct {
	Value      string  `json:"value"`
	Context    string  `json:"context"`
	Position   int     `json:"position"`
	Confidence float64 `json:"confidence"`
}

// DiscoveredPattern is a candidate rule inferred from a sample document.
// It is reviewed by a human before being promoted into the rule catalog.
type DiscoveredPattern struct {
	ValueType   ValueType `json:"value_type"`
	Pattern     string    `json:"pattern"`
	Description string    `json:"description"`
	Examples    []string  `json:"examples"`
	Confidence  float64   `json:"confidence"`
	Frequency   int       `json:"frequency"`
}
