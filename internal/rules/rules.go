// Package rules implements declarative answer validation for the PRD
// interview. Each section/field pair carries a Rule (length bounds,
// required concept elements, quality threshold); ValidateField evaluates
// one answer against one rule and ValidateSection aggregates a whole
// section's stored answers.
//
// Validation failures are data, never errors: a low-quality answer
// produces Result.Passed=false, while a malformed rule set is a
// configuration error surfaced at construction time.
package rules

import "fmt"

// Rule is the immutable validation configuration for one field.
// A zero MaxLength means "no upper bound"; a zero QualityThreshold
// means "no quality gate".
type Rule struct {
	MinLength        int      `json:"min_length"`
	MaxLength        int      `json:"max_length"`
	RequiredElements []string `json:"required_elements,omitempty"`
	QualityThreshold int      `json:"quality_threshold"`
}

// Result is the outcome of validating a single answer.
// Score is always populated (0-100), even when Passed is false.
type Result struct {
	Passed      bool     `json:"passed"`
	Score       int      `json:"score"`
	Issues      []string `json:"issues,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// SectionResult aggregates per-field validation across a section.
type SectionResult struct {
	Overall         bool              `json:"overall"`
	Details         map[string]Result `json:"details"`
	MissingRequired []string          `json:"missing_required,omitempty"`
	Suggestions     []string          `json:"suggestions,omitempty"`
}

// Validator evaluates answers against a section/field rule set.
// The rule set is validated once at construction and never mutated.
type Validator struct {
	ruleset map[string]map[string]Rule
}

// NewValidator creates a Validator from a section → field → Rule table.
// An empty or malformed rule set is a configuration error.
func NewValidator(ruleset map[string]map[string]Rule) (*Validator, error) {
	if len(ruleset) == 0 {
		return nil, fmt.Errorf("rule set is empty")
	}

	for section, fields := range ruleset {
		if len(fields) == 0 {
			return nil, fmt.Errorf("section %q has no field rules", section)
		}
		for field, rule := range fields {
			if err := checkRule(rule); err != nil {
				return nil, fmt.Errorf("rule for %s.%s: %w", section, field, err)
			}
		}
	}

	return &Validator{ruleset: ruleset}, nil
}

// checkRule rejects rule entries that cannot have come from a sane config.
func checkRule(rule Rule) error {
	if rule.MinLength < 0 {
		return fmt.Errorf("min_length %d is negative", rule.MinLength)
	}
	if rule.MaxLength < 0 {
		return fmt.Errorf("max_length %d is negative", rule.MaxLength)
	}
	if rule.MaxLength > 0 && rule.MinLength > rule.MaxLength {
		return fmt.Errorf("min_length %d exceeds max_length %d", rule.MinLength, rule.MaxLength)
	}
	if rule.QualityThreshold < 0 || rule.QualityThreshold > 100 {
		return fmt.Errorf("quality_threshold %d outside 0-100", rule.QualityThreshold)
	}
	for _, elem := range rule.RequiredElements {
		if elem == "" {
			return fmt.Errorf("required element is empty")
		}
	}
	return nil
}

// Rule returns the rule for a section/field pair, if one exists.
func (v *Validator) Rule(section, field string) (Rule, bool) {
	fields, ok := v.ruleset[section]
	if !ok {
		return Rule{}, false
	}
	rule, ok := fields[field]
	return rule, ok
}

// SectionRules returns the field → Rule table for a section.
// Returns nil if the section carries no rules.
func (v *Validator) SectionRules(section string) map[string]Rule {
	return v.ruleset[section]
}
