// Package questions holds the static questionnaire configuration: the
// seven ordered PRD sections, the question specs that fill them, the
// per-field validation rules, and the canned follow-up text shown when
// an answer needs another pass. Everything here is loaded once and
// never mutated.
package questions

import (
	"fmt"

	"github.com/prdpilot/prdpilot/internal/rules"
	"github.com/prdpilot/prdpilot/internal/scoring"
)

// SectionID identifies one of the fixed topical groupings of the PRD.
type SectionID string

const (
	SectionIntroduction SectionID = "introduction"
	SectionGoals        SectionID = "goals"
	SectionAudience     SectionID = "audience"
	SectionUserStories  SectionID = "userStories"
	SectionRequirements SectionID = "requirements"
	SectionMetrics      SectionID = "metrics"
	SectionQuestions    SectionID = "questions"
)

// sectionOrder is the fixed linear order sections are interviewed in.
var sectionOrder = []SectionID{
	SectionIntroduction,
	SectionGoals,
	SectionAudience,
	SectionUserStories,
	SectionRequirements,
	SectionMetrics,
	SectionQuestions,
}

// SectionOrder returns a copy of the fixed section sequence.
func SectionOrder() []SectionID {
	out := make([]SectionID, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// ValidSection reports whether id names a known section.
func ValidSection(id SectionID) bool {
	for _, s := range sectionOrder {
		if s == id {
			return true
		}
	}
	return false
}

// ExtractKind selects the lightweight structured-data extraction applied
// to an answer for a given field.
type ExtractKind string

const (
	ExtractEntities     ExtractKind = "entities"
	ExtractProblems     ExtractKind = "problems"
	ExtractDemographics ExtractKind = "demographics"
	ExtractMetrics      ExtractKind = "metrics"
	ExtractKeywords     ExtractKind = "keywords"
)

// Spec is one immutable question definition.
type Spec struct {
	ID      string               `json:"id"`
	Prompt  string               `json:"prompt"`
	Section SectionID            `json:"section"`
	Field   string               `json:"field"`
	Type    scoring.QuestionType `json:"type"`
	Extract ExtractKind          `json:"extract"`
}

// Registry bundles the question specs with the per-field rule tables,
// section titles, draft headings, and follow-up text.
type Registry struct {
	specs     map[SectionID][]Spec
	ruleset   map[string]map[string]rules.Rule
	titles    map[SectionID]string
	headings  map[SectionID]map[string]string
	followUps map[SectionID][]string
}

// NewRegistry builds a Registry and validates the configuration: every
// spec must belong to a known section, and every rule must reference a
// section/field some spec defines.
func NewRegistry(
	specs []Spec,
	ruleset map[string]map[string]rules.Rule,
	titles map[SectionID]string,
	headings map[SectionID]map[string]string,
	followUps map[SectionID][]string,
) (*Registry, error) {
	bySection := make(map[SectionID][]Spec)
	fields := make(map[string]map[string]bool)

	for _, spec := range specs {
		if !ValidSection(spec.Section) {
			return nil, fmt.Errorf("question %q references unknown section %q", spec.ID, spec.Section)
		}
		if spec.Field == "" {
			return nil, fmt.Errorf("question %q has no field name", spec.ID)
		}
		bySection[spec.Section] = append(bySection[spec.Section], spec)
		if fields[string(spec.Section)] == nil {
			fields[string(spec.Section)] = make(map[string]bool)
		}
		fields[string(spec.Section)][spec.Field] = true
	}

	for section, sectionRules := range ruleset {
		for field := range sectionRules {
			if !fields[section][field] {
				return nil, fmt.Errorf("rule for %s.%s has no matching question", section, field)
			}
		}
	}

	return &Registry{
		specs:     bySection,
		ruleset:   ruleset,
		titles:    titles,
		headings:  headings,
		followUps: followUps,
	}, nil
}

// QuestionsFor returns the question specs for a section, in asking order.
func (r *Registry) QuestionsFor(section SectionID) []Spec {
	specs := r.specs[section]
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Lookup returns the spec for a section/field pair.
func (r *Registry) Lookup(section SectionID, field string) (Spec, bool) {
	for _, spec := range r.specs[section] {
		if spec.Field == field {
			return spec, true
		}
	}
	return Spec{}, false
}

// RuleSet returns the full section → field → rule table for validator
// construction.
func (r *Registry) RuleSet() map[string]map[string]rules.Rule {
	return r.ruleset
}

// RuleFor returns the validation rule for a section/field pair.
func (r *Registry) RuleFor(section SectionID, field string) (rules.Rule, bool) {
	sectionRules, ok := r.ruleset[string(section)]
	if !ok {
		return rules.Rule{}, false
	}
	rule, ok := sectionRules[field]
	return rule, ok
}

// Title returns the display title for a section.
func (r *Registry) Title(section SectionID) string {
	if title, ok := r.titles[section]; ok {
		return title
	}
	return string(section)
}

// Heading returns the draft heading for a section/field pair, falling
// back to the field name.
func (r *Registry) Heading(section SectionID, field string) string {
	if heading, ok := r.headings[section][field]; ok {
		return heading
	}
	return field
}

// FollowUpsFor returns the canned follow-up question text for a section.
// The list is static display copy, not derived from scoring.
func (r *Registry) FollowUpsFor(section SectionID) []string {
	prompts := r.followUps[section]
	out := make([]string, len(prompts))
	copy(out, prompts)
	return out
}
