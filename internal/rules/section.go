package rules

import (
	"fmt"
	"sort"
)

// ValidateSection validates every stored answer in a section against the
// section's rule set. A rule-bearing field with no stored answer forces
// Overall=false and is reported in MissingRequired; every provided field
// is validated individually and its issues folded into Suggestions.
func (v *Validator) ValidateSection(section string, responses map[string]string) SectionResult {
	result := SectionResult{
		Overall: true,
		Details: make(map[string]Result),
	}

	fields := v.ruleset[section]
	if len(fields) == 0 {
		// No rules for this section: anything provided is acceptable.
		return result
	}

	// Deterministic field order keeps missing/suggestion lists stable.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		answer, ok := responses[name]
		if !ok || answer == "" {
			result.Overall = false
			result.MissingRequired = append(result.MissingRequired, name)
			result.Suggestions = append(result.Suggestions,
				fmt.Sprintf("Provide an answer for %q", name))
			continue
		}

		fieldResult := v.ValidateField(answer, fields[name])
		result.Details[name] = fieldResult
		if !fieldResult.Passed {
			result.Overall = false
			for _, issue := range fieldResult.Issues {
				result.Suggestions = append(result.Suggestions,
					fmt.Sprintf("%s: %s", name, issue))
			}
			if len(fieldResult.Issues) == 0 {
				result.Suggestions = append(result.Suggestions,
					fmt.Sprintf("%s: quality score %d below threshold %d",
						name, fieldResult.Score, fields[name].QualityThreshold))
			}
		}
	}

	return result
}
