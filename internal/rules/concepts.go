package rules

import (
	"regexp"
	"strings"
)

// conceptSynonyms maps known concept labels to phrases that count as
// addressing the concept. A required element that is a concept label is
// satisfied by any synonym appearing as a substring of the answer;
// any other required element needs a whole-word literal match.
var conceptSynonyms = map[string][]string{
	"who":       {"user", "customer", "audience", "people", "person", "team", "client", "stakeholder"},
	"what":      {"feature", "product", "tool", "service", "platform", "app", "system", "solution"},
	"why":       {"because", "goal", "benefit", "value", "purpose", "so that", "objective", "reason"},
	"problem":   {"pain", "issue", "challenge", "struggle", "difficulty", "frustration", "gap"},
	"metric":    {"kpi", "measure", "number", "percent", "rate", "count", "score", "conversion"},
	"target":    {"goal", "objective", "aim", "milestone", "benchmark", "quota"},
	"timeframe": {"month", "quarter", "week", "year", "deadline", "q1", "q2", "q3", "q4"},
	"outcome":   {"result", "impact", "achieve", "improve", "increase", "reduce"},
}

// elementPresent reports whether a required element is covered by the
// answer, either as a whole-word literal match or via concept synonyms.
func elementPresent(element, answer string) bool {
	pattern := `(?i)\b` + regexp.QuoteMeta(element) + `\b`
	if regexp.MustCompile(pattern).MatchString(answer) {
		return true
	}

	synonyms, ok := conceptSynonyms[strings.ToLower(element)]
	if !ok {
		return false
	}

	lower := strings.ToLower(answer)
	for _, syn := range synonyms {
		if strings.Contains(lower, syn) {
			return true
		}
	}
	return false
}

// missingElements returns the required elements the answer fails to cover.
func missingElements(required []string, answer string) []string {
	var missing []string
	for _, elem := range required {
		if !elementPresent(elem, answer) {
			missing = append(missing, elem)
		}
	}
	return missing
}
