package conversation

import (
	"regexp"
	"strings"

	"github.com/prdpilot/prdpilot/internal/questions"
)

// Lightweight structured-data extraction. The results ride along in the
// Exchange payload for the caller's benefit; they play no part in
// validation or section gating.

var (
	entityPattern      = regexp.MustCompile(`\b[A-Z][A-Za-z]+(?: [A-Z][A-Za-z]+)?\b`)
	problemCluePattern = regexp.MustCompile(`(?i)\b(problem|issue|challenge|pain|struggle|frustration|waste|slow|manual|error)\b`)
	ageRangePattern    = regexp.MustCompile(`\b\d{1,2}\s*(?:-|–|to)\s*\d{1,2}\b`)
	rolePattern        = regexp.MustCompile(`(?i)\b(professionals?|students?|managers?|developers?|engineers?|designers?|parents?|teachers?|nurses?|founders?|freelancers?)\b`)
	metricPattern      = regexp.MustCompile(`\d+(\.\d+)?%|[$€£]\d[\d,]*|\b\d[\d,]*\b`)
	keywordPattern     = regexp.MustCompile(`[a-zA-Z]{5,}`)
	extractSentences   = regexp.MustCompile(`[.!?]+`)
)

var keywordStopwords = map[string]bool{
	"about": true, "after": true, "allow": true, "because": true,
	"before": true, "being": true, "could": true, "every": true,
	"other": true, "should": true, "their": true, "there": true,
	"these": true, "thing": true, "things": true, "those": true,
	"through": true, "users": true, "where": true, "which": true,
	"while": true, "would": true,
}

const maxExtracted = 10

// extractData runs the field's configured extraction over the answer.
// Unknown kinds yield nil, never an error.
func extractData(kind questions.ExtractKind, text string) map[string][]string {
	var values []string
	switch kind {
	case questions.ExtractEntities:
		values = dedupe(entityPattern.FindAllString(text, -1))
	case questions.ExtractProblems:
		values = problemSentences(text)
	case questions.ExtractDemographics:
		values = dedupe(append(
			ageRangePattern.FindAllString(text, -1),
			rolePattern.FindAllString(text, -1)...))
	case questions.ExtractMetrics:
		values = dedupe(metricPattern.FindAllString(text, -1))
	case questions.ExtractKeywords:
		values = keywords(text)
	default:
		return nil
	}

	if len(values) == 0 {
		return nil
	}
	return map[string][]string{string(kind): values}
}

// problemSentences returns sentences that mention problem vocabulary.
func problemSentences(text string) []string {
	var out []string
	for _, frag := range extractSentences.Split(text, -1) {
		frag = strings.TrimSpace(frag)
		if frag != "" && problemCluePattern.MatchString(frag) {
			out = append(out, frag)
		}
		if len(out) == maxExtracted {
			break
		}
	}
	return out
}

// keywords returns the distinct longer words of the answer, lowercased.
func keywords(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, word := range keywordPattern.FindAllString(text, -1) {
		word = strings.ToLower(word)
		if seen[word] || keywordStopwords[word] {
			continue
		}
		seen[word] = true
		out = append(out, word)
		if len(out) == maxExtracted {
			break
		}
	}
	return out
}

func dedupe(values []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == maxExtracted {
			break
		}
	}
	return out
}
