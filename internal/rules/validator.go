package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Sub-score caps. The field quality score is the sum of four
// independently clamped 0-25 components.
const (
	subScoreCap     = 25
	defaultIdealLen = 200
	specificityBase = 18
	clarityBase     = 18
	conceptBaseline = 20
)

// Pattern families used by the specificity and clarity sub-scores.
var (
	fieldSpecificPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+(\.\d+)?%`),
		regexp.MustCompile(`[$€£]\d[\d,]*`),
		regexp.MustCompile(`\b\d[\d,]*\b`),
		regexp.MustCompile(`(?i)\b(daily|weekly|monthly|quarterly|annually)\b`),
		regexp.MustCompile(`(?i)\b(ios|android|web|api|saas|desktop|mobile)\b`),
	}

	fieldVaguePattern = regexp.MustCompile(`(?i)\b(stuff|things|some|various|several|somehow|maybe|probably|etc)\b`)

	fieldConnectorPattern = regexp.MustCompile(`(?i)\b(because|therefore|so that|which means|as a result|first|then|finally)\b`)

	fieldInformalPattern = regexp.MustCompile(`(?i)\b(gonna|wanna|kinda|sorta|dunno|lol|omg|btw|idk)\b`)

	sentenceSplit = regexp.MustCompile(`[.!?]+`)
)

// ValidateField evaluates one answer against one rule. It never returns
// an error: structural problems and low quality are reported as data.
func (v *Validator) ValidateField(answer string, rule Rule) Result {
	answer = strings.TrimSpace(answer)

	var issues, suggestions []string

	if len(answer) < rule.MinLength {
		issues = append(issues, fmt.Sprintf(
			"too short: %d characters (minimum %d)", len(answer), rule.MinLength))
		suggestions = append(suggestions, fmt.Sprintf(
			"Expand your answer to at least %d characters", rule.MinLength))
	}
	if rule.MaxLength > 0 && len(answer) > rule.MaxLength {
		issues = append(issues, fmt.Sprintf(
			"too long: %d characters (maximum %d)", len(answer), rule.MaxLength))
		suggestions = append(suggestions, fmt.Sprintf(
			"Trim your answer to at most %d characters", rule.MaxLength))
	}

	missing := missingElements(rule.RequiredElements, answer)
	if len(missing) > 0 {
		issues = append(issues, fmt.Sprintf(
			"missing required elements: %s", strings.Join(missing, ", ")))
		suggestions = append(suggestions, fmt.Sprintf(
			"Make sure your answer addresses: %s", strings.Join(missing, ", ")))
	}

	score := v.fieldQualityScore(answer, rule)

	passed := len(issues) == 0 && (rule.QualityThreshold == 0 || score >= rule.QualityThreshold)
	if len(issues) == 0 && !passed {
		suggestions = append(suggestions,
			"Add specific details, numbers, or concrete examples to strengthen this answer")
	}

	return Result{
		Passed:      passed,
		Score:       score,
		Issues:      issues,
		Suggestions: suggestions,
	}
}

// fieldQualityScore sums four capped sub-scores into a 0-100 quality score.
func (v *Validator) fieldQualityScore(answer string, rule Rule) int {
	total := lengthAdequacy(answer, rule) +
		conceptCompleteness(answer, rule) +
		fieldSpecificity(answer) +
		fieldClarity(answer)
	return clamp(total, 0, 100)
}

// lengthAdequacy scores 0-25, linear in answer length up to the ideal
// length (the rule's max length, capped at 200 characters).
func lengthAdequacy(answer string, rule Rule) int {
	ideal := rule.MaxLength
	if ideal == 0 || ideal > defaultIdealLen {
		ideal = defaultIdealLen
	}

	ratio := float64(len(answer)) / float64(ideal)
	if ratio > 1 {
		ratio = 1
	}
	return clamp(int(ratio*float64(subScoreCap)), 0, subScoreCap)
}

// conceptCompleteness scores 0-25: a baseline of 20 plus a proportional
// bonus for required-element coverage. The baseline is a floor — an
// answer is never penalized below it for missing elements alone.
func conceptCompleteness(answer string, rule Rule) int {
	if len(rule.RequiredElements) == 0 {
		return conceptBaseline
	}

	covered := len(rule.RequiredElements) - len(missingElements(rule.RequiredElements, answer))
	coverage := float64(covered) / float64(len(rule.RequiredElements))
	bonus := int(coverage*float64(subScoreCap-conceptBaseline) + 0.5)

	return clamp(conceptBaseline+bonus, conceptBaseline, subScoreCap)
}

// fieldSpecificity scores 0-25: base 18, +3 per concrete detail
// (numbers, currency, cadence, platforms), -1 per vague phrase.
func fieldSpecificity(answer string) int {
	score := specificityBase
	for _, p := range fieldSpecificPatterns {
		score += 3 * len(p.FindAllString(answer, -1))
	}
	score -= len(fieldVaguePattern.FindAllString(answer, -1))
	return clamp(score, 0, subScoreCap)
}

// fieldClarity scores 0-25: base 18, up to +5 for multi-sentence
// structure and logical connectors, -1 per informal phrase.
func fieldClarity(answer string) int {
	score := clarityBase
	if countSentences(answer) >= 2 {
		score += 3
	}
	if fieldConnectorPattern.MatchString(answer) {
		score += 2
	}
	score -= len(fieldInformalPattern.FindAllString(answer, -1))
	return clamp(score, 0, subScoreCap)
}

// countSentences counts non-empty fragments split on sentence terminators.
func countSentences(text string) int {
	count := 0
	for _, frag := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(frag) != "" {
			count++
		}
	}
	return count
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
