package rules

import (
	"strings"
	"testing"
)

// --- Helpers ---

func testValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(map[string]map[string]Rule{
		"introduction": {
			"productDescription": {MinLength: 10, MaxLength: 500, RequiredElements: []string{"what", "who"}, QualityThreshold: 60},
			"problemStatement":   {MinLength: 10, MaxLength: 400},
		},
	})
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}
	return v
}

func hasIssueContaining(result Result, substr string) bool {
	for _, issue := range result.Issues {
		if strings.Contains(issue, substr) {
			return true
		}
	}
	return false
}

// --- NewValidator ---

func TestNewValidator_EmptyRuleSet(t *testing.T) {
	if _, err := NewValidator(map[string]map[string]Rule{}); err == nil {
		t.Fatal("empty rule set should be rejected")
	}
}

func TestNewValidator_NilRuleSet(t *testing.T) {
	if _, err := NewValidator(nil); err == nil {
		t.Fatal("nil rule set should be rejected")
	}
}

func TestNewValidator_SectionWithNoFields(t *testing.T) {
	_, err := NewValidator(map[string]map[string]Rule{"goals": {}})
	if err == nil {
		t.Fatal("section with no field rules should be rejected")
	}
}

func TestNewValidator_MalformedRules(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"negative min", Rule{MinLength: -1}},
		{"negative max", Rule{MaxLength: -5}},
		{"min exceeds max", Rule{MinLength: 100, MaxLength: 50}},
		{"threshold too high", Rule{QualityThreshold: 101}},
		{"empty required element", Rule{RequiredElements: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewValidator(map[string]map[string]Rule{"s": {"f": tt.rule}})
			if err == nil {
				t.Errorf("rule %+v should be rejected", tt.rule)
			}
		})
	}
}

func TestValidator_RuleLookup(t *testing.T) {
	v := testValidator(t)

	rule, ok := v.Rule("introduction", "productDescription")
	if !ok {
		t.Fatal("rule should exist")
	}
	if rule.MinLength != 10 {
		t.Errorf("MinLength = %d, want 10", rule.MinLength)
	}

	if _, ok := v.Rule("introduction", "bogus"); ok {
		t.Error("unknown field should not have a rule")
	}
	if _, ok := v.Rule("bogus", "productDescription"); ok {
		t.Error("unknown section should not have a rule")
	}
}

// --- ValidateField: length checks ---

func TestValidateField_TooShort(t *testing.T) {
	v := testValidator(t)

	result := v.ValidateField("nope", Rule{MinLength: 50})
	if result.Passed {
		t.Error("short answer should not pass")
	}
	if !hasIssueContaining(result, "too short") {
		t.Errorf("issues should mention 'too short', got %v", result.Issues)
	}
}

func TestValidateField_TooShortRegardlessOfQuality(t *testing.T) {
	v := testValidator(t)

	// Concrete, specific, multi-sentence — but under the minimum length.
	answer := "Saves 40% time. Costs $5."
	result := v.ValidateField(answer, Rule{MinLength: 500})
	if result.Passed {
		t.Error("answer below min length must fail independent of quality score")
	}
	if !hasIssueContaining(result, "too short") {
		t.Errorf("issues = %v, want 'too short'", result.Issues)
	}
}

func TestValidateField_TooLong(t *testing.T) {
	v := testValidator(t)

	result := v.ValidateField("this answer is well over the limit", Rule{MaxLength: 10})
	if result.Passed {
		t.Error("long answer should not pass")
	}
	if !hasIssueContaining(result, "too long") {
		t.Errorf("issues should mention 'too long', got %v", result.Issues)
	}
}

func TestValidateField_NoMaxMeansUnbounded(t *testing.T) {
	v := testValidator(t)

	long := strings.Repeat("A detailed sentence about the product. ", 50)
	result := v.ValidateField(long, Rule{MinLength: 10})
	if hasIssueContaining(result, "too long") {
		t.Error("zero max length should not produce 'too long'")
	}
}

// --- ValidateField: required elements ---

func TestValidateField_LiteralElementPresent(t *testing.T) {
	v := testValidator(t)

	result := v.ValidateField("Users can login with their email address.",
		Rule{RequiredElements: []string{"login"}})
	if hasIssueContaining(result, "missing required") {
		t.Errorf("literal element should be found, issues = %v", result.Issues)
	}
}

func TestValidateField_LiteralElementWholeWordOnly(t *testing.T) {
	v := testValidator(t)

	// "smart" contains "art" but must not count as a whole-word match.
	result := v.ValidateField("A smart system for scheduling.",
		Rule{RequiredElements: []string{"art"}})
	if !hasIssueContaining(result, "missing required") {
		t.Error("substring inside another word should not satisfy a literal element")
	}
}

func TestValidateField_ConceptSynonymSatisfiesElement(t *testing.T) {
	v := testValidator(t)

	// "who" is a concept label; "customers" is one of its synonyms.
	result := v.ValidateField("Our customers need faster checkout.",
		Rule{RequiredElements: []string{"who"}})
	if hasIssueContaining(result, "missing required") {
		t.Errorf("concept synonym should satisfy element, issues = %v", result.Issues)
	}
}

func TestValidateField_MissingElementsReported(t *testing.T) {
	v := testValidator(t)

	result := v.ValidateField("It parses log files quickly.",
		Rule{RequiredElements: []string{"who", "metric"}})
	if result.Passed {
		t.Error("answer missing required elements should not pass")
	}
	if !hasIssueContaining(result, "who") || !hasIssueContaining(result, "metric") {
		t.Errorf("issues should name the missing elements, got %v", result.Issues)
	}
	if len(result.Suggestions) == 0 {
		t.Error("missing elements should produce a suggestion")
	}
}

// --- ValidateField: quality score ---

func TestValidateField_ScoreInRange(t *testing.T) {
	v := testValidator(t)

	inputs := []string{
		"",
		"x",
		"A plain answer.",
		strings.Repeat("Concrete detail: 42% growth, $10,000 budget, weekly cadence. ", 40),
	}
	for _, input := range inputs {
		result := v.ValidateField(input, Rule{})
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("score for %q = %d, want 0-100", input, result.Score)
		}
	}
}

func TestValidateField_SpecificAnswerScoresHigher(t *testing.T) {
	v := testValidator(t)
	rule := Rule{MaxLength: 500}

	vague := v.ValidateField("It does some stuff for things, maybe.", rule)
	specific := v.ValidateField(
		"The dashboard refreshes every 5 minutes and cut reporting time by 40%, "+
			"because the weekly export now runs on mobile and web.", rule)

	if specific.Score <= vague.Score {
		t.Errorf("specific score %d should exceed vague score %d", specific.Score, vague.Score)
	}
}

func TestValidateField_BelowThresholdFailsWithGenericSuggestion(t *testing.T) {
	v := testValidator(t)

	result := v.ValidateField("This is fine.", Rule{QualityThreshold: 95})
	if result.Passed {
		t.Error("score below threshold should not pass")
	}
	if len(result.Issues) != 0 {
		t.Errorf("quality-only failure should carry no structural issues, got %v", result.Issues)
	}

	found := false
	for _, s := range result.Suggestions {
		if strings.Contains(s, "specific") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected generic detail suggestion, got %v", result.Suggestions)
	}
}

func TestValidateField_NoThresholdPassesOnScore(t *testing.T) {
	v := testValidator(t)

	result := v.ValidateField("A modest answer.", Rule{})
	if !result.Passed {
		t.Errorf("no issues and no threshold should pass, got %+v", result)
	}
}

// --- ValidateSection ---

func TestValidateSection_MissingFieldForcesOverallFalse(t *testing.T) {
	v := testValidator(t)

	result := v.ValidateSection("introduction", map[string]string{
		"productDescription": "A scheduling platform that helps clinic teams book patients, because double-bookings waste 20% of slots.",
	})
	if result.Overall {
		t.Error("missing rule-bearing field should force overall=false")
	}
	if len(result.MissingRequired) != 1 || result.MissingRequired[0] != "problemStatement" {
		t.Errorf("MissingRequired = %v, want [problemStatement]", result.MissingRequired)
	}
}

func TestValidateSection_AllFieldsPresentAndPassing(t *testing.T) {
	v := testValidator(t)

	result := v.ValidateSection("introduction", map[string]string{
		"productDescription": "A scheduling platform that helps clinic teams book patients faster, because double-bookings currently waste 20% of appointment slots every week.",
		"problemStatement":   "Front-desk staff juggle three calendars and still double-book rooms.",
	})
	if !result.Overall {
		t.Errorf("all fields present and passing should give overall=true, got %+v", result)
	}
	if len(result.MissingRequired) != 0 {
		t.Errorf("MissingRequired = %v, want empty", result.MissingRequired)
	}
}

func TestValidateSection_FailingFieldAggregatesIssues(t *testing.T) {
	v := testValidator(t)

	result := v.ValidateSection("introduction", map[string]string{
		"productDescription": "A scheduling platform that helps clinic teams book patients faster, because double-bookings currently waste 20% of appointment slots every week.",
		"problemStatement":   "meh", // below min length
	})
	if result.Overall {
		t.Error("failing field should force overall=false")
	}
	detail, ok := result.Details["problemStatement"]
	if !ok {
		t.Fatal("details should include the failing field")
	}
	if detail.Passed {
		t.Error("failing field detail should have passed=false")
	}

	found := false
	for _, s := range result.Suggestions {
		if strings.Contains(s, "problemStatement") {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions should reference the failing field, got %v", result.Suggestions)
	}
}

func TestValidateSection_NoRulesForSection(t *testing.T) {
	v := testValidator(t)

	result := v.ValidateSection("unknown-section", map[string]string{"x": "y"})
	if !result.Overall {
		t.Error("section with no rules should validate as overall=true")
	}
}
