package questions

import (
	"github.com/prdpilot/prdpilot/internal/rules"
	"github.com/prdpilot/prdpilot/internal/scoring"
)

// Default returns the built-in PRD questionnaire. The configuration is
// validated at startup; a panic here means the tables below are
// inconsistent, which is a programming error, not user input.
func Default() *Registry {
	r, err := NewRegistry(defaultSpecs, defaultRules, defaultTitles, defaultHeadings, defaultFollowUps)
	if err != nil {
		panic("questions: built-in registry is malformed: " + err.Error())
	}
	return r
}

var defaultSpecs = []Spec{
	{
		ID:      "q-product-description",
		Prompt:  "Describe your product in a few sentences. What is it, and who is it for?",
		Section: SectionIntroduction,
		Field:   "productDescription",
		Type:    scoring.TypeProductDescription,
		Extract: ExtractEntities,
	},
	{
		ID:      "q-problem-statement",
		Prompt:  "What problem does it solve? What do people do today without it?",
		Section: SectionIntroduction,
		Field:   "problemStatement",
		Type:    scoring.TypeProblemStatement,
		Extract: ExtractProblems,
	},
	{
		ID:      "q-business-objectives",
		Prompt:  "What are the business objectives? What should change if this succeeds?",
		Section: SectionGoals,
		Field:   "businessObjectives",
		Type:    scoring.TypeBusinessObjectives,
		Extract: ExtractKeywords,
	},
	{
		ID:      "q-success-metrics-goals",
		Prompt:  "How will you measure success? Name concrete metrics and targets.",
		Section: SectionGoals,
		Field:   "successMetrics",
		Type:    scoring.TypeSuccessMetrics,
		Extract: ExtractMetrics,
	},
	{
		ID:      "q-target-audience",
		Prompt:  "Who is the target audience? Describe the people who will use this.",
		Section: SectionAudience,
		Field:   "targetAudience",
		Type:    scoring.TypeTargetAudience,
		Extract: ExtractDemographics,
	},
	{
		ID:      "q-key-demographics",
		Prompt:  "Any key demographics or segments worth calling out?",
		Section: SectionAudience,
		Field:   "keyDemographics",
		Type:    scoring.TypeTargetAudience,
		Extract: ExtractDemographics,
	},
	{
		ID:      "q-user-stories",
		Prompt:  "Walk through the main user stories: who wants what, and why?",
		Section: SectionUserStories,
		Field:   "userStories",
		Type:    scoring.TypeUserStory,
		Extract: ExtractKeywords,
	},
	{
		ID:      "q-functional-requirements",
		Prompt:  "List the functional requirements. What must the product do?",
		Section: SectionRequirements,
		Field:   "functionalRequirements",
		Type:    scoring.TypeRequirementsList,
		Extract: ExtractKeywords,
	},
	{
		ID:      "q-technical-constraints",
		Prompt:  "Any technical constraints — platforms, integrations, compliance?",
		Section: SectionRequirements,
		Field:   "technicalConstraints",
		Type:    scoring.TypeRequirementsList,
		Extract: ExtractKeywords,
	},
	// Shares its field name with goals.successMetrics: an answer given
	// during goals carries forward and this question is skipped.
	{
		ID:      "q-success-metrics",
		Prompt:  "Which metrics will you track after launch, and what are the targets?",
		Section: SectionMetrics,
		Field:   "successMetrics",
		Type:    scoring.TypeSuccessMetrics,
		Extract: ExtractMetrics,
	},
	{
		ID:      "q-measurement-cadence",
		Prompt:  "How often will you review these metrics, and who owns them?",
		Section: SectionMetrics,
		Field:   "measurementCadence",
		Type:    scoring.TypeSuccessMetrics,
		Extract: ExtractKeywords,
	},
	{
		ID:      "q-open-questions",
		Prompt:  "What is still unknown or undecided? List open questions and risks.",
		Section: SectionQuestions,
		Field:   "openQuestions",
		Type:    scoring.TypeOpenQuestion,
		Extract: ExtractKeywords,
	},
}

var defaultRules = map[string]map[string]rules.Rule{
	"introduction": {
		"productDescription": {MinLength: 50, MaxLength: 600, RequiredElements: []string{"what", "who"}, QualityThreshold: 65},
		"problemStatement":   {MinLength: 40, MaxLength: 500, RequiredElements: []string{"problem"}, QualityThreshold: 60},
	},
	"goals": {
		"businessObjectives": {MinLength: 30, MaxLength: 500, RequiredElements: []string{"target"}, QualityThreshold: 60},
		"successMetrics":     {MinLength: 20, MaxLength: 400, RequiredElements: []string{"metric"}, QualityThreshold: 60},
	},
	"audience": {
		"targetAudience":  {MinLength: 30, MaxLength: 500, RequiredElements: []string{"who"}, QualityThreshold: 60},
		"keyDemographics": {MinLength: 15, MaxLength: 400},
	},
	"userStories": {
		"userStories": {MinLength: 40, MaxLength: 800, RequiredElements: []string{"who", "why"}, QualityThreshold: 60},
	},
	"requirements": {
		"functionalRequirements": {MinLength: 40, MaxLength: 800, QualityThreshold: 55},
		"technicalConstraints":   {MinLength: 10, MaxLength: 500},
	},
	"metrics": {
		"successMetrics":     {MinLength: 20, MaxLength: 400, RequiredElements: []string{"metric", "target"}, QualityThreshold: 60},
		"measurementCadence": {MinLength: 10, MaxLength: 300, RequiredElements: []string{"timeframe"}},
	},
	"questions": {
		"openQuestions": {MinLength: 10, MaxLength: 600},
	},
}

var defaultTitles = map[SectionID]string{
	SectionIntroduction: "Introduction",
	SectionGoals:        "Goals & Objectives",
	SectionAudience:     "Target Audience",
	SectionUserStories:  "User Stories",
	SectionRequirements: "Requirements",
	SectionMetrics:      "Success Metrics",
	SectionQuestions:    "Open Questions",
}

var defaultHeadings = map[SectionID]map[string]string{
	SectionIntroduction: {
		"productDescription": "Product Description",
		"problemStatement":   "Problem Statement",
	},
	SectionGoals: {
		"businessObjectives": "Business Objectives",
		"successMetrics":     "Success Criteria",
	},
	SectionAudience: {
		"targetAudience":  "Primary Audience",
		"keyDemographics": "Key Demographics",
	},
	SectionUserStories: {
		"userStories": "Core User Stories",
	},
	SectionRequirements: {
		"functionalRequirements": "Functional Requirements",
		"technicalConstraints":   "Technical Constraints",
	},
	SectionMetrics: {
		"successMetrics":     "Metrics & Targets",
		"measurementCadence": "Measurement Cadence",
	},
	SectionQuestions: {
		"openQuestions": "Open Questions & Risks",
	},
}

var defaultFollowUps = map[SectionID][]string{
	SectionIntroduction: {
		"Can you name the specific type of user this is built for?",
		"What would someone use instead of your product today?",
	},
	SectionGoals: {
		"Which single objective matters most if you could only pick one?",
		"Is there a number that would make this launch a clear win?",
	},
	SectionAudience: {
		"How large is this audience, roughly?",
		"Are there users you are explicitly NOT building for?",
	},
	SectionUserStories: {
		"What does the user do immediately before and after this story?",
		"Which story would users miss most if you cut it?",
	},
	SectionRequirements: {
		"Which requirements are launch-blocking versus nice-to-have?",
		"Are there integrations the first version cannot ship without?",
	},
	SectionMetrics: {
		"What is the current baseline for each metric?",
		"When do you expect to hit each target?",
	},
	SectionQuestions: {
		"Who can answer each open question, and by when?",
		"Which unknown is riskiest to get wrong?",
	},
}
