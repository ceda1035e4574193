package scoring

import "regexp"

// Pattern tables for the heuristic scorer. They are plain data — the
// scoring functions iterate them without knowing what any entry means,
// so the vocabulary can grow without touching the engine.

// specificPatterns match concrete, checkable details.
var specificPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+(\.\d+)?%`),  // percentages
	regexp.MustCompile(`[$€£]\d[\d,]*`), // currency amounts
	regexp.MustCompile(`\b\d[\d,]*\b`),  // bare numbers
	regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`),
	regexp.MustCompile(`(?i)\bq[1-4]\b`), // quarter notation
	regexp.MustCompile(`(?i)\b(daily|weekly|monthly|quarterly|annually)\b`),
	regexp.MustCompile(`(?i)\b(ios|android|api|saas|sql|aws|gcp|crm|erp|sdk)\b`),
	regexp.MustCompile(`(?i)\b(github|slack|salesforce|shopify|stripe|jira|zendesk|hubspot)\b`),
	regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`), // two-word proper nouns
}

// vaguePattern matches hedge words and generic filler.
var vaguePattern = regexp.MustCompile(
	`(?i)\b(stuff|things|some|various|several|somehow|maybe|probably|very|really|a lot|etc)\b`)

// detailedPatterns signal worked examples and causal reasoning.
// Each family that matches contributes once.
var detailedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(for example|for instance|such as|e\.g\.)\b`),
	regexp.MustCompile(`(?i)\b(because|so that|which means|as a result)\b`),
	regexp.MustCompile(`(?i)\b(if|when)\s+\w+`),
	regexp.MustCompile(`"[^"]+"`),
	regexp.MustCompile(`\([^)]{3,}\)`),
}

// properNounPattern finds capitalized words that are not sentence-initial.
var properNounPattern = regexp.MustCompile(`[a-z0-9,;] ([A-Z][A-Za-z]+)`)

// offTopicPattern is a crude topic-drift signal: leisure vocabulary that
// has no business in a product requirements answer.
var offTopicPattern = regexp.MustCompile(
	`(?i)\b(pizza|weather|movie|movies|game|games|vacation|weekend|lunch|dinner|coffee|football|netflix|party)\b`)

// conceptPatterns is the fixed concept vocabulary used by the
// completeness scorer: product nouns, user nouns, problem nouns,
// capability verbs, business nouns. Coverage is counted in distinct
// groups, not raw matches.
var conceptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(product|platform|app|application|system|tool|service|website)\b`),
	regexp.MustCompile(`(?i)\b(user|users|customer|customers|team|teams|manager|managers|engineer|engineers|client|clients|audience|people)\b`),
	regexp.MustCompile(`(?i)\b(problem|problems|issue|issues|challenge|pain|struggle|lose|loses|waste|wastes|friction)\b`),
	regexp.MustCompile(`(?i)\b(track|tracks|plan|plans|manage|manages|automate|automates|integrate|integrates|sync|syncs|build|builds|create|creates|pull|pulls|send|sends)\b`),
	regexp.MustCompile(`(?i)\b(revenue|growth|market|pilot|conversion|retention|sprint|sprints|delivery|productivity|business)\b`),
}

// structuralPatterns reward visible organization. Each family that
// matches contributes once.
var structuralPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*[-*•] `),   // bullet lists
	regexp.MustCompile(`(?m)^\s*\d+[.)] `), // numbered lists
	regexp.MustCompile(`\n\n`),             // paragraph breaks
	regexp.MustCompile(`(?i)\b(first|second|then|next|finally|additionally|also|therefore|however|because)\b`),
	regexp.MustCompile(`: `), // inline colons
}

var (
	connectorPattern = regexp.MustCompile(
		`(?i)\b(because|therefore|however|so that|which means|first|then|finally|additionally|also)\b`)
	explanatoryPattern = regexp.MustCompile(
		`(?i)\b(that is|in other words|specifically|for example|in short)\b`)
	informalPattern = regexp.MustCompile(
		`(?i)\b(gonna|wanna|kinda|sorta|dunno|lol|omg|btw|idk|nope)\b`)
	sentenceTerminator = regexp.MustCompile(`[.!?]`)
	sentenceSplitter   = regexp.MustCompile(`[.!?]+`)
)

// compileWords turns a keyword list into whole-word case-insensitive matchers.
func compileWords(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return patterns
}

// relevanceKeywords lists on-topic vocabulary per question type.
var relevanceKeywords = map[QuestionType][]*regexp.Regexp{
	TypeProductDescription: compileWords([]string{
		"product", "platform", "app", "tool", "feature", "help", "helps",
		"solve", "solves", "user", "users", "team", "teams", "customer", "customers"}),
	TypeProblemStatement: compileWords([]string{
		"problem", "pain", "challenge", "struggle", "issue", "frustration",
		"currently", "today", "manual", "workaround"}),
	TypeBusinessObjectives: compileWords([]string{
		"revenue", "growth", "objective", "objectives", "goal", "goals",
		"increase", "reduce", "market", "cost", "retention", "acquisition"}),
	TypeTargetAudience: compileWords([]string{
		"user", "users", "customer", "customers", "persona", "personas",
		"demographic", "segment", "age", "role", "industry", "company"}),
	TypeUserStory: compileWords([]string{
		"as a", "i want", "so that", "user", "scenario", "flow", "journey", "task"}),
	TypeRequirementsList: compileWords([]string{
		"must", "should", "require", "requires", "support", "supports",
		"feature", "integrate", "api", "secure", "performance"}),
	TypeSuccessMetrics: compileWords([]string{
		"metric", "metrics", "kpi", "measure", "target", "rate",
		"conversion", "retention", "baseline", "percent"}),
	TypeOpenQuestion: compileWords([]string{
		"question", "unknown", "risk", "assumption", "depend", "depends",
		"decide", "unclear", "investigate"}),
	TypeDefault: compileWords([]string{
		"product", "user", "users", "goal", "problem", "feature"}),
}

// sectionKeywords lists on-topic vocabulary per questionnaire section.
var sectionKeywords = map[string][]*regexp.Regexp{
	"introduction": compileWords([]string{"product", "platform", "idea", "overview", "vision", "solve"}),
	"goals":        compileWords([]string{"goal", "goals", "objective", "objectives", "outcome", "achieve", "success"}),
	"audience":     compileWords([]string{"user", "users", "customer", "customers", "persona", "market", "segment"}),
	"userStories":  compileWords([]string{"story", "stories", "user", "want", "need", "scenario"}),
	"requirements": compileWords([]string{"requirement", "requirements", "must", "should", "feature", "constraint"}),
	"metrics":      compileWords([]string{"metric", "metrics", "measure", "kpi", "target", "track"}),
	"questions":    compileWords([]string{"question", "questions", "risk", "assumption", "unknown", "open"}),
}

// implicitAnswerPatterns detect that the question behind a field was
// actually answered, even without keyword overlap.
var implicitAnswerPatterns = map[QuestionType][]*regexp.Regexp{
	TypeProductDescription: {
		regexp.MustCompile(`(?i)\b(is an?|helps|enables|allows|provides)\b`),
	},
	TypeProblemStatement: {
		regexp.MustCompile(`(?i)\b(problem is|struggle|currently|today|have to)\b`),
	},
	TypeBusinessObjectives: {
		regexp.MustCompile(`(?i)\b(aim to|objective is|increase|reduce|grow)\b`),
	},
	TypeTargetAudience: {
		regexp.MustCompile(`(?i)\b(aged|ages|professionals|teams of|companies)\b`),
	},
	TypeUserStory: {
		regexp.MustCompile(`(?i)\bas an? .{2,60}, i want\b`),
	},
	TypeRequirementsList: {
		regexp.MustCompile(`(?i)\b(must|should|shall)\b`),
	},
	TypeSuccessMetrics: {
		regexp.MustCompile(`\d+(\.\d+)?%`),
		regexp.MustCompile(`(?i)\b(baseline|target of|per (day|week|month))\b`),
	},
	TypeOpenQuestion: {
		regexp.MustCompile(`\?`),
	},
}
