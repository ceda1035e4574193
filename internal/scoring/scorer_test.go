package scoring

import (
	"math"
	"strings"
	"testing"
)

const richDescription = "TaskFlow is a project management platform that helps engineering teams plan sprints and track delivery.\n\n" +
	"Teams currently lose 30% of their week to status meetings, because updates live in five separate tools. " +
	"TaskFlow pulls updates from GitHub and from Slack automatically, so managers see progress in real time: no chasing, no spreadsheets. " +
	"For example, a pilot group of 12 engineers saved 6 hours per week, and sprint predictability improved from 61% to 88%."

const vagueDescription = "An app that does stuff for people who want things."

// --- Weights ---

func TestWeights_SumToOne(t *testing.T) {
	for _, qt := range QuestionTypes() {
		t.Run(string(qt), func(t *testing.T) {
			w := WeightsFor(qt)
			sum := w.Completeness + w.Specificity + w.Relevance + w.Clarity
			if math.Abs(sum-1.0) > 0.001 {
				t.Errorf("weights for %s sum to %f, want 1.0", qt, sum)
			}
		})
	}
}

func TestWeightsFor_UnknownTypeFallsBack(t *testing.T) {
	got := WeightsFor(QuestionType("bogus"))
	if got != weightTable[TypeDefault] {
		t.Errorf("unknown type should use default weights, got %+v", got)
	}
}

// --- Range invariants ---

func TestSubScorers_AlwaysInRange(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"x",
		vagueDescription,
		richDescription,
		strings.Repeat("A very long answer with 99% numbers and $400 budgets, daily. ", 200),
		"no punctuation at all just words drifting on and on",
	}
	ctx := Context{QuestionType: TypeProductDescription, Section: "introduction"}

	for _, input := range inputs {
		scores := map[string]int{
			"completeness": ScoreCompleteness(input),
			"specificity":  ScoreSpecificity(input),
			"relevance":    ScoreRelevance(input, ctx),
			"clarity":      ScoreClarity(input),
			"overall":      Score(input, ctx),
		}
		for name, s := range scores {
			if s < 0 || s > 100 {
				t.Errorf("%s(%.20q...) = %d, want 0-100", name, input, s)
			}
		}
	}
}

func TestSubScorers_EmptyInputScoresZero(t *testing.T) {
	ctx := Context{QuestionType: TypeDefault}
	if got := ScoreCompleteness(""); got != 0 {
		t.Errorf("ScoreCompleteness(empty) = %d, want 0", got)
	}
	if got := ScoreSpecificity(""); got != 0 {
		t.Errorf("ScoreSpecificity(empty) = %d, want 0", got)
	}
	if got := ScoreRelevance("", ctx); got != 0 {
		t.Errorf("ScoreRelevance(empty) = %d, want 0", got)
	}
	if got := ScoreClarity(""); got != 0 {
		t.Errorf("ScoreClarity(empty) = %d, want 0", got)
	}
	if got := Score("", ctx); got != 0 {
		t.Errorf("Score(empty) = %d, want 0", got)
	}
}

// --- Calibration ---

func TestScore_RichProductDescription(t *testing.T) {
	got := Score(richDescription, Context{QuestionType: TypeProductDescription, Section: "introduction"})
	if got <= 85 {
		t.Errorf("rich product description scored %d, want > 85", got)
	}
}

func TestScore_VagueProductDescription(t *testing.T) {
	got := Score(vagueDescription, Context{QuestionType: TypeProductDescription, Section: "introduction"})
	if got >= 50 {
		t.Errorf("vague product description scored %d, want < 50", got)
	}
}

func TestScore_RichBeatsVague(t *testing.T) {
	ctx := Context{QuestionType: TypeProductDescription, Section: "introduction"}
	rich := Score(richDescription, ctx)
	vague := Score(vagueDescription, ctx)
	if rich <= vague {
		t.Errorf("rich (%d) should outscore vague (%d)", rich, vague)
	}
}

// --- Relevance ---

func TestScoreRelevance_OffTopicBelow25EverySection(t *testing.T) {
	offTopic := "I like pizza and the weather is nice today."
	sections := []string{
		"introduction", "goals", "audience", "userStories",
		"requirements", "metrics", "questions", "",
	}

	for _, section := range sections {
		got := ScoreRelevance(offTopic, Context{QuestionType: TypeDefault, Section: section})
		if got >= 25 {
			t.Errorf("off-topic relevance in section %q = %d, want < 25", section, got)
		}
	}
}

func TestScoreRelevance_ImplicitUserStoryAnswer(t *testing.T) {
	story := "As a clinic manager, I want automated reminders before appointments."
	withImplicit := ScoreRelevance(story, Context{QuestionType: TypeUserStory, Section: "userStories"})
	without := ScoreRelevance("Reminders would help before appointments.", Context{QuestionType: TypeUserStory, Section: "userStories"})
	if withImplicit <= without {
		t.Errorf("implicit story form %d should outscore plain form %d", withImplicit, without)
	}
}

func TestScoreRelevance_KeywordBonusCapped(t *testing.T) {
	// Every productDescription keyword present: bonus must cap, not runaway.
	text := "product platform app tool feature help helps solve solves user users team teams customer customers"
	got := ScoreRelevance(text, Context{QuestionType: TypeProductDescription})
	if got > 95 {
		t.Errorf("keyword-stuffed relevance = %d, cap should hold it at or below 95", got)
	}
}

// --- Specificity ---

func TestScoreSpecificity_VaguePenalty(t *testing.T) {
	vague := ScoreSpecificity("Maybe it does some stuff and things, probably.")
	plain := ScoreSpecificity("It schedules appointments for clinics.")
	if vague >= plain {
		t.Errorf("hedged text %d should score below plain text %d", vague, plain)
	}
}

func TestScoreSpecificity_NumbersAndPlatforms(t *testing.T) {
	specific := ScoreSpecificity("Syncs 500 records to Salesforce daily, saving $1,200 per month across 3 teams in Q1.")
	if specific < 60 {
		t.Errorf("number-heavy text = %d, want >= 60", specific)
	}
}

// --- Clarity ---

func TestScoreClarity_StructuredTextScoresHigher(t *testing.T) {
	structured := "The rollout has three phases.\n\n" +
		"1. Pilot with one clinic team.\n" +
		"2. Expand to the region, because feedback shapes the defaults.\n" +
		"3. Finally, open self-serve signup."
	flat := "rollout pilot expand open signup feedback defaults region clinic"

	if ScoreClarity(structured) <= ScoreClarity(flat) {
		t.Errorf("structured %d should outscore flat %d",
			ScoreClarity(structured), ScoreClarity(flat))
	}
}

func TestScoreClarity_RunOnSentencePenalty(t *testing.T) {
	runOn := strings.Repeat("word ", 60) + "."
	normal := "Short sentence one. Short sentence two follows it here."
	if ScoreClarity(runOn) >= ScoreClarity(normal) {
		t.Errorf("run-on %d should score below normal %d",
			ScoreClarity(runOn), ScoreClarity(normal))
	}
}

// --- Breakdown ---

func TestScoreBreakdown_PopulatesAllFields(t *testing.T) {
	b := ScoreBreakdown(richDescription, Context{QuestionType: TypeProductDescription, Section: "introduction"})

	if b.Overall == 0 {
		t.Error("overall should be non-zero for rich text")
	}
	if b.Completeness == 0 || b.Specificity == 0 || b.Relevance == 0 || b.Clarity == 0 {
		t.Errorf("all sub-scores should be non-zero, got %+v", b)
	}
	if b.Weights != WeightsFor(TypeProductDescription) {
		t.Errorf("breakdown weights = %+v, want productDescription row", b.Weights)
	}
}

func TestScoreBreakdown_OverallMatchesWeightedBlend(t *testing.T) {
	ctx := Context{QuestionType: TypeSuccessMetrics, Section: "metrics"}
	b := ScoreBreakdown("Raise activation from 22% to 35% by March, measured weekly.", ctx)

	w := b.Weights
	want := int(math.Round(
		w.Completeness*float64(b.Completeness) +
			w.Specificity*float64(b.Specificity) +
			w.Relevance*float64(b.Relevance) +
			w.Clarity*float64(b.Clarity)))
	if b.Overall != want {
		t.Errorf("Overall = %d, want %d", b.Overall, want)
	}
}
