// Package scoring computes 0-100 quality scores for free-text interview
// answers along four weighted dimensions: completeness, specificity,
// relevance, and clarity. The scorer is pure regex heuristics over
// in-memory text — no I/O, no model calls — and every function accepts
// any string (including empty) without panicking.
package scoring

import (
	"math"
	"strings"
)

// Context carries the question type and owning section so the relevance
// scorer can pick its keyword tables. Section may be empty.
type Context struct {
	QuestionType QuestionType
	Section      string
}

// Breakdown holds the four sub-scores, the blended overall score, and
// the weight row that produced it.
type Breakdown struct {
	Overall      int     `json:"overall"`
	Completeness int     `json:"completeness"`
	Specificity  int     `json:"specificity"`
	Relevance    int     `json:"relevance"`
	Clarity      int     `json:"clarity"`
	Weights      Weights `json:"weights"`
}

// Score returns the weighted overall quality score for a text.
func Score(text string, ctx Context) int {
	return ScoreBreakdown(text, ctx).Overall
}

// ScoreBreakdown computes all four sub-scores and their weighted blend.
func ScoreBreakdown(text string, ctx Context) Breakdown {
	w := WeightsFor(ctx.QuestionType)
	b := Breakdown{
		Completeness: ScoreCompleteness(text),
		Specificity:  ScoreSpecificity(text),
		Relevance:    ScoreRelevance(text, ctx),
		Clarity:      ScoreClarity(text),
		Weights:      w,
	}

	overall := w.Completeness*float64(b.Completeness) +
		w.Specificity*float64(b.Specificity) +
		w.Relevance*float64(b.Relevance) +
		w.Clarity*float64(b.Clarity)
	b.Overall = clampScore(int(math.Round(overall)))

	return b
}

// ScoreCompleteness rewards length, word count, sentence count, and
// coverage of the concept vocabulary, each in coarse buckets.
func ScoreCompleteness(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	score := bucket(len(text), []threshold{{200, 40}, {100, 30}, {50, 20}, {20, 10}})
	score += bucket(wordCount(text), []threshold{{50, 20}, {25, 15}, {10, 10}})
	score += bucket(sentenceCount(text), []threshold{{5, 20}, {3, 15}, {2, 10}})

	groups := 0
	for _, p := range conceptPatterns {
		if p.MatchString(text) {
			groups++
		}
	}
	score += bucket(groups, []threshold{{5, 20}, {3, 15}, {2, 10}})

	return clampScore(score)
}

// ScoreSpecificity rewards concrete details (numbers, dates, named
// platforms) and worked examples, and penalizes hedge words.
func ScoreSpecificity(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	score := 30

	bonus := 0
	for _, p := range specificPatterns {
		bonus += 5 * len(p.FindAllString(text, -1))
	}
	score += min(bonus, 40)

	score -= 3 * len(vaguePattern.FindAllString(text, -1))

	detail := 0
	for _, p := range detailedPatterns {
		if p.MatchString(text) {
			detail += 5
		}
	}
	score += min(detail, 20)

	score += min(2*len(properNounPattern.FindAllString(text, -1)), 10)

	return clampScore(score)
}

// ScoreRelevance rewards question-type and section vocabulary, detects
// implicitly answered questions, and penalizes off-topic drift.
func ScoreRelevance(text string, ctx Context) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	score := 50

	keywords, ok := relevanceKeywords[ctx.QuestionType]
	if !ok {
		keywords = relevanceKeywords[TypeDefault]
	}
	hits := 0
	for _, p := range keywords {
		if p.MatchString(text) {
			hits += 5
		}
	}
	score += min(hits, 30)

	for _, p := range sectionKeywords[ctx.Section] {
		if p.MatchString(text) {
			score += 3
		}
	}

	score -= 15 * len(offTopicPattern.FindAllString(text, -1))

	for _, p := range implicitAnswerPatterns[ctx.QuestionType] {
		if p.MatchString(text) {
			score += 15
			break
		}
	}

	return clampScore(score)
}

// ScoreClarity rewards visible structure, connective tissue, and
// readable sentence lengths; it penalizes informal phrasing and
// run-on sentences.
func ScoreClarity(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	score := 40

	structural := 0
	for _, p := range structuralPatterns {
		if p.MatchString(text) {
			structural += 5
		}
	}
	score += min(structural, 25)

	markers := 0
	if connectorPattern.MatchString(text) {
		markers += 5
	}
	if explanatoryPattern.MatchString(text) {
		markers += 5
	}
	words := wordCount(text)
	if terms := len(sentenceTerminator.FindAllString(text, -1)); terms > 0 && words/terms <= 30 {
		markers += 10
	}
	score += min(markers, 20)

	if sentences := sentenceCount(text); sentences > 0 {
		avg := words / sentences
		switch {
		case avg >= 15 && avg <= 25:
			score += 10
		case avg >= 10 && avg <= 30:
			score += 5
		}
	}

	if strings.Contains(text, "\n\n") {
		score += 5
	}

	score -= 2 * len(informalPattern.FindAllString(text, -1))

	for _, frag := range sentenceSplitter.Split(text, -1) {
		if len(strings.Fields(frag)) > 40 {
			score -= 5
		}
	}

	return clampScore(score)
}

// --- helpers ---

type threshold struct {
	at    int
	score int
}

// bucket returns the score of the highest threshold the value reaches.
func bucket(value int, thresholds []threshold) int {
	for _, t := range thresholds {
		if value >= t.at {
			return t.score
		}
	}
	return 0
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func sentenceCount(text string) int {
	count := 0
	for _, frag := range sentenceSplitter.Split(text, -1) {
		if strings.TrimSpace(frag) != "" {
			count++
		}
	}
	return count
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
