// Package tools implements the MCP tool handlers for the PRD
// questionnaire.
//
// Each tool is a struct that receives its dependencies at construction
// and exposes Definition() for registration plus Handle() for calls.
// Bad input comes back as a tool-result error the model can react to;
// storage and rendering failures are Go errors that surface as system
// faults.
package tools

import (
	"fmt"
	"strings"

	"github.com/prdpilot/prdpilot/internal/conversation"
	"github.com/prdpilot/prdpilot/internal/questions"
	"github.com/prdpilot/prdpilot/internal/rules"
	"github.com/prdpilot/prdpilot/internal/session"
)

// Store is the session persistence surface the tools need. Satisfied by
// session.CachedStore.
type Store interface {
	Create(id, name string) error
	Get(id string) (*session.Record, error)
	List(includeArchived bool, limit int) ([]session.Record, error)
	Archive(id string) error
	LoadState(id string) (*conversation.State, error)
	SaveState(id string, state *conversation.State) error
	AppendMessage(id string, msg conversation.Message) error
	Messages(id string) ([]conversation.Message, error)
	ReplaceMessages(id string, messages []conversation.Message) error
}

// parseSection validates a section argument.
func parseSection(raw string) (questions.SectionID, error) {
	section := questions.SectionID(raw)
	if !questions.ValidSection(section) {
		return "", fmt.Errorf("unknown section %q; valid sections: %s",
			raw, strings.Join(sectionNames(), ", "))
	}
	return section, nil
}

func sectionNames() []string {
	order := questions.SectionOrder()
	names := make([]string, len(order))
	for i, s := range order {
		names[i] = string(s)
	}
	return names
}

// nextPendingSection returns the first section, in interview order, that
// has not been completed. ok is false when everything is done.
func nextPendingSection(state *conversation.State) (questions.SectionID, bool) {
	for _, section := range questions.SectionOrder() {
		if !state.IsCompleted(section) {
			return section, true
		}
	}
	return "", false
}

// completedSet converts the state's completed list into a lookup map.
func completedSet(state *conversation.State) map[questions.SectionID]bool {
	out := make(map[questions.SectionID]bool, len(state.CompletedSections))
	for _, s := range state.CompletedSections {
		out[s] = true
	}
	return out
}

// previousResponses collects the answers of completed sections for
// carry-forward into a newly opened section.
func previousResponses(state *conversation.State) map[questions.SectionID]map[string]string {
	out := make(map[questions.SectionID]map[string]string, len(state.CompletedSections))
	for _, section := range state.CompletedSections {
		out[section] = state.Responses[section]
	}
	return out
}

// ─── Markdown rendering ──────────────────────────────────────────────────────

func writeProgress(b *strings.Builder, p conversation.Progress) {
	fmt.Fprintf(b, "**Progress:** %d%% (%d of %d sections complete",
		p.PercentComplete, p.CompletedSections, p.TotalSections)
	if p.ActiveSection {
		b.WriteString(", one in progress")
	}
	b.WriteString(")\n")
}

func writeQuestions(b *strings.Builder, specs []questions.Spec) {
	for i, q := range specs {
		fmt.Fprintf(b, "%d. %s\n   _(field: `%s`)_\n", i+1, q.Prompt, q.Field)
	}
}

func writeValidation(b *strings.Builder, result rules.Result) {
	if result.Passed {
		fmt.Fprintf(b, "**Validation:** passed (score %d/100)\n", result.Score)
	} else {
		fmt.Fprintf(b, "**Validation:** needs work (score %d/100)\n", result.Score)
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(b, "- ⚠ %s\n", issue)
	}
	for _, s := range result.Suggestions {
		fmt.Fprintf(b, "- 💡 %s\n", s)
	}
}
