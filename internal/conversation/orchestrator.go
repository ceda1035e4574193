package conversation

import (
	"fmt"

	"github.com/prdpilot/prdpilot/internal/questions"
	"github.com/prdpilot/prdpilot/internal/rules"
	"github.com/prdpilot/prdpilot/internal/scoring"
)

const (
	// followUpScoreFloor: a passing answer below this validation score
	// still triggers a follow-up request.
	followUpScoreFloor = 75
	// maxFieldAttempts caps follow-ups: a field is re-asked at most once,
	// after which the flow proceeds and the low score is surfaced for
	// manual override.
	maxFieldAttempts = 2
)

// Orchestrator drives one session's interview. It is not safe for
// concurrent use; the caller serializes messages per session.
type Orchestrator struct {
	validator *rules.Validator
	registry  *questions.Registry
	state     *State
}

// New creates an Orchestrator around an existing State (possibly
// rehydrated from storage).
func New(validator *rules.Validator, registry *questions.Registry, state *State) *Orchestrator {
	return &Orchestrator{validator: validator, registry: registry, state: state}
}

// State exposes the mutable session state for persistence by the caller.
func (o *Orchestrator) State() *State {
	return o.state
}

// Snapshot is the context bundle handed back to the caller after each
// exchange: prior-section answers, current answers, and progress.
type Snapshot struct {
	PreviousSections map[questions.SectionID]map[string]string `json:"previous_sections"`
	CurrentResponses map[string]string                         `json:"current_responses"`
	Metadata         SessionMetadata                           `json:"session_metadata"`
	Progress         Progress                                  `json:"progress"`
}

// InitResult is the outcome of entering a section.
type InitResult struct {
	Questions []questions.Spec  `json:"questions"`
	Carried   map[string]string `json:"carried,omitempty"`
	Context   Snapshot          `json:"context"`
	Progress  Progress          `json:"progress"`
}

// Exchange is the outcome of processing one answer.
type Exchange struct {
	Validation      rules.Result        `json:"validation"`
	Quality         scoring.Breakdown   `json:"quality"`
	ExtractedData   map[string][]string `json:"extracted_data,omitempty"`
	SectionComplete bool                `json:"section_complete"`
	NextAction      NextAction          `json:"next_action"`
	Context         Snapshot            `json:"context"`
	Attempts        int                 `json:"attempts"`
	FollowUpPrompts []string            `json:"follow_up_prompts,omitempty"`
}

// PendingQuestions computes, without mutating state, which of a
// section's questions still need asking given previously answered
// sections, plus the answers that can be carried forward because an
// earlier section already answered a field with the same name.
func (o *Orchestrator) PendingQuestions(
	section questions.SectionID,
	previous map[questions.SectionID]map[string]string,
) (pending []questions.Spec, carried map[string]string) {
	carried = make(map[string]string)

	for _, spec := range o.registry.QuestionsFor(section) {
		if answer, ok := o.state.Responses[section][spec.Field]; ok && answer != "" {
			continue // already answered in this section
		}

		carriedAnswer := ""
		for _, prevSection := range questions.SectionOrder() {
			if prevSection == section {
				break
			}
			if answer, ok := previous[prevSection][spec.Field]; ok && answer != "" {
				carriedAnswer = answer
			}
		}
		if carriedAnswer != "" {
			carried[spec.Field] = carriedAnswer
			continue
		}

		pending = append(pending, spec)
	}

	return pending, carried
}

// InitializeSection enters a section: it seeds the response bucket,
// applies cross-section answer carry-forward, marks the section active,
// and returns the questions that still need asking.
func (o *Orchestrator) InitializeSection(
	section questions.SectionID,
	previous map[questions.SectionID]map[string]string,
) (*InitResult, error) {
	if !questions.ValidSection(section) {
		return nil, fmt.Errorf("unknown section %q", section)
	}

	o.state.ensureSection(section)
	pending, carried := o.PendingQuestions(section, previous)
	for field, answer := range carried {
		o.state.setResponse(section, field, answer)
	}

	o.state.CurrentSection = section
	o.state.touch()

	return &InitResult{
		Questions: pending,
		Carried:   carried,
		Context:   o.Snapshot(),
		Progress:  o.Progress(),
	}, nil
}

// ProcessAnswer handles one user answer: stores it, validates it, scores
// it, and decides the next conversational action.
func (o *Orchestrator) ProcessAnswer(answer string, section questions.SectionID, field string) (*Exchange, error) {
	if answer == "" {
		return nil, fmt.Errorf("answer must be a non-empty string")
	}
	if !questions.ValidSection(section) {
		return nil, fmt.Errorf("unknown section %q", section)
	}
	spec, ok := o.registry.Lookup(section, field)
	if !ok {
		return nil, fmt.Errorf("field %q is not part of section %q", field, section)
	}

	attempts := o.state.incrementAttempt(section, field)
	o.state.setResponse(section, field, answer)
	o.state.Metadata.AnswerCount++
	o.state.touch()

	var validation rules.Result
	if rule, ok := o.registry.RuleFor(section, field); ok {
		validation = o.validator.ValidateField(answer, rule)
	} else {
		// No rule configured: auto-pass.
		validation = rules.Result{Passed: true, Score: 100}
	}

	quality := scoring.ScoreBreakdown(answer, scoring.Context{
		QuestionType: spec.Type,
		Section:      string(section),
	})

	wantFollowUp := !validation.Passed || validation.Score < followUpScoreFloor
	sectionComplete := o.CanProceed(section)

	action := ActionContinue
	switch {
	case wantFollowUp && attempts < maxFieldAttempts:
		action = ActionFollowUp
	case sectionComplete:
		action = ActionCompleteSection
	}

	exchange := &Exchange{
		Validation:      validation,
		Quality:         quality,
		ExtractedData:   extractData(spec.Extract, answer),
		SectionComplete: sectionComplete,
		NextAction:      action,
		Context:         o.Snapshot(),
		Attempts:        attempts,
	}
	if wantFollowUp {
		exchange.FollowUpPrompts = o.registry.FollowUpsFor(section)
	}

	return exchange, nil
}

// CanProceed reports whether a section has every rule-bearing field
// answered and individually passing.
func (o *Orchestrator) CanProceed(section questions.SectionID) bool {
	return o.SectionValidation(section).Overall
}

// SectionValidation validates all stored answers in a section.
func (o *Orchestrator) SectionValidation(section questions.SectionID) rules.SectionResult {
	return o.validator.ValidateSection(string(section), o.state.Responses[section])
}

// CompleteSection marks a section complete. The transition is
// caller-triggered and idempotent: it does not re-run validation, and a
// completed section is never demoted. If the section was active, the
// active-section pointer is cleared.
func (o *Orchestrator) CompleteSection(section questions.SectionID) error {
	if !questions.ValidSection(section) {
		return fmt.Errorf("unknown section %q", section)
	}

	if !o.state.IsCompleted(section) {
		o.state.CompletedSections = append(o.state.CompletedSections, section)
	}
	if o.state.CurrentSection == section {
		o.state.CurrentSection = ""
	}
	o.state.touch()

	return nil
}

// Snapshot assembles the context bundle for the caller: answers of
// completed sections, the active section's answers, metadata, progress.
func (o *Orchestrator) Snapshot() Snapshot {
	previous := make(map[questions.SectionID]map[string]string, len(o.state.CompletedSections))
	for _, section := range o.state.CompletedSections {
		previous[section] = copyResponses(o.state.Responses[section])
	}

	var current map[string]string
	if o.state.CurrentSection != "" {
		current = copyResponses(o.state.Responses[o.state.CurrentSection])
	}

	return Snapshot{
		PreviousSections: previous,
		CurrentResponses: current,
		Metadata:         o.state.Metadata,
		Progress:         o.Progress(),
	}
}
