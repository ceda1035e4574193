// Package conversation owns the per-session interview state machine: it
// stores answers and attempt counters, calls the rule validator and the
// quality scorer on each inbound answer, and decides the next
// conversational action. All state lives in memory; the caller is
// responsible for serializing messages per session and for persistence.
package conversation

import "github.com/prdpilot/prdpilot/internal/questions"

// NextAction is the tagged next-step decision returned after each answer.
type NextAction string

const (
	ActionContinue        NextAction = "continue"
	ActionFollowUp        NextAction = "followup"
	ActionCompleteSection NextAction = "complete_section"
)

// Message roles, matching the transport's vocabulary.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the conversation history handed to
// CompressConversation. Section is empty for untagged messages.
type Message struct {
	Role      string              `json:"role"`
	Content   string              `json:"content"`
	Section   questions.SectionID `json:"section,omitempty"`
	Summary   bool                `json:"summary,omitempty"`
	CreatedAt string              `json:"created_at,omitempty"`
}

// SessionMetadata tracks counters and timestamps for one session.
type SessionMetadata struct {
	SessionID    string `json:"session_id"`
	StartedAt    string `json:"started_at"`
	UpdatedAt    string `json:"updated_at"`
	AnswerCount  int    `json:"answer_count"`
	MessageCount int    `json:"message_count"`
}

// State is the explicit conversational state record for one session.
// The orchestrator is its sole owner and mutator; two sessions never
// share a State.
type State struct {
	CurrentSection    questions.SectionID                       `json:"current_section"`
	Responses         map[questions.SectionID]map[string]string `json:"responses"`
	AttemptCounts     map[questions.SectionID]map[string]int    `json:"attempt_counts"`
	CompletedSections []questions.SectionID                     `json:"completed_sections"`
	Metadata          SessionMetadata                           `json:"metadata"`
}

// NewState creates an empty State for a session.
func NewState(sessionID string) *State {
	now := timeNow().UTC().Format(timeLayout)
	return &State{
		Responses:     make(map[questions.SectionID]map[string]string),
		AttemptCounts: make(map[questions.SectionID]map[string]int),
		Metadata: SessionMetadata{
			SessionID: sessionID,
			StartedAt: now,
			UpdatedAt: now,
		},
	}
}

// ensureSection seeds the response and attempt buckets for a section.
func (s *State) ensureSection(section questions.SectionID) {
	if s.Responses[section] == nil {
		s.Responses[section] = make(map[string]string)
	}
	if s.AttemptCounts[section] == nil {
		s.AttemptCounts[section] = make(map[string]int)
	}
}

// setResponse stores an answer. Last write wins; there is no merging.
func (s *State) setResponse(section questions.SectionID, field, answer string) {
	s.ensureSection(section)
	s.Responses[section][field] = answer
}

// incrementAttempt bumps a field's attempt counter and returns the new
// value. Counters only ever increase.
func (s *State) incrementAttempt(section questions.SectionID, field string) int {
	s.ensureSection(section)
	s.AttemptCounts[section][field]++
	return s.AttemptCounts[section][field]
}

// Attempts returns the attempt count for a field.
func (s *State) Attempts(section questions.SectionID, field string) int {
	return s.AttemptCounts[section][field]
}

// IsCompleted reports whether a section has been marked complete.
func (s *State) IsCompleted(section questions.SectionID) bool {
	for _, c := range s.CompletedSections {
		if c == section {
			return true
		}
	}
	return false
}

// touch refreshes the updated-at timestamp.
func (s *State) touch() {
	s.Metadata.UpdatedAt = timeNow().UTC().Format(timeLayout)
}

// copyResponses returns a defensive copy of one section's answers.
func copyResponses(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
