package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prdpilot/prdpilot/internal/conversation"
	"github.com/prdpilot/prdpilot/internal/questions"
	"github.com/prdpilot/prdpilot/internal/rules"
	"github.com/prdpilot/prdpilot/internal/session"
)

// StatusTool handles the prd_status MCP tool.
type StatusTool struct {
	store     Store
	registry  *questions.Registry
	validator *rules.Validator
}

// NewStatusTool creates a StatusTool with its dependencies.
func NewStatusTool(store Store, registry *questions.Registry, validator *rules.Validator) *StatusTool {
	return &StatusTool{store: store, registry: registry, validator: validator}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_status",
		mcp.WithDescription(
			"Show a session's progress: completed sections, the active section "+
				"and its unanswered questions, and overall completion percentage. "+
				"Without a session_id, lists recent sessions instead.",
		),
		mcp.WithString("session_id",
			mcp.Description("Session to inspect. Omit to list recent sessions."),
		),
	)
}

// Handle processes the prd_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return t.listSessions()
	}

	record, err := t.store.Get(sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("session %q not found", sessionID)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session header: %w", err)
	}

	state, err := t.store.LoadState(sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session state: %w", err)
	}

	orch := conversation.New(t.validator, t.registry, state)

	var b strings.Builder
	title := record.Name
	if title == "" {
		title = record.ID
	}
	fmt.Fprintf(&b, "# PRD Status: %s\n\n", title)
	writeProgress(&b, orch.Progress())
	fmt.Fprintf(&b, "**Answers recorded:** %d\n\n", state.Metadata.AnswerCount)

	b.WriteString("## Sections\n\n")
	for _, sec := range questions.SectionOrder() {
		marker := "○"
		note := ""
		switch {
		case state.IsCompleted(sec):
			marker = "✓"
		case sec == state.CurrentSection:
			marker = "→"
			note = " (active)"
		}
		answered := len(state.Responses[sec])
		total := len(t.registry.QuestionsFor(sec))
		fmt.Fprintf(&b, "- %s **%s**%s — %d/%d answered\n",
			marker, t.registry.Title(sec), note, answered, total)
	}

	if state.CurrentSection != "" {
		pending, _ := orch.PendingQuestions(state.CurrentSection, previousResponses(state))
		if len(pending) > 0 {
			fmt.Fprintf(&b, "\n## Still Open in %s\n\n", t.registry.Title(state.CurrentSection))
			writeQuestions(&b, pending)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (t *StatusTool) listSessions() (*mcp.CallToolResult, error) {
	records, err := t.store.List(false, 10)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No sessions yet. Start one with prd_start."), nil
	}

	var b strings.Builder
	b.WriteString("# Recent Sessions\n\n")
	for _, r := range records {
		name := r.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "- `%s` — %s, %d answers, updated %s\n",
			r.ID, name, r.AnswerCount, r.UpdatedAt)
	}
	b.WriteString("\nPass a session_id to see its full status.")
	return mcp.NewToolResultText(b.String()), nil
}
