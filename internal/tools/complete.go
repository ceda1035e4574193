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

// CompleteTool handles the prd_complete_section MCP tool. Section
// completion is an explicit call, never a side effect of an answer.
type CompleteTool struct {
	store     Store
	registry  *questions.Registry
	validator *rules.Validator
}

// NewCompleteTool creates a CompleteTool with its dependencies.
func NewCompleteTool(store Store, registry *questions.Registry, validator *rules.Validator) *CompleteTool {
	return &CompleteTool{store: store, registry: registry, validator: validator}
}

// Definition returns the MCP tool definition for registration.
func (t *CompleteTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_complete_section",
		mcp.WithDescription(
			"Mark a questionnaire section complete. Normally called when "+
				"prd_answer reports next_action 'complete_section'. Refuses if any "+
				"rule-bearing field is missing or failing, unless force is set — "+
				"use force when the user decides a low-scoring answer is good "+
				"enough. Completing a section is idempotent and never undone.",
		),
		mcp.WithString("session_id", mcp.Required(),
			mcp.Description("The session to update."),
		),
		mcp.WithString("section", mcp.Required(),
			mcp.Description("Section to complete: "+strings.Join(sectionNames(), ", ")),
		),
		mcp.WithBoolean("force",
			mcp.Description("Complete even when validation is failing."),
		),
	)
}

// Handle processes the prd_complete_section tool call.
func (t *CompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	rawSection := req.GetString("section", "")
	force := req.GetBool("force", false)

	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}
	if rawSection == "" {
		return mcp.NewToolResultError("'section' is required"), nil
	}

	section, err := parseSection(rawSection)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := t.store.LoadState(sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("session %q not found", sessionID)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	orch := conversation.New(t.validator, t.registry, state)

	if !force && !orch.CanProceed(section) {
		validation := orch.SectionValidation(section)
		var b strings.Builder
		fmt.Fprintf(&b, "Section %q is not ready to complete.\n", section)
		for _, field := range validation.MissingRequired {
			fmt.Fprintf(&b, "- missing: %s\n", field)
		}
		for _, s := range validation.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("Fix the answers above, or pass force=true to complete anyway.")
		return mcp.NewToolResultError(b.String()), nil
	}

	if err := orch.CompleteSection(section); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := t.store.SaveState(sessionID, state); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	// A summary message survives later compaction and stands in for the
	// section's full exchange history.
	if err := t.store.AppendMessage(sessionID, conversation.Message{
		Role:    conversation.RoleAssistant,
		Content: t.summarize(section, state),
		Section: section,
		Summary: true,
	}); err != nil {
		return nil, fmt.Errorf("recording summary: %w", err)
	}

	return mcp.NewToolResultText(t.render(section, force, state, orch.Progress())), nil
}

func (t *CompleteTool) summarize(section questions.SectionID, state *conversation.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Section %s completed.", t.registry.Title(section))
	for field, answer := range state.Responses[section] {
		fmt.Fprintf(&b, " %s: %s.", field, answer)
	}
	return b.String()
}

func (t *CompleteTool) render(section questions.SectionID, forced bool, state *conversation.State, progress conversation.Progress) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Section Complete: %s\n\n", t.registry.Title(section))
	if forced {
		b.WriteString("_Completed by explicit override._\n\n")
	}
	writeProgress(&b, progress)
	b.WriteString("\n")

	if next, ok := nextPendingSection(state); ok {
		fmt.Fprintf(&b, "## Next\n\nOpen the **%s** section with prd_start.\n", t.registry.Title(next))
	} else {
		b.WriteString("## Done\n\nEvery section is complete. Export the document with prd_draft.\n")
	}
	return b.String()
}
