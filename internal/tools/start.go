package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prdpilot/prdpilot/internal/conversation"
	"github.com/prdpilot/prdpilot/internal/questions"
	"github.com/prdpilot/prdpilot/internal/rules"
	"github.com/prdpilot/prdpilot/internal/session"
)

// StartTool handles the prd_start MCP tool. It creates or resumes a
// session and opens the next questionnaire section.
type StartTool struct {
	store     Store
	registry  *questions.Registry
	validator *rules.Validator
}

// NewStartTool creates a StartTool with its dependencies.
func NewStartTool(store Store, registry *questions.Registry, validator *rules.Validator) *StartTool {
	return &StartTool{store: store, registry: registry, validator: validator}
}

// Definition returns the MCP tool definition for registration.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_start",
		mcp.WithDescription(
			"Start or resume a PRD questionnaire session. Without a session_id a "+
				"new session is created; with one, the existing session is resumed. "+
				"Opens the requested section (default: the first section not yet "+
				"completed) and returns the questions to ask the user, one at a time. "+
				"Answers already given for a same-named field in an earlier section "+
				"carry forward automatically.",
		),
		mcp.WithString("session_id",
			mcp.Description("Existing session to resume. Omit to create a new session."),
		),
		mcp.WithString("name",
			mcp.Description("Display name for a new session, typically the product name."),
		),
		mcp.WithString("section",
			mcp.Description("Section to open: "+strings.Join(sectionNames(), ", ")+
				". Defaults to the first section not yet completed."),
		),
	)
}

// Handle processes the prd_start tool call.
func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	name := req.GetString("name", "")

	var state *conversation.State
	created := false

	if sessionID == "" {
		sessionID = uuid.NewString()
		if err := t.store.Create(sessionID, name); err != nil {
			return nil, fmt.Errorf("creating session: %w", err)
		}
		state = conversation.NewState(sessionID)
		created = true
	} else {
		var err error
		state, err = t.store.LoadState(sessionID)
		if errors.Is(err, session.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("session %q not found; omit session_id to start fresh", sessionID)), nil
		}
		if err != nil {
			return nil, fmt.Errorf("loading session: %w", err)
		}
	}

	section := state.CurrentSection
	if raw := req.GetString("section", ""); raw != "" {
		parsed, err := parseSection(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		section = parsed
	}
	if section == "" {
		next, ok := nextPendingSection(state)
		if !ok {
			return mcp.NewToolResultText(fmt.Sprintf(
				"All sections are complete for session `%s`. Use prd_draft to export the document.",
				sessionID)), nil
		}
		section = next
	}

	orch := conversation.New(t.validator, t.registry, state)
	result, err := orch.InitializeSection(section, previousResponses(state))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := t.store.SaveState(sessionID, state); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	response := t.render(sessionID, section, created, result)
	if err := t.store.AppendMessage(sessionID, conversation.Message{
		Role:    conversation.RoleAssistant,
		Content: response,
		Section: section,
	}); err != nil {
		return nil, fmt.Errorf("recording message: %w", err)
	}

	return mcp.NewToolResultText(response), nil
}

func (t *StartTool) render(sessionID string, section questions.SectionID, created bool, result *conversation.InitResult) string {
	var b strings.Builder

	if created {
		fmt.Fprintf(&b, "# New PRD Session\n\nSession ID: `%s` — keep it for every later call.\n\n", sessionID)
	} else {
		fmt.Fprintf(&b, "# Session Resumed\n\nSession ID: `%s`\n\n", sessionID)
	}

	fmt.Fprintf(&b, "## Section: %s\n\n", t.registry.Title(section))

	if len(result.Carried) > 0 {
		b.WriteString("Carried forward from earlier sections:\n")
		for field, answer := range result.Carried {
			fmt.Fprintf(&b, "- `%s`: %s\n", field, answer)
		}
		b.WriteString("\n")
	}

	if len(result.Questions) == 0 {
		b.WriteString("Every question in this section already has an answer. " +
			"Use prd_complete_section to close it out.\n\n")
	} else {
		b.WriteString("Ask the user these questions one at a time, then record each " +
			"answer with prd_answer:\n\n")
		writeQuestions(&b, result.Questions)
		b.WriteString("\n")
	}

	writeProgress(&b, result.Progress)
	return b.String()
}
