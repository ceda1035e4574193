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

// AnswerTool handles the prd_answer MCP tool: it records one user
// answer, validates and scores it, and reports the next action.
type AnswerTool struct {
	store     Store
	registry  *questions.Registry
	validator *rules.Validator
}

// NewAnswerTool creates an AnswerTool with its dependencies.
func NewAnswerTool(store Store, registry *questions.Registry, validator *rules.Validator) *AnswerTool {
	return &AnswerTool{store: store, registry: registry, validator: validator}
}

// Definition returns the MCP tool definition for registration.
func (t *AnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_answer",
		mcp.WithDescription(
			"Record the user's answer to one questionnaire field. The answer is "+
				"validated against the field's rules and scored for quality. The "+
				"result says whether to ask a follow-up ('followup'), move to the "+
				"next question ('continue'), or close the section "+
				"('complete_section'). A field is re-asked at most once; after "+
				"that the flow always proceeds.",
		),
		mcp.WithString("session_id", mcp.Required(),
			mcp.Description("The session this answer belongs to."),
		),
		mcp.WithString("section", mcp.Required(),
			mcp.Description("Section the field belongs to: "+strings.Join(sectionNames(), ", ")),
		),
		mcp.WithString("field", mcp.Required(),
			mcp.Description("Field name from the question list, e.g. productDescription."),
		),
		mcp.WithString("answer", mcp.Required(),
			mcp.Description("The user's answer, verbatim."),
		),
	)
}

// Handle processes the prd_answer tool call.
func (t *AnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	rawSection := req.GetString("section", "")
	field := req.GetString("field", "")
	answer := req.GetString("answer", "")

	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}
	if rawSection == "" {
		return mcp.NewToolResultError("'section' is required"), nil
	}
	if field == "" {
		return mcp.NewToolResultError("'field' is required"), nil
	}
	if answer == "" {
		return mcp.NewToolResultError("'answer' is required"), nil
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
	exchange, err := orch.ProcessAnswer(answer, section, field)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state.Metadata.MessageCount += 2
	if err := t.store.SaveState(sessionID, state); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	if err := t.store.AppendMessage(sessionID, conversation.Message{
		Role:    conversation.RoleUser,
		Content: answer,
		Section: section,
	}); err != nil {
		return nil, fmt.Errorf("recording answer: %w", err)
	}

	response := t.render(section, field, exchange)
	if err := t.store.AppendMessage(sessionID, conversation.Message{
		Role:    conversation.RoleAssistant,
		Content: response,
		Section: section,
	}); err != nil {
		return nil, fmt.Errorf("recording message: %w", err)
	}

	return mcp.NewToolResultText(response), nil
}

func (t *AnswerTool) render(section questions.SectionID, field string, ex *conversation.Exchange) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Answer Recorded: %s.%s\n\n", section, field)

	writeValidation(&b, ex.Validation)
	fmt.Fprintf(&b, "\n**Quality:** %d/100 (completeness %d, specificity %d, relevance %d, clarity %d)\n",
		ex.Quality.Overall, ex.Quality.Completeness, ex.Quality.Specificity,
		ex.Quality.Relevance, ex.Quality.Clarity)
	fmt.Fprintf(&b, "**Attempt:** %d\n\n", ex.Attempts)

	if len(ex.ExtractedData) > 0 {
		b.WriteString("**Extracted:**\n")
		for kind, values := range ex.ExtractedData {
			fmt.Fprintf(&b, "- %s: %s\n", kind, strings.Join(values, ", "))
		}
		b.WriteString("\n")
	}

	switch ex.NextAction {
	case conversation.ActionFollowUp:
		b.WriteString("## Next: ask a follow-up\n\n" +
			"The answer needs more detail. Pick the most relevant follow-up:\n\n")
		for _, q := range ex.FollowUpPrompts {
			fmt.Fprintf(&b, "- %s\n", q)
		}
		b.WriteString("\nRecord the improved answer with prd_answer against the same field.\n")
	case conversation.ActionCompleteSection:
		b.WriteString("## Next: close the section\n\n" +
			"Every field in this section passes. Call prd_complete_section to " +
			"lock it in and move on.\n")
	default:
		b.WriteString("## Next: continue\n\nAsk the next unanswered question in this section.\n")
	}

	b.WriteString("\n")
	writeProgress(&b, ex.Context.Progress)
	return b.String()
}
