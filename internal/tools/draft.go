package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prdpilot/prdpilot/internal/conversation"
	"github.com/prdpilot/prdpilot/internal/draft"
	"github.com/prdpilot/prdpilot/internal/questions"
	"github.com/prdpilot/prdpilot/internal/rules"
	"github.com/prdpilot/prdpilot/internal/session"
)

// DraftTool handles the prd_draft MCP tool: it renders the PRD markdown
// from everything collected so far.
type DraftTool struct {
	store     Store
	registry  *questions.Registry
	validator *rules.Validator
	renderer  draft.Renderer
}

// NewDraftTool creates a DraftTool with its dependencies.
func NewDraftTool(store Store, registry *questions.Registry, validator *rules.Validator, renderer draft.Renderer) *DraftTool {
	return &DraftTool{store: store, registry: registry, validator: validator, renderer: renderer}
}

// Definition returns the MCP tool definition for registration.
func (t *DraftTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_draft",
		mcp.WithDescription(
			"Render the PRD as a markdown document from all answers collected so "+
				"far. Works at any point in the interview: sections without answers "+
				"appear with their headings marked as pending, so the draft shows "+
				"the document taking shape.",
		),
		mcp.WithString("session_id", mcp.Required(),
			mcp.Description("The session to export."),
		),
		mcp.WithString("title",
			mcp.Description("Document title. Defaults to the session name."),
		),
	)
}

// Handle processes the prd_draft tool call.
func (t *DraftTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
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

	title := req.GetString("title", "")
	if title == "" {
		title = record.Name
	}
	if title == "" {
		title = "Untitled Product"
	}

	orch := conversation.New(t.validator, t.registry, state)
	data := draft.BuildDocument(t.registry, title, state.Responses,
		completedSet(state), orch.Progress().PercentComplete)

	document, err := t.renderer.Render(draft.Document, data)
	if err != nil {
		return nil, fmt.Errorf("rendering draft: %w", err)
	}

	return mcp.NewToolResultText(document), nil
}
