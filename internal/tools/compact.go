package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prdpilot/prdpilot/internal/conversation"
	"github.com/prdpilot/prdpilot/internal/questions"
	"github.com/prdpilot/prdpilot/internal/rules"
	"github.com/prdpilot/prdpilot/internal/session"
)

// CompactTool handles the prd_compact MCP tool: it rewrites a session's
// message log with the compaction policy applied.
type CompactTool struct {
	store     Store
	registry  *questions.Registry
	validator *rules.Validator
}

// NewCompactTool creates a CompactTool with its dependencies.
func NewCompactTool(store Store, registry *questions.Registry, validator *rules.Validator) *CompactTool {
	return &CompactTool{store: store, registry: registry, validator: validator}
}

// Definition returns the MCP tool definition for registration.
func (t *CompactTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_compact",
		mcp.WithDescription(
			"Compact a long session's message log. Messages from the active "+
				"section and untagged messages are kept verbatim; completed "+
				"sections keep truncated user answers and section summaries only. "+
				"Use when a long interview starts weighing down the context.",
		),
		mcp.WithString("session_id", mcp.Required(),
			mcp.Description("The session whose log to compact."),
		),
	)
}

// Handle processes the prd_compact tool call.
func (t *CompactTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	state, err := t.store.LoadState(sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("session %q not found", sessionID)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	messages, err := t.store.Messages(sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}
	if len(messages) == 0 {
		return mcp.NewToolResultText("Nothing to compact: the session has no messages."), nil
	}

	orch := conversation.New(t.validator, t.registry, state)
	compacted := orch.CompressConversation(messages)

	if err := t.store.ReplaceMessages(sessionID, compacted); err != nil {
		return nil, fmt.Errorf("replacing messages: %w", err)
	}

	state.Metadata.MessageCount = len(compacted)
	if err := t.store.SaveState(sessionID, state); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	beforeBytes, afterBytes := totalBytes(messages), totalBytes(compacted)
	return mcp.NewToolResultText(fmt.Sprintf(
		"# Log Compacted\n\n"+
			"- messages: %d → %d\n"+
			"- content size: %d → %d bytes (%d saved)\n\n"+
			"Active-section and untagged messages were kept verbatim.",
		len(messages), len(compacted), beforeBytes, afterBytes, beforeBytes-afterBytes,
	)), nil
}

func totalBytes(messages []conversation.Message) int {
	total := 0
	for _, m := range messages {
		total += len(m.Content)
	}
	return total
}
