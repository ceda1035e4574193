package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prdpilot/prdpilot/internal/session"
)

// ArchiveTool handles the prd_archive MCP tool.
type ArchiveTool struct {
	store Store
}

// NewArchiveTool creates an ArchiveTool with its dependencies.
func NewArchiveTool(store Store) *ArchiveTool {
	return &ArchiveTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ArchiveTool) Definition() mcp.Tool {
	return mcp.NewTool("prd_archive",
		mcp.WithDescription(
			"Archive a finished or abandoned session. The session keeps its data "+
				"but no longer shows up in the default listing and cannot be "+
				"archived twice.",
		),
		mcp.WithString("session_id", mcp.Required(),
			mcp.Description("The session to archive."),
		),
	)
}

// Handle processes the prd_archive tool call.
func (t *ArchiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	err := t.store.Archive(sessionID)
	if errors.Is(err, session.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("session %q not found or already archived", sessionID)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("archiving session: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Session `%s` archived.", sessionID)), nil
}
