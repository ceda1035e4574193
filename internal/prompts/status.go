package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the prd-status MCP prompt.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("prd-status",
		mcp.WithPromptDescription(
			"Check on my PRD sessions: what's in progress, how far along "+
				"each one is, and what to answer next.",
		),
	)
}

// Handle processes the prd-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "PRD Session Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `prd_status` to check my PRD sessions.\n\n" +
						"Then:\n" +
						"1. Show each session's progress in a clear, visual format\n" +
						"2. For the most recent session, list the questions still open\n" +
						"3. Tell me exactly what to answer next to move forward",
				),
			},
		},
	}, nil
}
