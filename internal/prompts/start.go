// Package prompts implements the MCP prompt handlers for the PRD
// questionnaire.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the prd-start MCP prompt. It guides the AI
// through running the questionnaire end to end.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("prd-start",
		mcp.WithPromptDescription(
			"Interview me about a product idea and build a PRD from my "+
				"answers, section by section.",
		),
		mcp.WithArgument("product_name",
			mcp.ArgumentDescription("Name of the product the PRD is for"),
		),
	)
}

// Handle processes the prd-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	productName := "my product"
	if args := req.Params.Arguments; args != nil {
		if name, ok := args["product_name"]; ok && name != "" {
			productName = name
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Build a PRD for %s", productName),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to write a PRD for '%s' by answering questions.\n\n"+
						"Please:\n"+
						"1. Run `prd_start` with name='%s' to open a session\n"+
						"2. Ask me the returned questions one at a time, conversationally\n"+
						"3. Record each of my answers with `prd_answer`; when it says to "+
						"ask a follow-up, ask it and record my improved answer\n"+
						"4. When a section is ready, call `prd_complete_section` and move on\n"+
						"5. After the last section, export the document with `prd_draft`\n\n"+
						"Keep it conversational — one question at a time, no walls of text.",
					productName, productName,
				)),
			},
		},
	}, nil
}
