// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on
// abstractions. No business logic lives here — only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/prdpilot/prdpilot/internal/config"
	"github.com/prdpilot/prdpilot/internal/draft"
	"github.com/prdpilot/prdpilot/internal/prompts"
	"github.com/prdpilot/prdpilot/internal/questions"
	"github.com/prdpilot/prdpilot/internal/resources"
	"github.com/prdpilot/prdpilot/internal/rules"
	"github.com/prdpilot/prdpilot/internal/session"
	"github.com/prdpilot/prdpilot/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the session store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if initialization failed.
func New() (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	settings, err := config.Load()
	if err != nil {
		return nil, noop, fmt.Errorf("loading configuration: %w", err)
	}

	registry := questions.Default()

	validator, err := rules.NewValidator(registry.RuleSet())
	if err != nil {
		return nil, noop, fmt.Errorf("building validator: %w", err)
	}

	renderer, err := draft.NewRenderer()
	if err != nil {
		return nil, noop, fmt.Errorf("creating draft renderer: %w", err)
	}

	// The session store is not optional: every tool needs it, so a
	// failure here is fatal rather than a degraded mode.
	base, err := session.New(session.Config{DBPath: settings.DBPath})
	if err != nil {
		return nil, noop, fmt.Errorf("opening session store: %w", err)
	}
	cleanup := func() {
		if err := base.Close(); err != nil {
			log.Printf("WARNING: session store close: %v", err)
		}
	}

	store, err := session.NewCached(base, settings.CacheSize)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("creating session cache: %w", err)
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"prdpilot",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register questionnaire tools ---

	startTool := tools.NewStartTool(store, registry, validator)
	s.AddTool(startTool.Definition(), startTool.Handle)

	answerTool := tools.NewAnswerTool(store, registry, validator)
	s.AddTool(answerTool.Definition(), answerTool.Handle)

	completeTool := tools.NewCompleteTool(store, registry, validator)
	s.AddTool(completeTool.Definition(), completeTool.Handle)

	statusTool := tools.NewStatusTool(store, registry, validator)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	draftTool := tools.NewDraftTool(store, registry, validator, renderer)
	s.AddTool(draftTool.Definition(), draftTool.Handle)

	compactTool := tools.NewCompactTool(store, registry, validator)
	s.AddTool(compactTool.Definition(), compactTool.Handle)

	archiveTool := tools.NewArchiveTool(store)
	s.AddTool(archiveTool.Definition(), archiveTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store, registry)
	s.AddResource(resourceHandler.SessionsResource(), resourceHandler.HandleSessions)
	s.AddResource(resourceHandler.QuestionnaireResource(), resourceHandler.HandleQuestionnaire)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when
// initialization fails before the store is opened.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to run the PRD interview.
func serverInstructions() string {
	return `You have access to prdpilot, a guided PRD (Product Requirements
Document) interview engine.

## WHEN TO ACTIVATE prdpilot

Proactively suggest prdpilot when the user:
- Wants to write a PRD, product spec, or one-pager
- Describes a product idea and asks "what should I think about?"
- Says things like "help me spec this out" or "I need requirements"

You do NOT need prdpilot for bug reports, technical design docs, or
code-level specifications.

## CRITICAL: How the tools work

prdpilot runs a fixed seven-section questionnaire: introduction, goals,
audience, userStories, requirements, metrics, questions. The tools store
and score the USER'S answers — you never invent content on their behalf.

The loop for each section:

1. Call prd_start to open (or resume) a session. It returns the open
   questions for the active section.
2. Ask the user ONE question at a time, conversationally. Never dump
   the whole list on them.
3. Record each answer with prd_answer. Read the result:
   - "ask a follow-up" — the answer was thin or off-target. Ask the
     suggested follow-up question and record the user's improved answer
     with prd_answer again (same field). Each field gets at most one
     follow-up round; after the second attempt the answer is kept as-is.
   - "continue" — move to the next open question.
   - "close the section" — everything required is answered well.
4. When the section is ready, call prd_complete_section. Sections are
   NEVER closed automatically — you decide when, based on the tool's
   guidance. Use force=true only when the user explicitly wants to skip
   remaining questions.
5. Repeat for each section until all seven are complete, then export
   the document with prd_draft.

## Rules

- NEVER answer the questionnaire yourself — record what the user says,
  verbatim. Light cleanup of typos is fine; substance must be theirs.
- NEVER skip the follow-up when the tool asks for one. The follow-up
  prompts are targeted at what was missing from the answer.
- Answers can be revised at any time before the draft: just call
  prd_answer again with the same field. Completed sections keep their
  completion when an answer is edited.
- Some answers carry forward (goals shares success metrics with the
  metrics section) — prd_start tells you which questions are already
  covered, so don't re-ask them.
- If the conversation gets long, call prd_compact to shrink the stored
  message log. Section summaries and the active section survive intact.
- Use prd_status at the start of a new conversation to find unfinished
  sessions, and prd_archive when the user is done with one.

## Tone

Be a thoughtful interviewer, not a form. React to answers, connect them
to earlier ones, and make the user feel the PRD is taking shape as they
talk. One question at a time, no walls of text.`
}
