// Package resources implements the MCP resource handlers for the PRD
// questionnaire.
//
// Resources provide read-only data the host can consume for context.
// They use URI-based addressing (prd://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prdpilot/prdpilot/internal/questions"
	"github.com/prdpilot/prdpilot/internal/session"
)

// SessionLister is the slice of the session store the resources need.
type SessionLister interface {
	List(includeArchived bool, limit int) ([]session.Record, error)
}

// Handler manages the PRD resource endpoints.
type Handler struct {
	store    SessionLister
	registry *questions.Registry
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store SessionLister, registry *questions.Registry) *Handler {
	return &Handler{store: store, registry: registry}
}

// SessionsResource returns the MCP resource definition for the session
// listing.
func (h *Handler) SessionsResource() mcp.Resource {
	return mcp.NewResource(
		"prd://sessions",
		"PRD Sessions",
		mcp.WithResourceDescription("All active PRD questionnaire sessions with their progress"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSessions returns the active sessions as JSON.
func (h *Handler) HandleSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := h.store.List(false, 50)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	if records == nil {
		records = []session.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sessions: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// QuestionnaireResource returns the MCP resource definition for the
// questionnaire configuration.
func (h *Handler) QuestionnaireResource() mcp.Resource {
	return mcp.NewResource(
		"prd://questionnaire",
		"PRD Questionnaire",
		mcp.WithResourceDescription("The section order, questions, and validation rules of the questionnaire"),
		mcp.WithMIMEType("application/json"),
	)
}

// questionnaireView is the serialized shape of the questionnaire config.
type questionnaireView struct {
	Sections []sectionView `json:"sections"`
}

type sectionView struct {
	ID        questions.SectionID `json:"id"`
	Title     string              `json:"title"`
	Questions []questions.Spec    `json:"questions"`
}

// HandleQuestionnaire returns the questionnaire configuration as JSON.
func (h *Handler) HandleQuestionnaire(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	view := questionnaireView{}
	for _, sec := range questions.SectionOrder() {
		view.Sections = append(view.Sections, sectionView{
			ID:        sec,
			Title:     h.registry.Title(sec),
			Questions: h.registry.QuestionsFor(sec),
		})
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling questionnaire: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
