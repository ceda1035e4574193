// Package draft renders the PRD markdown from collected answers. The
// output is a working draft: sections and fields without answers still
// appear, marked as pending, so the document's final shape is visible
// from the first answer on.
package draft

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/prdpilot/prdpilot/internal/questions"
)

//go:embed templates/*.md.tmpl
var templateFS embed.FS

// Template names, matching the embedded files.
const (
	Section  = "section.md.tmpl"
	Document = "document.md.tmpl"
)

var timeNow = time.Now

// FieldData is one answered (or pending) field of a section.
type FieldData struct {
	Heading string
	Answer  string
}

// SectionData is the render input for one PRD section.
type SectionData struct {
	Title    string
	Complete bool
	Fields   []FieldData
}

// DocumentData is the render input for the whole PRD.
type DocumentData struct {
	Title           string
	GeneratedAt     string
	PercentComplete int
	Sections        []SectionData
}

// Renderer turns template data into markdown.
type Renderer interface {
	Render(name string, data any) (string, error)
}

type embedRenderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing draft templates: %w", err)
	}
	return &embedRenderer{tmpl: tmpl}, nil
}

func (r *embedRenderer) Render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return sb.String(), nil
}

// BuildSection assembles the render input for one section. Fields follow
// question order; unanswered fields get an empty Answer.
func BuildSection(
	registry *questions.Registry,
	section questions.SectionID,
	responses map[string]string,
	complete bool,
) SectionData {
	data := SectionData{
		Title:    registry.Title(section),
		Complete: complete,
	}

	seen := make(map[string]bool)
	for _, spec := range registry.QuestionsFor(section) {
		if seen[spec.Field] {
			continue
		}
		seen[spec.Field] = true
		data.Fields = append(data.Fields, FieldData{
			Heading: registry.Heading(section, spec.Field),
			Answer:  responses[spec.Field],
		})
	}

	return data
}

// BuildDocument assembles the render input for the full PRD, covering
// every section in interview order.
func BuildDocument(
	registry *questions.Registry,
	title string,
	responses map[questions.SectionID]map[string]string,
	completed map[questions.SectionID]bool,
	percentComplete int,
) DocumentData {
	doc := DocumentData{
		Title:           title,
		GeneratedAt:     timeNow().UTC().Format("2006-01-02"),
		PercentComplete: percentComplete,
	}

	for _, section := range questions.SectionOrder() {
		doc.Sections = append(doc.Sections,
			BuildSection(registry, section, responses[section], completed[section]))
	}

	return doc
}
