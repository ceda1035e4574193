package conversation

import (
	"math"

	"github.com/prdpilot/prdpilot/internal/questions"
)

// Progress summarizes how far through the questionnaire a session is.
// A section in progress counts as half-credit.
type Progress struct {
	CompletedSections int  `json:"completed_sections"`
	TotalSections     int  `json:"total_sections"`
	ActiveSection     bool `json:"active_section"`
	PercentComplete   int  `json:"percent_complete"`
}

// Progress computes the current completion percentage.
func (o *Orchestrator) Progress() Progress {
	total := len(questions.SectionOrder())
	completed := len(o.state.CompletedSections)
	active := o.state.CurrentSection != ""

	credit := float64(completed)
	if active {
		credit += 0.5
	}

	return Progress{
		CompletedSections: completed,
		TotalSections:     total,
		ActiveSection:     active,
		PercentComplete:   int(math.Round(credit / float64(total) * 100)),
	}
}
