package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Report builds a markdown summary of a run record.
func Report(rec *domain.RunRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Run `%s`\n\n", rec.ID)
	fmt.Fprintf(&sb, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Machine | %s |\n", rec.Machine)
	fmt.Fprintf(&sb, "| Input | `%s` |\n", rec.Input)
	fmt.Fprintf(&sb, "| Verdict | **%s** |\n", rec.Verdict())
	fmt.Fprintf(&sb, "| Step bound | %d |\n", rec.MaxSteps)
	fmt.Fprintf(&sb, "| Duration | %s |\n", rec.Duration)

	if rec.Error != "" {
		fmt.Fprintf(&sb, "\n> %s\n", rec.Error)
	}

	if res := rec.Result; res != nil {
		fmt.Fprintf(&sb, "\nHalted in state `q%d` after %d steps.\n", res.FinalState, res.Steps)
		if len(res.Tapes) > 0 {
			sb.WriteString("\n## Tapes\n\n```\n")
			for i, t := range res.Tapes {
				fmt.Fprintf(&sb, "%d: %s\n", i, RenderTape(termenv.Ascii, t))
			}
			sb.WriteString("```\n")
		}
	}
	return sb.String()
}
