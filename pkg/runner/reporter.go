package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// Reporter presents run records to the user.
type Reporter interface {
	Report(ctx context.Context, rec *domain.RunRecord) error
}

// TapeRenderer draws a tape snapshot on one line.
type TapeRenderer func(domain.TapeSnapshot) string

// TextReporter prints one verdict line per record and, when Verbose, every tape.
type TextReporter struct {
	Writer     io.Writer
	Verbose    bool
	RenderTape TapeRenderer
}

// NewTextReporter creates a TextReporter writing to w (stdout if nil).
// Tapes are highlighted when w is a terminal.
func NewTextReporter(w io.Writer, verbose bool) *TextReporter {
	if w == nil {
		w = os.Stdout
	}
	profile := tui.ProfileFor(w)
	return &TextReporter{
		Writer:  w,
		Verbose: verbose,
		RenderTape: func(s domain.TapeSnapshot) string {
			return tui.RenderTape(profile, s)
		},
	}
}

func (h *TextReporter) Report(ctx context.Context, rec *domain.RunRecord) error {
	line := fmt.Sprintf("%-6s %q", rec.Verdict(), rec.Input)
	if res := rec.Result; res != nil {
		line += fmt.Sprintf(" state=q%d steps=%d", res.FinalState, res.Steps)
	}
	if rec.Error != "" {
		line += " (" + rec.Error + ")"
	}
	if _, err := fmt.Fprintln(h.Writer, line); err != nil {
		return err
	}

	if !h.Verbose || rec.Result == nil {
		return nil
	}
	render := h.RenderTape
	if render == nil {
		render = func(s domain.TapeSnapshot) string { return tui.RenderTape(termenv.Ascii, s) }
	}
	for i, t := range rec.Result.Tapes {
		if _, err := fmt.Fprintf(h.Writer, "  tape %d: %s\n", i, render(t)); err != nil {
			return err
		}
	}
	return nil
}

// JSONReporter writes each record as one JSON line.
type JSONReporter struct {
	Encoder *json.Encoder
}

// NewJSONReporter creates a JSONReporter writing to w (stdout if nil).
func NewJSONReporter(w io.Writer) *JSONReporter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONReporter{Encoder: json.NewEncoder(w)}
}

func (h *JSONReporter) Report(ctx context.Context, rec *domain.RunRecord) error {
	return h.Encoder.Encode(rec)
}
