package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

// Output formats of the run command.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatReport = "report"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Machine  string
	Inputs   []string
	MaxSteps int
	Format   string
	Verbose  bool
	// Stdin, when set, reads one input per line from In after the explicit Inputs.
	Stdin bool
	In    io.Reader
}

// RunSummary counts verdicts over a run command.
type RunSummary struct {
	Accepted int
	Rejected int
	Failed   int
}

// Run executes every input of opts on its machine and reports each record.
// With no inputs at all, the empty word is run.
func (a *App) Run(ctx context.Context, opts RunOptions) (RunSummary, error) {
	inputs := append([]string(nil), opts.Inputs...)
	if opts.Stdin && opts.In != nil {
		scanner := bufio.NewScanner(opts.In)
		for scanner.Scan() {
			inputs = append(inputs, strings.TrimRight(scanner.Text(), "\r"))
		}
		if err := scanner.Err(); err != nil {
			return RunSummary{}, fmt.Errorf("read inputs: %w", err)
		}
	}
	if len(inputs) == 0 {
		inputs = []string{""}
	}

	reporter, err := a.reporter(opts)
	if err != nil {
		return RunSummary{}, err
	}

	records, err := a.Engine.RunBatch(ctx, opts.Machine, inputs, opts.MaxSteps)
	if err != nil {
		return RunSummary{}, handleExecutionError(err)
	}

	var sum RunSummary
	for _, rec := range records {
		switch rec.Verdict() {
		case domain.VerdictAccept:
			sum.Accepted++
		case domain.VerdictReject:
			sum.Rejected++
		default:
			sum.Failed++
		}
		if err := reporter.Report(ctx, rec); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func (a *App) reporter(opts RunOptions) (runner.Reporter, error) {
	switch opts.Format {
	case "", FormatText:
		return runner.NewTextReporter(a.Out, opts.Verbose), nil
	case FormatJSON:
		return runner.NewJSONReporter(a.Out), nil
	case FormatReport:
		return &markdownReporter{w: a.Out, render: a.markdownRenderer()}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// markdownRenderer styles markdown for terminals and passes it through otherwise.
func (a *App) markdownRenderer() func(string) (string, error) {
	if tui.IsTerminal(a.Out) {
		return tui.NewRenderer()
	}
	return func(md string) (string, error) { return md, nil }
}

type markdownReporter struct {
	w      io.Writer
	render func(string) (string, error)
}

func (r *markdownReporter) Report(ctx context.Context, rec *domain.RunRecord) error {
	out, err := r.render(tui.Report(rec))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(r.w, out)
	return err
}
