package cli

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidMachines is returned by Validate when at least one machine failed.
var ErrInvalidMachines = errors.New("some machines are invalid")

// Validate compiles the named machines, or every machine when names is empty,
// and prints one line per machine.
func (a *App) Validate(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		var err error
		names, err = a.Engine.Machines(ctx)
		if err != nil {
			return err
		}
	}

	failed := 0
	for _, name := range names {
		if err := a.Engine.Validate(ctx, name); err != nil {
			failed++
			fmt.Fprintf(a.Out, "✗ %s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(a.Out, "✓ %s\n", name)
	}
	if failed > 0 {
		return fmt.Errorf("%w (%d of %d)", ErrInvalidMachines, failed, len(names))
	}
	return nil
}

// Graph prints the Mermaid flowchart of the named machine.
func (a *App) Graph(ctx context.Context, name string) error {
	g, err := a.Engine.Graph(ctx, name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.Out, g)
	return err
}
