package machine

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// DefaultMaxSteps is the step bound used when none is configured.
const DefaultMaxSteps = 500

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithMaxSteps sets the default step bound for every run.
func WithMaxSteps(n int) Option {
	return func(m *Machine) {
		m.maxSteps = n
	}
}

// WithBlank sets the sentinel symbol of unwritten cells.
func WithBlank(blank domain.Symbol) Option {
	return func(m *Machine) {
		m.blank = blank
	}
}

// WithPlaceholder sets the display character standing in for the blank.
func WithPlaceholder(r rune) Option {
	return func(m *Machine) {
		m.placeholder = r
	}
}

// WithTapeFactory swaps the tape storage strategy.
func WithTapeFactory(f ports.TapeFactory) Option {
	return func(m *Machine) {
		m.newTape = f
	}
}

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
// Hooks are invoked synchronously from the run loop and must be safe for
// concurrent use when runs overlap.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithName labels the machine in logs, events and run records.
func WithName(name string) Option {
	return func(m *Machine) {
		m.name = name
	}
}

type runConfig struct {
	maxSteps int
}

// RunOption configures a single run.
type RunOption func(*runConfig)

// WithStepBound overrides the machine's step bound for one run.
func WithStepBound(n int) RunOption {
	return func(c *runConfig) {
		c.maxSteps = n
	}
}
