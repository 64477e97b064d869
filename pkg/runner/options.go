package runner

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
)

// DefaultConcurrency is the number of inputs a batch runs at once.
const DefaultConcurrency = 4

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures the RunStore that receives every record.
func WithStore(store ports.RunStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithMaxSteps sets the step bound used when a run does not request one.
func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		r.MaxSteps = n
	}
}

// WithConcurrency limits how many inputs of a batch run in parallel.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.Concurrency = n
	}
}

// WithLifecycleHooks registers hooks on every compiled machine.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.Hooks = r.Hooks.Merge(hooks)
	}
}

// WithMachineOptions appends engine options applied at compile time.
func WithMachineOptions(opts ...machine.Option) Option {
	return func(r *Runner) {
		r.machineOpts = append(r.machineOpts, opts...)
	}
}

// WithDefaultPlaceholder sets the blank placeholder of definitions that declare none.
func WithDefaultPlaceholder(placeholder rune) Option {
	return func(r *Runner) {
		r.placeholder = placeholder
	}
}

// WithIDGenerator replaces the run ID source.
func WithIDGenerator(gen func() string) Option {
	return func(r *Runner) {
		r.newID = gen
	}
}
