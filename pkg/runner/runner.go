package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Runner executes named machines and records their runs.
// It is safe for concurrent use.
type Runner struct {
	Loader ports.DefinitionLoader

	// Store receives every record. If nil, runs are not persisted.
	Store ports.RunStore

	// Logger is used for internal logging. If nil, a no-op logger is used.
	Logger *slog.Logger

	// MaxSteps is the default step bound; zero keeps the engine default.
	MaxSteps int

	// Concurrency bounds RunBatch parallelism.
	Concurrency int

	Hooks domain.LifecycleHooks

	machineOpts []machine.Option
	placeholder rune
	newID       func() string

	mu       sync.Mutex
	machines map[string]*machine.Machine
}

// New creates a Runner reading definitions from loader.
func New(loader ports.DefinitionLoader, opts ...Option) *Runner {
	r := &Runner{
		Loader:      loader,
		Concurrency: DefaultConcurrency,
		newID:       uuid.NewString,
		machines:    make(map[string]*machine.Machine),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	if r.Concurrency < 1 {
		r.Concurrency = 1
	}
	return r
}

// Machine returns the compiled machine for name, compiling it on first use.
func (r *Runner) Machine(ctx context.Context, name string) (*machine.Machine, error) {
	r.mu.Lock()
	m, ok := r.machines[name]
	r.mu.Unlock()
	if ok {
		return m, nil
	}

	def, err := r.Loader.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if def.Blank == "" && r.placeholder != 0 {
		def.Blank = string(r.placeholder)
	}

	opts := []machine.Option{
		machine.WithLogger(r.Logger),
		machine.WithLifecycleHooks(r.Hooks),
	}
	if r.MaxSteps > 0 {
		opts = append(opts, machine.WithMaxSteps(r.MaxSteps))
	}
	m, err = machine.Compile(def, append(opts, r.machineOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.machines[name]; ok {
		return cached, nil
	}
	r.machines[name] = m
	r.Logger.Debug("machine compiled", "machine", name, "transitions", len(m.Transitions()))
	return m, nil
}

// Forget drops the compiled machine for name, so the next run reloads it.
func (r *Runner) Forget(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.machines, name)
}

// Run executes one input and stores the record.
// A run cut off by the step bound is not an error here: the record carries the
// error text and its verdict is "error". Load, compile, context and store failures
// are returned as errors. maxSteps <= 0 uses the machine's bound.
func (r *Runner) Run(ctx context.Context, name, input string, maxSteps int) (*domain.RunRecord, error) {
	m, err := r.Machine(ctx, name)
	if err != nil {
		return nil, err
	}

	var runOpts []machine.RunOption
	bound := m.MaxSteps()
	if maxSteps > 0 {
		runOpts = append(runOpts, machine.WithStepBound(maxSteps))
		bound = maxSteps
	}

	rec := &domain.RunRecord{
		ID:        r.newID(),
		Machine:   name,
		Input:     input,
		MaxSteps:  bound,
		StartedAt: time.Now().UTC(),
	}

	res, err := m.Execute(ctx, input, runOpts...)
	rec.Duration = time.Since(rec.StartedAt)
	rec.Result = res
	if err != nil {
		if !errors.Is(err, domain.ErrMaxStepsReached) {
			return nil, err
		}
		rec.Error = err.Error()
	}

	r.Logger.Info("run finished", "run_id", rec.ID, "machine", name, "verdict", rec.Verdict(), "duration", rec.Duration)

	if r.Store != nil {
		if err := r.Store.Save(ctx, rec); err != nil {
			return rec, fmt.Errorf("failed to save run %s: %w", rec.ID, err)
		}
	}
	return rec, nil
}

// RunBatch runs every input with at most Concurrency runs in flight.
// Records are returned in input order. The first failure cancels the remaining runs.
func (r *Runner) RunBatch(ctx context.Context, name string, inputs []string, maxSteps int) ([]*domain.RunRecord, error) {
	// compile once up front so a bad definition fails fast
	if _, err := r.Machine(ctx, name); err != nil {
		return nil, err
	}

	records := make([]*domain.RunRecord, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			rec, err := r.Run(gctx, name, input, maxSteps)
			if err != nil {
				return fmt.Errorf("input %q: %w", input, err)
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
