package turing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/adapters/file"
	loamAdapter "github.com/aretw0/turing/pkg/adapters/loam"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
)

// Engine is the high-level entry point of the library.
// It ties a definition loader, an optional run store and a runner together.
type Engine struct {
	runner      *runner.Runner
	loader      ports.DefinitionLoader
	store       ports.RunStore
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	maxSteps    int
	concurrency int
	placeholder rune
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom DefinitionLoader, bypassing OpenLoader.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithStore persists every run record in store.
func WithStore(store ports.RunStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSteps sets the default step bound of every run.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithPlaceholder sets the blank placeholder of definitions that declare none.
func WithPlaceholder(placeholder rune) Option {
	return func(e *Engine) {
		e.placeholder = placeholder
	}
}

// WithConcurrency bounds the parallelism of RunBatch.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// New initializes an Engine reading definitions from path (see OpenLoader).
// If WithLoader is provided, path can be empty and is only used as a label.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		loader, err := OpenLoader(path)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	}
	if path != "" {
		eng.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("library", eng.Name)
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(eng.logger),
		runner.WithLifecycleHooks(eng.hooks),
		runner.WithMaxSteps(eng.maxSteps),
	}
	if eng.store != nil {
		runnerOpts = append(runnerOpts, runner.WithStore(eng.store))
	}
	if eng.placeholder != 0 {
		runnerOpts = append(runnerOpts, runner.WithDefaultPlaceholder(eng.placeholder))
	}
	if eng.concurrency > 0 {
		runnerOpts = append(runnerOpts, runner.WithConcurrency(eng.concurrency))
	}
	eng.runner = runner.New(eng.loader, runnerOpts...)

	return eng, nil
}

// OpenLoader picks a loader for path:
//   - a single definition file is served under its base name;
//   - a directory holding Markdown files is opened as a Loam repository;
//   - any other directory is read by the file loader (YAML, TOML, JSON).
func OpenLoader(path string) (ports.DefinitionLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	if !info.IsDir() {
		def, err := file.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return memory.NewFromDefinitions(def)
	}

	markdown, err := filepath.Glob(filepath.Join(path, "*.md"))
	if err != nil {
		return nil, err
	}
	if len(markdown) > 0 {
		return loamAdapter.Open(path)
	}
	return file.NewLoader(path), nil
}

// Run executes one input on the named machine. maxSteps <= 0 uses the default bound.
func (e *Engine) Run(ctx context.Context, name, input string, maxSteps int) (*domain.RunRecord, error) {
	return e.runner.Run(ctx, name, input, maxSteps)
}

// RunBatch executes every input on the named machine, keeping input order.
func (e *Engine) RunBatch(ctx context.Context, name string, inputs []string, maxSteps int) ([]*domain.RunRecord, error) {
	return e.runner.RunBatch(ctx, name, inputs, maxSteps)
}

// Machine returns the compiled machine for name.
func (e *Engine) Machine(ctx context.Context, name string) (*machine.Machine, error) {
	return e.runner.Machine(ctx, name)
}

// Validate loads and compiles the named machine, reporting the first problem found.
func (e *Engine) Validate(ctx context.Context, name string) error {
	e.runner.Forget(name)
	_, err := e.runner.Machine(ctx, name)
	return err
}

// Graph returns the Mermaid flowchart of the named machine.
func (e *Engine) Graph(ctx context.Context, name string) (string, error) {
	m, err := e.runner.Machine(ctx, name)
	if err != nil {
		return "", err
	}
	return graph.GenerateMermaid(m, nil), nil
}

// Machines lists the names the loader knows.
func (e *Engine) Machines(ctx context.Context) ([]string, error) {
	return e.loader.List(ctx)
}

// Runner returns the runner used by the engine, for adapters that need it.
func (e *Engine) Runner() *runner.Runner {
	return e.runner
}

// Loader returns the underlying DefinitionLoader.
func (e *Engine) Loader() ports.DefinitionLoader {
	return e.loader
}

// Store returns the run store, or nil when runs are not persisted.
func (e *Engine) Store() ports.RunStore {
	return e.store
}
