package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// DefinitionLoader defines how machine definitions are retrieved.
// This allows the source (files, Markdown, memory) to be decoupled from the engine.
type DefinitionLoader interface {
	// Load retrieves a definition by name.
	// Returns domain.ErrMachineNotFound if no definition exists for the name.
	Load(ctx context.Context, name string) (*domain.Definition, error)

	// List returns the names of all available definitions, sorted.
	List(ctx context.Context) ([]string, error)
}
