package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// RunStore defines the interface for persisting run records.
type RunStore interface {
	// Save persists the record under its ID, replacing any previous version.
	Save(ctx context.Context, record *domain.RunRecord) error

	// Load retrieves a record by ID.
	// Returns domain.ErrRunNotFound if the record does not exist.
	Load(ctx context.Context, id string) (*domain.RunRecord, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored records.
	List(ctx context.Context) ([]string, error)
}
