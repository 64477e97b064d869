package schema

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// DecodeMachine validates raw and decodes it into a Definition.
// name fills Definition.Name when the document does not carry one.
// Shape failures match domain.ErrInvalidDefinition and expose the individual
// problems through ValidationErrors.
func DecodeMachine(raw map[string]any, name string) (*domain.Definition, error) {
	if err := ValidateMachine(raw); err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrInvalidDefinition, name, err)
	}
	def, err := domain.DecodeDefinition(raw)
	if err != nil {
		return nil, err
	}
	if def.Name == "" {
		def.Name = name
	}
	return def, nil
}
