package machine

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Compile builds a machine from a raw definition, parsing every transition and
// inserting it. Options given here override the definition's name and placeholder.
func Compile(def *domain.Definition, opts ...Option) (*Machine, error) {
	placeholder, err := def.Placeholder()
	if err != nil {
		return nil, err
	}

	base := []Option{WithName(def.Name), WithPlaceholder(placeholder)}
	m, err := New(def.Initial, def.Tapes, def.Accept, append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	for i := range def.Transitions {
		read, tr, err := def.ParseTransition(i, m.blank, m.placeholder)
		if err != nil {
			return nil, err
		}
		if err := m.InsertTransition(def.Transitions[i].From, read, tr); err != nil {
			return nil, fmt.Errorf("transition %d (state %d): %w", i, def.Transitions[i].From, err)
		}
	}
	return m, nil
}
