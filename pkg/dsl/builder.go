package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Builder manages the construction of one machine definition.
type Builder struct {
	def   domain.Definition
	rules []*TransitionBuilder
}

// New creates a builder for a single-tape machine named name, starting in state 0.
func New(name string) *Builder {
	return &Builder{
		def: domain.Definition{Name: name, Tapes: 1},
	}
}

// Tapes sets the number of tapes.
func (b *Builder) Tapes(n int) *Builder {
	b.def.Tapes = n
	return b
}

// Describe sets the human readable description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// Initial sets the initial state.
func (b *Builder) Initial(state domain.StateID) *Builder {
	b.def.Initial = state
	return b
}

// Accept adds accepting states.
func (b *Builder) Accept(states ...domain.StateID) *Builder {
	b.def.Accept = append(b.def.Accept, states...)
	return b
}

// Blank sets the character written for the blank symbol in definitions and listings.
func (b *Builder) Blank(placeholder rune) *Builder {
	b.def.Blank = string(placeholder)
	return b
}

// From starts a new transition leaving state.
func (b *Builder) From(state domain.StateID) *TransitionBuilder {
	tb := &TransitionBuilder{
		rule:    domain.TransitionDef{From: state, Next: state},
		builder: b,
	}
	b.rules = append(b.rules, tb)
	return tb
}

// Definition returns the definition built so far, validated.
func (b *Builder) Definition() (*domain.Definition, error) {
	def := b.def
	def.Accept = append([]domain.StateID(nil), b.def.Accept...)
	def.Transitions = make([]domain.TransitionDef, 0, len(b.rules))
	for _, tb := range b.rules {
		def.Transitions = append(def.Transitions, tb.Build())
	}
	if def.Accept == nil {
		def.Accept = []domain.StateID{}
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrInvalidDefinition, def.Name, err)
	}
	return &def, nil
}

// Compile builds the definition and compiles it into a Machine.
func (b *Builder) Compile(opts ...machine.Option) (*machine.Machine, error) {
	def, err := b.Definition()
	if err != nil {
		return nil, err
	}
	return machine.Compile(def, opts...)
}

// Build compiles the definition into a memory Loader holding it under its name.
func (b *Builder) Build() (*memory.Loader, error) {
	def, err := b.Definition()
	if err != nil {
		return nil, err
	}

	loader, err := memory.NewFromDefinitions(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}

	return loader, nil
}
