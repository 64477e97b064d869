package dsl

import "github.com/aretw0/turing/pkg/domain"

// TransitionBuilder provides a fluent API for configuring one transition.
// Symbols are single-character tokens; the blank placeholder stands for the blank.
type TransitionBuilder struct {
	rule    domain.TransitionDef
	builder *Builder
}

// On sets the symbols read, one per tape.
func (t *TransitionBuilder) On(symbols ...string) *TransitionBuilder {
	t.rule.Read = symbols
	return t
}

// Write sets the symbols written, one per tape.
func (t *TransitionBuilder) Write(symbols ...string) *TransitionBuilder {
	t.rule.Write = symbols
	return t
}

// Keep writes back what was read.
func (t *TransitionBuilder) Keep() *TransitionBuilder {
	t.rule.Write = append([]string(nil), t.rule.Read...)
	return t
}

// Move sets the head movements, one per tape.
func (t *TransitionBuilder) Move(dirs ...domain.Direction) *TransitionBuilder {
	t.rule.Direction = make([]string, len(dirs))
	for i, d := range dirs {
		t.rule.Direction[i] = d.String()
	}
	return t
}

// To sets the next state and returns the parent builder.
func (t *TransitionBuilder) To(next domain.StateID) *Builder {
	t.rule.Next = next
	return t.builder
}

// Build returns the underlying raw transition.
func (t *TransitionBuilder) Build() domain.TransitionDef {
	return t.rule
}
