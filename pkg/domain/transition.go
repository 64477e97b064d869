package domain

import (
	"fmt"
	"strings"
)

// StateID identifies a state of the machine's control graph.
type StateID uint

// Transition is the deterministic action associated with one (state, read vector) pair:
// the symbol written and the move applied on every tape, and the state reached.
// A Transition is immutable once built.
type Transition struct {
	next  StateID
	write []Symbol
	moves []Direction
}

// NewTransition builds a Transition, copying the per-tape vectors.
// It fails with ErrTransitionSizes when write and moves differ in length.
func NewTransition(next StateID, write []Symbol, moves []Direction) (Transition, error) {
	if len(write) != len(moves) {
		return Transition{}, fmt.Errorf("%w (%d, %d)", ErrTransitionSizes, len(write), len(moves))
	}
	return Transition{
		next:  next,
		write: append([]Symbol(nil), write...),
		moves: append([]Direction(nil), moves...),
	}, nil
}

// MustTransition is like NewTransition but panics on error. Intended for tests and fixtures.
func MustTransition(next StateID, write []Symbol, moves []Direction) Transition {
	t, err := NewTransition(next, write, moves)
	if err != nil {
		panic(err)
	}
	return t
}

// Next returns the state shared by all tapes after this transition.
func (t Transition) Next() StateID { return t.next }

// Arity returns the number of tapes this transition acts on.
func (t Transition) Arity() int { return len(t.write) }

// Write returns the symbol written on tape i.
func (t Transition) Write(i int) Symbol { return t.write[i] }

// Move returns the direction applied on tape i.
func (t Transition) Move(i int) Direction { return t.moves[i] }

// Writes returns a copy of the write vector.
func (t Transition) Writes() []Symbol { return append([]Symbol(nil), t.write...) }

// Moves returns a copy of the direction vector.
func (t Transition) Moves() []Direction { return append([]Direction(nil), t.moves...) }

// String renders the transition as "[next, writes, moves]", e.g. "[1, M, R]",
// with the default blank shown as the default placeholder.
func (t Transition) String() string {
	return t.Format(DefaultBlank, DefaultPlaceholder)
}

// Format is like String but shows blank as placeholder.
func (t Transition) Format(blank Symbol, placeholder rune) string {
	var w, m strings.Builder
	for i := range t.write {
		if i > 0 {
			w.WriteByte(' ')
			m.WriteByte(' ')
		}
		w.WriteRune(Display(t.write[i], blank, placeholder))
		m.WriteString(t.moves[i].String())
	}
	return fmt.Sprintf("[%d, %s, %s]", t.next, w.String(), m.String())
}
