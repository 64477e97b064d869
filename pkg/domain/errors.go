package domain

import (
	"errors"
	"fmt"
)

// ErrUnmatchingSizes is returned when a vector does not have one entry per tape.
var ErrUnmatchingSizes = errors.New("the number of tapes doesn't match the transition")

// ErrIndeterminancy is returned when a second transition is inserted for an occupied key.
var ErrIndeterminancy = errors.New("multiple transitions for the same state and read vector")

// ErrTapeCount is returned when a machine is built with zero tapes.
var ErrTapeCount = errors.New("the number of tapes must be at least one")

// ErrMaxStepsReached is returned when a run performs the configured number of steps
// and would still continue. It does not prove the machine never halts.
var ErrMaxStepsReached = errors.New("run stopped, reached the maximum amount of steps")

// ErrInvalidStepBound is returned when the step bound is not positive.
var ErrInvalidStepBound = errors.New("the step bound must be positive")

// ErrTransitionSizes is returned when a transition's write and direction vectors differ in length.
var ErrTransitionSizes = errors.New("the direction and write vectors size doesn't match")

// ErrUnknownDirection is returned when a direction token cannot be parsed.
var ErrUnknownDirection = errors.New("unknown direction")

// ErrInvalidSymbol is returned when a symbol token is not exactly one character.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ErrInvalidDefinition is returned when a machine definition is malformed.
var ErrInvalidDefinition = errors.New("invalid machine definition")

// ErrMachineNotFound is returned when a loader has no definition for a name.
var ErrMachineNotFound = errors.New("machine not found")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// SizeError reports an arity mismatch between a vector and the tape count.
// It matches ErrUnmatchingSizes with errors.Is.
type SizeError struct {
	Expected int
	Actual   int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s (expected %d, got %d)", ErrUnmatchingSizes, e.Expected, e.Actual)
}

func (e *SizeError) Unwrap() error {
	return ErrUnmatchingSizes
}
