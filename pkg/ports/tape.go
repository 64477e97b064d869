package ports

import "github.com/aretw0/turing/pkg/domain"

// Tape is the capability contract the engine drives during a run.
// Implementations must never fail a Read: every head position is materialized
// (or implicitly blank) before it is read.
type Tape interface {
	Read() domain.Symbol
	Write(domain.Symbol)
	Move(domain.Direction)
	Load(string)
}

// SnapshotTape is a Tape that can report its materialized cells.
type SnapshotTape interface {
	Tape
	Snapshot() domain.TapeSnapshot
}

// TapeFactory allocates a fresh tape for the given blank symbol.
type TapeFactory func(blank domain.Symbol) Tape
