/*
Package tape implements the unbounded, bidirectional tapes driven by the engine.

Two storage strategies satisfy the same capability contract (Read, Write, Move, Load):

  - Tape keeps two growable halves, one for non-negative and one for negative offsets,
    and materializes exactly one blank cell each time the head steps past the known range.
  - Sparse keeps only written cells in a position map, for machines that wander far
    over mostly blank tapes.

A tape is never empty: loading the empty string yields a single blank cell.
*/
package tape
