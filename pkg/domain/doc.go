/*
Package domain contains the core value types of the Turing machine engine.

It defines the symbols, directions and transitions a machine is made of, the raw
machine Definition read by the loaders, and the results produced by a run. This
package is kept pure and free of I/O or persistence concerns.

# Key Entities

  - Symbol: a single cell value. The blank is a per-engine sentinel, not an alphabet member.
  - Direction: the head movement of one tape in one step (Left, Right, Stop).
  - Transition: the immutable action taken for one (state, read vector) pair.
  - Definition: a tokenized machine description, as produced by a loader.
  - RunResult / RunRecord: the verdict of a run and its persisted form.
*/
package domain
