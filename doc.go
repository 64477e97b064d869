/*
Package turing is a deterministic multi-tape Turing machine simulator.

A machine is a set of numbered states, an initial state, a set of accepting states and a
transition table keyed by the current state and the symbols under every head. Running a
machine on an input word loads the word on the first tape and applies transitions until
none matches: the run accepts if the machine stops in an accepting state, rejects
otherwise, and fails with domain.ErrMaxStepsReached when it exceeds its step bound.

# Definitions

Machines are described in YAML, TOML, JSON or Markdown front matter:

	tapes: 1
	accept: [0]
	transitions:
	  - {from: 0, next: 1, read: a, write: a, direction: R}
	  - {from: 1, next: 0, read: a, write: a, direction: R}

The blank symbol is written with a placeholder (β by default). Package dsl builds the
same definitions from Go code.

# Usage

	eng, err := turing.New("./machines")
	if err != nil {
		log.Fatal(err)
	}

	rec, err := eng.Run(ctx, "even", "aaaa", 0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(rec.Verdict())

Engine wires a definition loader (see OpenLoader), an optional run store and a
runner.Runner. For a single compiled machine without persistence use package machine
directly.
*/
package turing
