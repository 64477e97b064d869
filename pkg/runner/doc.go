/*
Package runner orchestrates machine runs for the CLI, HTTP and MCP frontends.

It acts as the bridge between definition sources, the engine and run persistence:
a Runner loads a definition by name, compiles it once, executes inputs (one by one
or as a bounded-concurrency batch), stamps every run with an ID and stores the
resulting record.

# Key Components

  - Runner: loads, compiles, caches and executes machines.
  - Reporter: presents run records (TextReporter for terminals, JSONReporter for
    JSON Lines).

# Usage

	r := runner.New(file.NewLoader("machines"),
		runner.WithStore(file.NewStore("")),
		runner.WithConcurrency(4),
	)

	records, err := r.RunBatch(ctx, "palindrome", []string{"abba", "ab"}, 0)
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
