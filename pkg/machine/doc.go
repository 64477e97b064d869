/*
Package machine implements the deterministic k-tape Turing machine engine.

A Machine owns a TransitionTable keyed by (state, read vector), an initial state, a
tape count and an acceptance set. Transitions are validated when inserted, so the run
loop never re-checks arity. Each call to Run allocates its own tapes and mutates
nothing else, which makes a built Machine safe for concurrent runs.

	m, err := machine.New(0, 1, []domain.StateID{1})
	if err != nil {
		return err
	}
	tr := domain.MustTransition(1, []domain.Symbol{'b'}, []domain.Direction{domain.Right})
	if err := m.InsertTransition(0, domain.ReadVector{'a'}, tr); err != nil {
		return err
	}
	accepted, err := m.Run("a")

The step bound is a safety limit, not a proof of non-termination: ErrMaxStepsReached
only states that the machine did not halt within the configured budget.
*/
package machine
