package machine

import (
	"fmt"
	"sort"

	"github.com/aretw0/turing/pkg/domain"
)

// TransitionTable maps (state, read vector) to at most one Transition.
type TransitionTable struct {
	tapes int
	rows  map[domain.StateID]map[string]entry
	size  int

	// used when rendering read vectors in errors
	blank       domain.Symbol
	placeholder rune
}

type entry struct {
	read domain.ReadVector
	tr   domain.Transition
}

// Entry is one row of the table, as returned by Entries.
type Entry struct {
	State      domain.StateID
	Read       domain.ReadVector
	Transition domain.Transition
}

// NewTable creates an empty table for the given tape count.
func NewTable(tapes int) *TransitionTable {
	return &TransitionTable{
		tapes:       tapes,
		rows:        make(map[domain.StateID]map[string]entry),
		blank:       domain.DefaultBlank,
		placeholder: domain.DefaultPlaceholder,
	}
}

// Insert stores tr for (state, read). It fails with a *domain.SizeError when a vector
// length differs from the tape count and with domain.ErrIndeterminancy when the key is
// already defined; in both cases the table is left unchanged.
func (t *TransitionTable) Insert(state domain.StateID, read domain.ReadVector, tr domain.Transition) error {
	if len(read) != t.tapes {
		return &domain.SizeError{Expected: t.tapes, Actual: len(read)}
	}
	if tr.Arity() != t.tapes {
		return &domain.SizeError{Expected: t.tapes, Actual: tr.Arity()}
	}

	row, ok := t.rows[state]
	if !ok {
		row = make(map[string]entry)
		t.rows[state] = row
	}
	key := read.Key()
	if _, exists := row[key]; exists {
		return fmt.Errorf("%w: state %d, read %s", domain.ErrIndeterminancy, state,
			read.Format(t.blank, t.placeholder))
	}
	row[key] = entry{read: append(domain.ReadVector(nil), read...), tr: tr}
	t.size++
	return nil
}

// Lookup returns the transition for (state, read). Absence means the machine halts.
func (t *TransitionTable) Lookup(state domain.StateID, read domain.ReadVector) (domain.Transition, bool) {
	row, ok := t.rows[state]
	if !ok {
		return domain.Transition{}, false
	}
	e, ok := row[read.Key()]
	return e.tr, ok
}

// Tapes returns the arity every entry shares.
func (t *TransitionTable) Tapes() int { return t.tapes }

// Len returns the number of stored transitions.
func (t *TransitionTable) Len() int { return t.size }

// States returns every state with at least one outgoing transition, ascending.
func (t *TransitionTable) States() []domain.StateID {
	states := make([]domain.StateID, 0, len(t.rows))
	for s, row := range t.rows {
		if len(row) > 0 {
			states = append(states, s)
		}
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// Entries returns every row ordered by state and then by read vector key.
func (t *TransitionTable) Entries() []Entry {
	out := make([]Entry, 0, t.size)
	for _, s := range t.States() {
		row := t.rows[s]
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			e := row[k]
			out = append(out, Entry{State: s, Read: e.read, Transition: e.tr})
		}
	}
	return out
}
