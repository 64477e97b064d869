package tape

import "github.com/aretw0/turing/pkg/domain"

// Sparse stores only written cells in a position map.
// Every position reads as blank until written; the visited range is tracked so
// snapshots cover the same cells a Tape would have materialized.
type Sparse struct {
	cells    map[int]domain.Symbol
	head     int
	min, max int
	blank    domain.Symbol
}

// NewSparse returns an empty sparse tape.
func NewSparse(blank domain.Symbol) *Sparse {
	return &Sparse{
		cells: make(map[int]domain.Symbol),
		blank: blank,
	}
}

// Load resets the tape to the characters of s, head at 0.
func (t *Sparse) Load(s string) {
	clear(t.cells)
	i := 0
	for _, r := range s {
		if domain.Symbol(r) != t.blank {
			t.cells[i] = domain.Symbol(r)
		}
		i++
	}
	t.head, t.min, t.max = 0, 0, max(i-1, 0)
}

// Read returns the symbol under the head.
func (t *Sparse) Read() domain.Symbol {
	if s, ok := t.cells[t.head]; ok {
		return s
	}
	return t.blank
}

// Write overwrites the symbol under the head.
func (t *Sparse) Write(s domain.Symbol) {
	if s == t.blank {
		delete(t.cells, t.head)
		return
	}
	t.cells[t.head] = s
}

// Move shifts the head one cell.
func (t *Sparse) Move(d domain.Direction) {
	switch d {
	case domain.Left:
		t.head--
		t.min = min(t.min, t.head)
	case domain.Right:
		t.head++
		t.max = max(t.max, t.head)
	case domain.Stop:
	}
}

// Head returns the signed head position.
func (t *Sparse) Head() int { return t.head }

// Written returns the number of non-blank cells held in memory.
func (t *Sparse) Written() int { return len(t.cells) }

// Snapshot copies the visited range, leftmost first.
func (t *Sparse) Snapshot() domain.TapeSnapshot {
	cells := make([]domain.Symbol, t.max-t.min+1)
	for i := range cells {
		cells[i] = t.blank
	}
	for p, s := range t.cells {
		cells[p-t.min] = s
	}
	return domain.TapeSnapshot{
		Symbols: cells,
		Start:   t.min,
		Head:    t.head,
	}
}

// String renders the tape with the default placeholder.
func (t *Sparse) String() string {
	return Format(t.Snapshot(), t.blank, domain.DefaultPlaceholder)
}
