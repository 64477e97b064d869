package tape

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Tape is one infinite, two-directional cell sequence with a head.
type Tape struct {
	// neg holds offsets -1, -2, ... at indexes 0, 1, ...
	neg []domain.Symbol
	// pos holds offsets 0, 1, ... at the same indexes.
	pos []domain.Symbol
	// head is the signed offset from the origin.
	head  int
	blank domain.Symbol
}

// New returns a tape holding a single blank cell under the head.
func New(blank domain.Symbol) *Tape {
	return &Tape{
		pos:   []domain.Symbol{blank},
		blank: blank,
	}
}

// Load resets the tape to the characters of s at offsets 0..len(s)-1, head at 0.
func (t *Tape) Load(s string) {
	t.neg = t.neg[:0]
	t.pos = t.pos[:0]
	for _, r := range s {
		t.pos = append(t.pos, domain.Symbol(r))
	}
	if len(t.pos) == 0 {
		t.pos = append(t.pos, t.blank)
	}
	t.head = 0
}

// Read returns the symbol under the head.
func (t *Tape) Read() domain.Symbol {
	half, idx := t.cell()
	return (*half)[idx]
}

// Write overwrites the symbol under the head.
func (t *Tape) Write(s domain.Symbol) {
	half, idx := t.cell()
	(*half)[idx] = s
}

// Move shifts the head one cell, materializing a blank cell if it was never reached.
func (t *Tape) Move(d domain.Direction) {
	switch d {
	case domain.Left:
		t.head--
		if t.head < 0 && index(t.head) == len(t.neg) {
			t.neg = append(t.neg, t.blank)
		}
	case domain.Right:
		t.head++
		if t.head >= 0 && t.head == len(t.pos) {
			t.pos = append(t.pos, t.blank)
		}
	case domain.Stop:
	}
}

// Head returns the signed head position.
func (t *Tape) Head() int { return t.head }

// Size returns the number of materialized cells.
func (t *Tape) Size() int { return len(t.neg) + len(t.pos) }

// Snapshot copies the materialized cells, leftmost first.
func (t *Tape) Snapshot() domain.TapeSnapshot {
	cells := make([]domain.Symbol, 0, t.Size())
	for i := len(t.neg) - 1; i >= 0; i-- {
		cells = append(cells, t.neg[i])
	}
	cells = append(cells, t.pos...)
	return domain.TapeSnapshot{
		Symbols: cells,
		Start:   -len(t.neg),
		Head:    t.head,
	}
}

// Format renders the tape as "|a|[b]|c|" with the head cell in brackets and
// blanks shown as placeholder.
func (t *Tape) Format(placeholder rune) string {
	return Format(t.Snapshot(), t.blank, placeholder)
}

// String renders the tape with the default placeholder.
func (t *Tape) String() string {
	return t.Format(domain.DefaultPlaceholder)
}

func (t *Tape) cell() (*[]domain.Symbol, int) {
	half := &t.pos
	if t.head < 0 {
		half = &t.neg
	}
	idx := index(t.head)
	if idx >= len(*half) {
		panic(fmt.Sprintf("tape: head %d outside materialized range", t.head))
	}
	return half, idx
}

// index maps a signed offset into its half: h for h >= 0, -h-1 otherwise.
func index(h int) int {
	if h >= 0 {
		return h
	}
	return -h - 1
}

// Format renders a snapshot as "|a|[b]|c|".
func Format(s domain.TapeSnapshot, blank domain.Symbol, placeholder rune) string {
	var sb strings.Builder
	for i, sym := range s.Symbols {
		sb.WriteByte('|')
		r := domain.Display(sym, blank, placeholder)
		if s.Start+i == s.Head {
			sb.WriteByte('[')
			sb.WriteRune(r)
			sb.WriteByte(']')
		} else {
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('|')
	return sb.String()
}

// Content renders the snapshot cells without separators or head marker.
func Content(s domain.TapeSnapshot, blank domain.Symbol, placeholder rune) string {
	var sb strings.Builder
	for _, sym := range s.Symbols {
		sb.WriteRune(domain.Display(sym, blank, placeholder))
	}
	return sb.String()
}
