package domain

import (
	"errors"
	"testing"
)

func TestNewTransition_CopiesVectors(t *testing.T) {
	write := []Symbol{'a', 'b'}
	moves := []Direction{Left, Right}

	tr, err := NewTransition(3, write, moves)
	if err != nil {
		t.Fatalf("NewTransition failed: %v", err)
	}

	write[0] = 'z'
	moves[0] = Stop

	if tr.Write(0) != 'a' {
		t.Errorf("Write(0) = %c, want 'a' (transition must not alias its input)", tr.Write(0))
	}
	if tr.Move(0) != Left {
		t.Errorf("Move(0) = %v, want L", tr.Move(0))
	}
	if tr.Next() != 3 || tr.Arity() != 2 {
		t.Errorf("Next()=%d Arity()=%d, want 3 and 2", tr.Next(), tr.Arity())
	}

	got := tr.Writes()
	got[1] = 'q'
	if tr.Write(1) != 'b' {
		t.Error("Writes() must return a copy")
	}
}

func TestNewTransition_SizeMismatch(t *testing.T) {
	_, err := NewTransition(0, []Symbol{'a'}, []Direction{Left, Right})
	if !errors.Is(err, ErrTransitionSizes) {
		t.Errorf("expected ErrTransitionSizes, got %v", err)
	}
}

func TestTransition_String(t *testing.T) {
	tr := MustTransition(2, []Symbol{'b'}, []Direction{Left})
	if got := tr.String(); got != "[2, b, L]" {
		t.Errorf("String() = %q, want %q", got, "[2, b, L]")
	}

	multi := MustTransition(1, []Symbol{'x', DefaultBlank}, []Direction{Right, Stop})
	if got := multi.String(); got != "[1, x β, R S]" {
		t.Errorf("String() = %q, want %q", got, "[1, x β, R S]")
	}
}

func TestReadVector_Key(t *testing.T) {
	a := ReadVector{'a', 'b'}
	b := ReadVector{'a', 'b'}
	c := ReadVector{'b', 'a'}
	blank := ReadVector{DefaultBlank}

	if a.Key() != b.Key() {
		t.Error("equal vectors must produce equal keys")
	}
	if a.Key() == c.Key() {
		t.Error("different vectors must produce different keys")
	}
	if blank.Key() == (ReadVector{}).Key() {
		t.Error("a blank cell must not collide with the empty vector")
	}
}

func TestParseSymbol(t *testing.T) {
	s, err := ParseSymbol("β", DefaultBlank, DefaultPlaceholder)
	if err != nil || s != DefaultBlank {
		t.Errorf("placeholder should parse to blank, got %q, %v", s, err)
	}

	s, err = ParseSymbol("ñ", DefaultBlank, DefaultPlaceholder)
	if err != nil || s != 'ñ' {
		t.Errorf("ParseSymbol(ñ) = %q, %v", s, err)
	}

	for _, bad := range []string{"", "ab"} {
		if _, err := ParseSymbol(bad, DefaultBlank, DefaultPlaceholder); !errors.Is(err, ErrInvalidSymbol) {
			t.Errorf("ParseSymbol(%q) error = %v, want ErrInvalidSymbol", bad, err)
		}
	}
}

func TestSizeError(t *testing.T) {
	var err error = &SizeError{Expected: 2, Actual: 3}
	if !errors.Is(err, ErrUnmatchingSizes) {
		t.Error("SizeError must match ErrUnmatchingSizes")
	}
	var se *SizeError
	if !errors.As(err, &se) || se.Expected != 2 || se.Actual != 3 {
		t.Errorf("errors.As failed or wrong fields: %+v", se)
	}
}

func TestTransition_Format(t *testing.T) {
	tr := MustTransition(1, []Symbol{'x', '_'}, []Direction{Right, Stop})
	if got := tr.Format('_', '#'); got != "[1, x #, R S]" {
		t.Errorf("Format() = %q, want %q", got, "[1, x #, R S]")
	}
	if got := tr.String(); got != "[1, x _, R S]" {
		t.Errorf("String() = %q, want %q (custom blank is an ordinary symbol by default)", got, "[1, x _, R S]")
	}
}
