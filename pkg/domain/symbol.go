package domain

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Symbol is the content of a single tape cell.
type Symbol rune

const (
	// DefaultBlank is the sentinel used for unwritten cells when the engine is not
	// configured otherwise. It can never be produced by parsing an alphabet token.
	DefaultBlank Symbol = 0

	// DefaultPlaceholder is the display character standing in for the blank in
	// textual symbol lists and tape renderings.
	DefaultPlaceholder rune = 'β'
)

// ReadVector is the ordered tuple of symbols under every head, one per tape.
type ReadVector []Symbol

// Key returns a structural, collision-free encoding of the vector, suitable as a map key.
func (v ReadVector) Key() string {
	buf := make([]byte, 4*len(v))
	for i, s := range v {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(s))
	}
	return string(buf)
}

// Format renders the vector using placeholder for blank cells.
func (v ReadVector) Format(blank Symbol, placeholder rune) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range v {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(Display(s, blank, placeholder))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Display maps the blank to its placeholder and leaves other symbols untouched.
func Display(s Symbol, blank Symbol, placeholder rune) rune {
	if s == blank {
		return placeholder
	}
	return rune(s)
}

// ParseSymbol converts a one-character token into a Symbol.
// The placeholder token is translated to blank.
func ParseSymbol(token string, blank Symbol, placeholder rune) (Symbol, error) {
	r, size := utf8.DecodeRuneInString(token)
	if size == 0 || size != len(token) || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, token)
	}
	if r == placeholder {
		return blank, nil
	}
	return Symbol(r), nil
}

// ParseSymbols converts a list of one-character tokens.
func ParseSymbols(tokens []string, blank Symbol, placeholder rune) ([]Symbol, error) {
	out := make([]Symbol, len(tokens))
	for i, tok := range tokens {
		s, err := ParseSymbol(tok, blank, placeholder)
		if err != nil {
			return nil, fmt.Errorf("symbol %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}
