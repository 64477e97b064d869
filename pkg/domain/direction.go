package domain

import (
	"fmt"
	"strings"
)

// Direction is the movement applied to a head after writing.
type Direction int

const (
	Stop Direction = iota
	Left
	Right
)

// String returns the single-letter form used in listings.
func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	case Stop:
		return "S"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts both long ("left") and single-letter ("L") forms, in any case.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	case "s", "stop":
		return Stop, nil
	default:
		return Stop, fmt.Errorf("%w: %q", ErrUnknownDirection, token)
	}
}

// ParseDirections converts a list of direction tokens.
func ParseDirections(tokens []string) ([]Direction, error) {
	out := make([]Direction, len(tokens))
	for i, tok := range tokens {
		d, err := ParseDirection(tok)
		if err != nil {
			return nil, fmt.Errorf("direction %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
