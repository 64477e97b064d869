package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
)

// Definition is a tokenized, not yet validated machine description.
// Loaders produce it from YAML, TOML, JSON or Markdown front matter.
type Definition struct {
	Name        string          `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Tapes       int             `json:"tapes" yaml:"tapes" mapstructure:"tapes"`
	Initial     StateID         `json:"initial" yaml:"initial" mapstructure:"initial"`
	Accept      []StateID       `json:"accept" yaml:"accept" mapstructure:"accept"`
	Blank       string          `json:"blank,omitempty" yaml:"blank,omitempty" mapstructure:"blank"`
	Transitions []TransitionDef `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// TransitionDef is one raw transition record. Symbols are one-character tokens and
// directions accept both long and single-letter forms.
type TransitionDef struct {
	From      StateID    `json:"from" yaml:"from" mapstructure:"from"`
	Next      StateID    `json:"next" yaml:"next" mapstructure:"next"`
	Read      []string   `json:"read" yaml:"read" mapstructure:"read"`
	Write     []string   `json:"write" yaml:"write" mapstructure:"write"`
	Direction Directions `json:"direction" yaml:"direction" mapstructure:"direction"`
}

// Directions is a list of direction tokens. Written as a plain string it is split on
// whitespace and commas, so `direction: "right, stop"` equals `["right", "stop"]`,
// and a compact run of single letters such as "RL" yields one token per letter.
type Directions []string

// Aliases accepted in raw documents, mapped to their canonical key.
var definitionAliases = map[string]string{
	"ntapes":     "tapes",
	"transition": "transitions",
}

// DecodeDefinition converts a generic document (as produced by a YAML, TOML or JSON
// decoder) into a Definition. A plain string where a symbol list is expected is split
// into one token per character, so `read: "ab"` equals `read: ["a", "b"]`. Directions
// split on separators instead (see Directions).
func DecodeDefinition(raw map[string]any) (*Definition, error) {
	normalized := NormalizeKeys(raw)

	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       splitTokensHook,
		Result:           &def,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	return &def, nil
}

// NormalizeKeys returns a copy of raw with alias keys ("ntapes", "transition")
// renamed to their canonical form.
func NormalizeKeys(raw map[string]any) map[string]any {
	normalized := make(map[string]any, len(raw))
	for k, v := range raw {
		if canonical, ok := definitionAliases[k]; ok {
			k = canonical
		}
		normalized[k] = v
	}
	return normalized
}

var (
	symbolTokensType = reflect.TypeOf([]string(nil))
	directionsType   = reflect.TypeOf(Directions(nil))
)

func splitTokensHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to {
	case directionsType:
		return splitDirections(data.(string)), nil
	case symbolTokensType:
		s := data.(string)
		tokens := make([]string, 0, utf8.RuneCountInString(s))
		for _, r := range s {
			tokens = append(tokens, string(r))
		}
		return tokens, nil
	}
	return data, nil
}

func splitDirections(s string) Directions {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make(Directions, 0, len(fields))
	for _, f := range fields {
		if _, err := ParseDirection(f); err == nil || !allSingleLetterDirections(f) {
			out = append(out, f)
			continue
		}
		for _, r := range f {
			out = append(out, string(r))
		}
	}
	return out
}

func allSingleLetterDirections(s string) bool {
	for _, r := range s {
		if _, err := ParseDirection(string(r)); err != nil {
			return false
		}
	}
	return true
}

// Placeholder returns the display character standing in for the blank.
func (d *Definition) Placeholder() (rune, error) {
	if d.Blank == "" {
		return DefaultPlaceholder, nil
	}
	r, size := utf8.DecodeRuneInString(d.Blank)
	if size != len(d.Blank) || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: blank placeholder %q", ErrInvalidSymbol, d.Blank)
	}
	return r, nil
}

// Validate reports every shape problem of the definition at once.
// It does not detect determinism conflicts, which surface on insertion.
func (d *Definition) Validate() error {
	var errs []error
	if d.Tapes < 1 {
		errs = append(errs, ErrTapeCount)
	}
	placeholder, err := d.Placeholder()
	if err != nil {
		errs = append(errs, err)
	}
	for i := range d.Transitions {
		if _, _, err := d.ParseTransition(i, DefaultBlank, placeholder); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ParseTransition parses the i-th raw transition into its read vector and Transition.
func (d *Definition) ParseTransition(i int, blank Symbol, placeholder rune) (ReadVector, Transition, error) {
	t := d.Transitions[i]
	wrap := func(err error) error {
		return fmt.Errorf("transition %d (state %d): %w", i, t.From, err)
	}

	if d.Tapes >= 1 {
		if len(t.Read) != d.Tapes {
			return nil, Transition{}, wrap(&SizeError{Expected: d.Tapes, Actual: len(t.Read)})
		}
		if len(t.Write) != d.Tapes {
			return nil, Transition{}, wrap(&SizeError{Expected: d.Tapes, Actual: len(t.Write)})
		}
	}

	read, err := ParseSymbols(t.Read, blank, placeholder)
	if err != nil {
		return nil, Transition{}, wrap(err)
	}
	write, err := ParseSymbols(t.Write, blank, placeholder)
	if err != nil {
		return nil, Transition{}, wrap(err)
	}
	moves, err := ParseDirections(t.Direction)
	if err != nil {
		return nil, Transition{}, wrap(err)
	}
	tr, err := NewTransition(t.Next, write, moves)
	if err != nil {
		return nil, Transition{}, wrap(err)
	}
	return ReadVector(read), tr, nil
}
