package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"unicode/utf8"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "natural").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string")
	}
	return nil
}

// NaturalType validates non-negative integers, whatever the decoder's integer type.
type NaturalType struct{}

func (t *NaturalType) Name() string { return "natural" }

func (t *NaturalType) Validate(value any) error {
	if n, ok := value.(json.Number); ok {
		i, err := n.Int64()
		if err != nil {
			return fmt.Errorf("expected a whole number")
		}
		value = i
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			return fmt.Errorf("must not be negative")
		}
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return nil
	case reflect.Float32, reflect.Float64:
		// JSON numbers decode as float64
		f := rv.Float()
		if f != float64(int64(f)) {
			return fmt.Errorf("expected a whole number")
		}
		if f < 0 {
			return fmt.Errorf("must not be negative")
		}
		return nil
	default:
		return fmt.Errorf("expected natural number")
	}
}

// SymbolType validates a one-character string.
type SymbolType struct{}

func (t *SymbolType) Name() string { return "symbol" }

func (t *SymbolType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected one-character string")
	}
	if utf8.RuneCountInString(s) != 1 {
		return fmt.Errorf("expected exactly one character, got %q", s)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected list")
	}

	for i := 0; i < rv.Len(); i++ {
		if err := t.elemType.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// TokensType validates a token list given either as a list of one-character
// strings or as a plain string read one character per token.
type TokensType struct{}

func (t *TokensType) Name() string { return "tokens" }

func (t *TokensType) Validate(value any) error {
	if _, ok := value.(string); ok {
		return nil
	}
	return Slice(String()).Validate(value)
}

// ObjectType validates a nested document against its own schema.
type ObjectType struct {
	schema Schema
}

func (t *ObjectType) Name() string { return "object" }

func (t *ObjectType) Validate(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected object")
	}
	return Validate(t.schema, m)
}

// OptionalType marks a field that may be absent.
type OptionalType struct {
	Type
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// String creates a string type validator.
func String() Type { return &StringType{} }

// Natural creates a non-negative integer validator.
func Natural() Type { return &NaturalType{} }

// Symbol creates a one-character string validator.
func Symbol() Type { return &SymbolType{} }

// Tokens creates a token list validator.
func Tokens() Type { return &TokensType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Object creates a validator for nested documents.
func Object(s Schema) Type {
	return &ObjectType{schema: s}
}

// Optional wraps t so that a missing field is accepted.
func Optional(t Type) Type {
	return &OptionalType{Type: t}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
