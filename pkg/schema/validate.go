package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// Validate checks if data conforms to the schema.
// Returns an *AggregateError with all validation failures found, in field order.
func Validate(schema Schema, data map[string]any) error {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, fieldName := range keys {
		fieldType := schema[fieldName]
		value, exists := data[fieldName]
		if !exists {
			if _, optional := fieldType.(*OptionalType); !optional {
				errs = append(errs, &ValidationError{Key: fieldName, Reason: "required"})
			}
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			// Nested objects report their own field paths
			var nested *AggregateError
			if errors.As(err, &nested) {
				for _, e := range nested.Errors {
					errs = append(errs, prefix(fieldName, e))
				}
				continue
			}
			errs = append(errs, &ValidationError{Key: fieldName, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func prefix(parent string, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		sep := "."
		if strings.HasPrefix(ve.Key, "[") {
			sep = ""
		}
		return &ValidationError{Key: parent + sep + ve.Key, Reason: ve.Reason, Value: ve.Value}
	}
	return fmt.Errorf("%s: %w", parent, err)
}

// Transition is the shape of one transition record.
var Transition = Schema{
	"from":      Natural(),
	"next":      Natural(),
	"read":      Tokens(),
	"write":     Tokens(),
	"direction": Tokens(),
}

// Machine is the shape of a machine document, after alias normalization.
var Machine = Schema{
	"name":        Optional(String()),
	"description": Optional(String()),
	"tapes":       Natural(),
	"initial":     Optional(Natural()),
	"accept":      Slice(Natural()),
	"blank":       Optional(Symbol()),
	"transitions": &transitionList{},
}

// transitionList validates each transition and reports "transitions[i].field" paths.
type transitionList struct{}

func (t *transitionList) Name() string { return "[object]" }

func (t *transitionList) Validate(value any) error {
	list, ok := value.([]any)
	if !ok {
		if typed, isTyped := value.([]map[string]any); isTyped {
			list = make([]any, len(typed))
			for i := range typed {
				list[i] = typed[i]
			}
		} else {
			return fmt.Errorf("expected list of transitions")
		}
	}

	var errs []error
	for i, item := range list {
		key := fmt.Sprintf("[%d]", i)
		m, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, &ValidationError{Key: key, Reason: "expected object", Value: item})
			continue
		}
		if err := Validate(Transition, m); err != nil {
			for _, e := range ValidationErrors(err) {
				var ve *ValidationError
				if errors.As(e, &ve) {
					e = &ValidationError{Key: key + "." + ve.Key, Reason: ve.Reason, Value: ve.Value}
				}
				errs = append(errs, e)
			}
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateMachine normalizes alias keys and checks raw against the Machine schema.
func ValidateMachine(raw map[string]any) error {
	return Validate(Machine, domain.NormalizeKeys(raw))
}
